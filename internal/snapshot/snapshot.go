// Package snapshot implements the uniform {clone, restore} contract
// behind the engine's getState handles (spec.md §4.11): the atoms
// container, the obstacles container, a scalar time wrapper, and the
// pressure buffers.
//
// Grounded on the teacher's deep-copy constructor pattern — force_field
// and spatial_hash types are always passed/returned by value or
// reconstructed wholesale rather than mutated through shared pointers,
// e.g. CalculateTotalEnergy building a fresh EnergyComponents each call
// (backend/internal/physics/energy.go) instead of mutating one in
// place. Here that "always return a fresh, independent copy" discipline
// is generalized from value-typed structs to an explicit interface, so
// the engine's parallel-array containers (which must not have their
// backing arrays aliased after Clone) can each describe their own deep
// copy instead of relying on a generic struct copy.
package snapshot

// Handle is a component of engine state that can be deep-copied and
// later restored. Each handle passed into a State comes from a
// different container — atoms, obstacles, time, pressure — so Clone
// and Restore never cross between components of different concrete
// types.
type Handle interface {
	// Clone returns a new, independent Handle holding a deep copy of
	// the receiver's current state.
	Clone() Handle

	// Restore overwrites the receiver's live state from a Handle
	// previously produced by Clone. Passing a Handle of a different
	// concrete type is a programmer error and panics.
	Restore(Handle)
}

// State is an ordered bundle of handles, mirroring getState's contract
// of returning every snapshot-able piece of engine state together.
type State struct {
	handles []Handle
}

// NewState bundles handles into a single snapshot unit, in the order
// they should be cloned/restored.
func NewState(handles ...Handle) *State {
	return &State{handles: handles}
}

// Clone deep-copies every handle in s, in order, returning an
// independent State that shares no backing storage with s.
func (s *State) Clone() *State {
	cloned := make([]Handle, len(s.handles))
	for i, h := range s.handles {
		cloned[i] = h.Clone()
	}
	return &State{handles: cloned}
}

// Restore overwrites every live handle in s from the corresponding
// handle in snap, in order. snap must have been produced by Clone on a
// State with the same handle sequence (same components, same order);
// mismatched lengths panic, since that indicates the caller snapshotted
// a differently-shaped engine.
func (s *State) Restore(snap *State) {
	if len(snap.handles) != len(s.handles) {
		panic("snapshot: Restore called with a State of different shape")
	}
	for i, h := range s.handles {
		h.Restore(snap.handles[i])
	}
}

// TimeHandle wraps the engine's scalar simulation-time field so it
// participates in the same {clone, restore} contract as the larger
// containers.
type TimeHandle struct {
	value *float64
}

// NewTimeHandle wraps a pointer to the engine's live time field.
func NewTimeHandle(value *float64) *TimeHandle {
	return &TimeHandle{value: value}
}

// Clone captures the current time value.
func (t *TimeHandle) Clone() Handle {
	v := *t.value
	return &TimeHandle{value: &v}
}

// Restore overwrites the live time field from a previously cloned
// value.
func (t *TimeHandle) Restore(h Handle) {
	other, ok := h.(*TimeHandle)
	if !ok {
		panic("snapshot: TimeHandle.Restore called with a non-TimeHandle")
	}
	*t.value = *other.value
}
