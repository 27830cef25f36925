package engine

import "github.com/asymmetrica-labs/moldyn2d/internal/snapshot"

// Each of the engine's internal containers already knows how to
// clone() itself and restoreFrom(snapshot); these small wrapper types
// just satisfy snapshot.Handle so GetState/Restore can bundle them
// uniformly, per spec.md §4.11.

type atomsHandle struct{ a *atomSet }

func (h *atomsHandle) Clone() snapshot.Handle { return &atomsHandle{a: h.a.clone()} }
func (h *atomsHandle) Restore(other snapshot.Handle) {
	o, ok := other.(*atomsHandle)
	if !ok {
		panic("engine: Restore called with a non-atomsHandle")
	}
	h.a.restoreFrom(o.a)
}

type obstaclesHandle struct{ o *obstacleSet }

func (h *obstaclesHandle) Clone() snapshot.Handle { return &obstaclesHandle{o: h.o.clone()} }
func (h *obstaclesHandle) Restore(other snapshot.Handle) {
	o, ok := other.(*obstaclesHandle)
	if !ok {
		panic("engine: Restore called with a non-obstaclesHandle")
	}
	h.o.restoreFrom(o.o)
}

type elementsHandle struct{ e *elementSet }

func (h *elementsHandle) Clone() snapshot.Handle { return &elementsHandle{e: h.e.clone()} }
func (h *elementsHandle) Restore(other snapshot.Handle) {
	o, ok := other.(*elementsHandle)
	if !ok {
		panic("engine: Restore called with a non-elementsHandle")
	}
	h.e.restoreFrom(o.e)
}

type radialBondsHandle struct{ b *radialBondSet }

func (h *radialBondsHandle) Clone() snapshot.Handle { return &radialBondsHandle{b: h.b.clone()} }
func (h *radialBondsHandle) Restore(other snapshot.Handle) {
	o, ok := other.(*radialBondsHandle)
	if !ok {
		panic("engine: Restore called with a non-radialBondsHandle")
	}
	h.b.restoreFrom(o.b)
}

type angularBondsHandle struct{ b *angularBondSet }

func (h *angularBondsHandle) Clone() snapshot.Handle { return &angularBondsHandle{b: h.b.clone()} }
func (h *angularBondsHandle) Restore(other snapshot.Handle) {
	o, ok := other.(*angularBondsHandle)
	if !ok {
		panic("engine: Restore called with a non-angularBondsHandle")
	}
	h.b.restoreFrom(o.b)
}

type restraintsHandle struct{ r *restraintSet }

func (h *restraintsHandle) Clone() snapshot.Handle { return &restraintsHandle{r: h.r.clone()} }
func (h *restraintsHandle) Restore(other snapshot.Handle) {
	o, ok := other.(*restraintsHandle)
	if !ok {
		panic("engine: Restore called with a non-restraintsHandle")
	}
	h.r.restoreFrom(o.r)
}

type springsHandle struct{ s *springSet }

func (h *springsHandle) Clone() snapshot.Handle { return &springsHandle{s: h.s.clone()} }
func (h *springsHandle) Restore(other snapshot.Handle) {
	o, ok := other.(*springsHandle)
	if !ok {
		panic("engine: Restore called with a non-springsHandle")
	}
	h.s.restoreFrom(o.s)
}

// GetState returns an ordered snapshot of every piece of mutable engine
// state, per spec.md §4.11. The pressure probe set (*pressure.Set)
// already satisfies snapshot.Handle directly; everything else is
// wrapped in a small adapter above.
func (e *Engine) GetState() *snapshot.State {
	return snapshot.NewState(
		&atomsHandle{a: e.atoms},
		&obstaclesHandle{o: e.obstacles},
		&elementsHandle{e: e.elements},
		&radialBondsHandle{b: e.radialBonds},
		&angularBondsHandle{b: e.angularBonds},
		&restraintsHandle{r: e.restraints},
		&springsHandle{s: e.springs},
		e.probes,
		snapshot.NewTimeHandle(&e.time),
	)
}

// Restore overwrites the engine's live state from a snapshot previously
// returned by GetState. The cell list and Verlet list are not part of
// the snapshot; they are acceleration structures derived from atom
// positions, rebuilt by Integrate once the restored positions have moved
// past the skin threshold relative to the last build.
func (e *Engine) Restore(snap *snapshot.State) {
	e.GetState().Restore(snap)
}
