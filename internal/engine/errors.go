package engine

import "errors"

// Sentinel errors surfaced across the engine's public API, covering
// two of spec.md §7's three fault categories: setup-contract violations
// and numerical divergence. LJ-kernel coefficient misuse is reported by
// the potential package as a plain error. Hosts are expected to
// use errors.Is/errors.As against these rather than string matching,
// in the same spirit as the teacher's parser/minimizer returning
// (*Result, error) instead of panicking.
var (
	ErrSizeAlreadySet     = errors.New("engine: size already set")
	ErrElementsNotReady   = errors.New("engine: elements must be declared before atoms")
	ErrAtomsAlreadyCreated = errors.New("engine: atoms array already created")
	ErrAtomCountOutOfRange = errors.New("engine: atom count must satisfy 1 <= n <= 1000")
	ErrInvalidTemperature = errors.New("engine: invalid temperature")
	ErrNoAtoms            = errors.New("engine: integrate called before atoms exist")
	ErrDiverged           = errors.New("engine: model diverged")
	ErrUnknownElement     = errors.New("engine: unknown element index")
	ErrUnknownAtom        = errors.New("engine: unknown atom index")
	ErrUnknownObstacle    = errors.New("engine: unknown obstacle index")
	ErrUnknownSpring      = errors.New("engine: unknown spring force index")
	ErrUnknownBond        = errors.New("engine: unknown radial bond index")
	ErrSizeNotSet         = errors.New("engine: size not set")
)
