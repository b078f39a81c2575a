// Package vmstate defines the pluggable per-thread state abstraction the
// VM carries alongside each thread's instruction pointer, and the
// built-in SaveList state used for capture-group tracking.
package vmstate

import "github.com/zyxw59/regexvm/token"

// ProgramState is the read-only execution context passed to a State's
// Update method: the instruction pointer the UpdateState instruction was
// reached at, the index of the most recently consumed token, and the
// token itself (absent before the first token is consumed).
type ProgramState[T token.Tok] struct {
	InstrPtr   int
	TokenIndex int
	Token      *T
}

// WithInstrPtr returns a copy of ps pointed at a different instruction,
// used by the admission closure to follow Split/JSplit/Jump/UpdateState
// chains without disturbing TokenIndex/Token.
func (ps ProgramState[T]) WithInstrPtr(pc int) ProgramState[T] {
	ps.InstrPtr = pc
	return ps
}

// State is the capability set the VM requires from per-thread auxiliary
// data. Implementations are free to represent anything from capture
// slots (SaveList) to arbitrary user-defined accumulators — the VM holds
// no privileged knowledge of what a State represents.
//
// Update does not mutate in place: it returns the state to use going
// forward, which may be the same value or a copy. This lets
// copy-on-write implementations like SaveList share structure across
// threads that fork at Split/JSplit until one of them actually writes,
// without the VM needing to know anything about reference counting.
type State[T token.Tok] interface {
	// Clone is called whenever a thread forks (Split/JSplit admission).
	// Implementations that share immutable substructure should bump a
	// reference count here rather than copy eagerly.
	Clone() State[T]

	// Equal reports whether two states are indistinguishable for dedup
	// purposes (see vm.Engine.ExecDeduped). Exec does not call this.
	Equal(State[T]) bool

	// Update applies update, returning the resulting state and whether
	// the update was accepted. Returning ok=false kills the thread.
	Update(update any, ctx ProgramState[T]) (State[T], bool)
}
