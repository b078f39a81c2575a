// Package program defines the VM's instruction set and the immutable
// Program container instructions are addressed within.
package program

import (
	"fmt"

	"github.com/zyxw59/regexvm/token"
)

// InstrPtr is the type used to index into a Program's instruction
// sequence. It is a plain alias for int, not a distinct type, so
// token.Map[T].Get can return a plain int without this package and the
// token package needing to import each other.
type InstrPtr = int

// InstrKind identifies which variant of Instr is populated. Go has no
// tagged unions, so Instr is a single struct with a kind tag plus
// per-kind payload fields.
type InstrKind uint8

const (
	KindToken InstrKind = iota
	KindAny
	KindSet
	KindMap
	KindWordBoundary
	KindSplit
	KindJSplit
	KindJump
	KindUpdateState
	KindReject
	KindMatch
)

func (k InstrKind) String() string {
	switch k {
	case KindToken:
		return "Token"
	case KindAny:
		return "Any"
	case KindSet:
		return "Set"
	case KindMap:
		return "Map"
	case KindWordBoundary:
		return "WordBoundary"
	case KindSplit:
		return "Split"
	case KindJSplit:
		return "JSplit"
	case KindJump:
		return "Jump"
	case KindUpdateState:
		return "UpdateState"
	case KindReject:
		return "Reject"
	case KindMatch:
		return "Match"
	default:
		return fmt.Sprintf("InstrKind(%d)", uint8(k))
	}
}

// Instr is a single VM instruction. Which fields are meaningful depends
// on Kind(); use the accessor methods rather than reading fields
// directly (the fields are unexported).
type Instr[T token.Tok] struct {
	kind   InstrKind
	tok    T
	set    token.Set[T]
	mp     token.Map[T]
	target InstrPtr
	update any
}

// Kind returns which instruction variant this is.
func (in Instr[T]) Kind() InstrKind { return in.kind }

// Token returns the token to match, for Kind() == KindToken.
func (in Instr[T]) Token() (T, bool) {
	if in.kind != KindToken {
		var zero T
		return zero, false
	}
	return in.tok, true
}

// Set returns the membership set to match against, for Kind() ==
// KindSet.
func (in Instr[T]) Set() (token.Set[T], bool) {
	if in.kind != KindSet {
		return nil, false
	}
	return in.set, true
}

// Map returns the dispatch table, for Kind() == KindMap.
func (in Instr[T]) Map() (token.Map[T], bool) {
	if in.kind != KindMap {
		return nil, false
	}
	return in.mp, true
}

// Split returns the fall-through-preferred branch target, for Kind() ==
// KindSplit.
func (in Instr[T]) Split() (InstrPtr, bool) {
	if in.kind != KindSplit {
		return 0, false
	}
	return in.target, true
}

// JSplit returns the jump-preferred branch target, for Kind() ==
// KindJSplit.
func (in Instr[T]) JSplit() (InstrPtr, bool) {
	if in.kind != KindJSplit {
		return 0, false
	}
	return in.target, true
}

// Jump returns the unconditional jump target, for Kind() == KindJump.
func (in Instr[T]) Jump() (InstrPtr, bool) {
	if in.kind != KindJump {
		return 0, false
	}
	return in.target, true
}

// UpdateState returns the update parameter, for Kind() ==
// KindUpdateState.
func (in Instr[T]) UpdateState() (any, bool) {
	if in.kind != KindUpdateState {
		return nil, false
	}
	return in.update, true
}

// String renders the instruction for debugging.
func (in Instr[T]) String() string {
	switch in.kind {
	case KindToken:
		return fmt.Sprintf("Token(%v)", in.tok)
	case KindAny:
		return "Any"
	case KindSet:
		return fmt.Sprintf("Set(%v)", in.set)
	case KindMap:
		return fmt.Sprintf("Map(%v)", in.mp)
	case KindWordBoundary:
		return "WordBoundary"
	case KindSplit:
		return fmt.Sprintf("Split(%d)", in.target)
	case KindJSplit:
		return fmt.Sprintf("JSplit(%d)", in.target)
	case KindJump:
		return fmt.Sprintf("Jump(%d)", in.target)
	case KindUpdateState:
		return fmt.Sprintf("UpdateState(%v)", in.update)
	case KindReject:
		return "Reject"
	case KindMatch:
		return "Match"
	default:
		return in.kind.String()
	}
}

// TokenInstr matches a single token, failing the thread on a mismatch.
func TokenInstr[T token.Tok](t T) Instr[T] {
	return Instr[T]{kind: KindToken, tok: t}
}

// AnyInstr matches any token.
func AnyInstr[T token.Tok]() Instr[T] {
	return Instr[T]{kind: KindAny}
}

// SetInstr matches a token that is a member of set.
func SetInstr[T token.Tok](set token.Set[T]) Instr[T] {
	return Instr[T]{kind: KindSet, set: set}
}

// MapInstr always consumes a token, dispatching to mp.Get(tok) if
// present, or falling through to pc+1 otherwise.
func MapInstr[T token.Tok](mp token.Map[T]) Instr[T] {
	return Instr[T]{kind: KindMap, mp: mp}
}

// WordBoundaryInstr succeeds, without consuming, iff exactly one of the
// previous and next tokens is a word character.
func WordBoundaryInstr[T token.Tok]() Instr[T] {
	return Instr[T]{kind: KindWordBoundary}
}

// SplitInstr forks into a higher-priority branch at pc+1 and a
// lower-priority branch at target.
func SplitInstr[T token.Tok](target InstrPtr) Instr[T] {
	return Instr[T]{kind: KindSplit, target: target}
}

// JSplitInstr forks into a higher-priority branch at target and a
// lower-priority branch at pc+1.
func JSplitInstr[T token.Tok](target InstrPtr) Instr[T] {
	return Instr[T]{kind: KindJSplit, target: target}
}

// JumpInstr unconditionally transfers control to target.
func JumpInstr[T token.Tok](target InstrPtr) Instr[T] {
	return Instr[T]{kind: KindJump, target: target}
}

// UpdateStateInstr invokes the thread state's Update with the given
// parameter, killing the thread if Update rejects.
func UpdateStateInstr[T token.Tok](update any) Instr[T] {
	return Instr[T]{kind: KindUpdateState, update: update}
}

// RejectInstr unconditionally kills the thread.
func RejectInstr[T token.Tok]() Instr[T] {
	return Instr[T]{kind: KindReject}
}

// MatchInstr records the thread's state as a successful match and kills
// the thread.
func MatchInstr[T token.Tok]() Instr[T] {
	return Instr[T]{kind: KindMatch}
}
