package program

import (
	"strconv"
	"strings"

	"github.com/zyxw59/regexvm/token"
	"github.com/zyxw59/regexvm/vmstate"
)

// Program is an immutable, randomly-addressable instruction sequence
// plus the state factory used to seed a fresh thread at the start of
// execution. It carries no dynamic re-linking after construction — the
// only way to build one is New, with a complete instruction slice.
type Program[T token.Tok] struct {
	instrs   []Instr[T]
	newState func() vmstate.State[T]
}

// New constructs a Program from a complete instruction sequence and a
// state factory. newState is called once per Exec to seed the initial
// thread — it closes over whatever init parameter the chosen State
// implementation needs (e.g. `func() vmstate.State[T] { return
// vmstate.NewSaveList[T](numSlots) }`).
func New[T token.Tok](instrs []Instr[T], newState func() vmstate.State[T]) *Program[T] {
	return &Program[T]{instrs: instrs, newState: newState}
}

// Len returns the number of instructions in the program.
func (p *Program[T]) Len() int { return len(p.instrs) }

// Instr returns the instruction at pc. An out-of-range pc is a
// program-construction bug and panics rather than returning an error.
func (p *Program[T]) Instr(pc InstrPtr) Instr[T] {
	if pc < 0 || pc >= len(p.instrs) {
		panic(&OutOfRangeError{InstrPtr: pc, Len: len(p.instrs)})
	}
	return p.instrs[pc]
}

// NewState seeds a fresh thread state using the factory passed to New.
func (p *Program[T]) NewState() vmstate.State[T] {
	return p.newState()
}

// String renders the program for debugging, one instruction per line.
func (p *Program[T]) String() string {
	var b strings.Builder
	b.WriteString("Program{\n")
	for i, in := range p.instrs {
		b.WriteString("  ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(": ")
		b.WriteString(in.String())
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
