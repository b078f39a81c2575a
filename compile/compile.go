// Package compile lowers an ast.Node into a program.Program. There is
// no surface regex syntax here; Lower is the boundary between an
// already-built AST and the VM's bytecode.
package compile

import (
	"github.com/zyxw59/regexvm/ast"
	"github.com/zyxw59/regexvm/program"
	"github.com/zyxw59/regexvm/token"
	"github.com/zyxw59/regexvm/vmstate"
)

// Lower compiles body into a program ready for vm.Engine.Exec. It
// prepends an implicit lazy `.*?` preamble so the program locates
// matches anywhere in the input, and wraps body in
// UpdateState(0)/UpdateState(1) so the whole match span lands in
// SaveList slots 0 and 1. numCaptures is the number of capture groups
// body's Capture nodes use (their 1-based indices must satisfy
// 1 <= index <= numCaptures); the resulting SaveList carries
// 2 + 2*numCaptures slots.
func Lower(body ast.Node, numCaptures int) (*program.Program[token.Rune], error) {
	if err := validateCaptures(body, numCaptures); err != nil {
		return nil, err
	}

	var instrs []program.Instr[token.Rune]

	preamble := ast.Repeat(ast.AnyToken(), ast.ZeroOrMore, false)
	lower(preamble, &instrs)

	instrs = append(instrs, program.UpdateStateInstr[token.Rune](0))
	lower(body, &instrs)
	instrs = append(instrs, program.UpdateStateInstr[token.Rune](1))
	instrs = append(instrs, program.MatchInstr[token.Rune]())

	numSlots := 2 + 2*numCaptures
	return program.New(instrs, func() vmstate.State[token.Rune] {
		return vmstate.NewSaveList[token.Rune](numSlots)
	}), nil
}

func validateCaptures(n ast.Node, numCaptures int) error {
	switch n.Kind() {
	case ast.KindConcat:
		subs, _ := n.Concat()
		for _, s := range subs {
			if err := validateCaptures(s, numCaptures); err != nil {
				return err
			}
		}
	case ast.KindAlt:
		a, b, _ := n.Alt()
		if err := validateCaptures(a, numCaptures); err != nil {
			return err
		}
		return validateCaptures(b, numCaptures)
	case ast.KindRepeat:
		r, _, _, _ := n.Repeat()
		return validateCaptures(r, numCaptures)
	case ast.KindCapture:
		r, idx, _ := n.Capture()
		if idx < 1 || idx > numCaptures {
			return &InvalidCaptureIndexError{Index: idx, NumCaptures: numCaptures}
		}
		return validateCaptures(r, numCaptures)
	}
	return nil
}

// lower appends body's lowering to *out. Split/Jump targets that point
// forward are resolved by
// reserving the instruction's slot, recursing to learn how many
// instructions the forward fragment occupies, then overwriting the
// reserved slot — there is no separate backpatching pass, since every
// target here becomes known immediately after the fragment that
// precedes it finishes compiling.
func lower(n ast.Node, out *[]program.Instr[token.Rune]) {
	switch n.Kind() {
	case ast.KindLiteral:
		lits, _ := n.Literal()
		for _, t := range lits {
			*out = append(*out, program.TokenInstr[token.Rune](t))
		}

	case ast.KindClass:
		set, _ := n.Class()
		*out = append(*out, program.SetInstr[token.Rune](set))

	case ast.KindAnyToken:
		*out = append(*out, program.AnyInstr[token.Rune]())

	case ast.KindWordBoundary:
		*out = append(*out, program.WordBoundaryInstr[token.Rune]())

	case ast.KindConcat:
		subs, _ := n.Concat()
		for _, s := range subs {
			lower(s, out)
		}

	case ast.KindAlt:
		// Split(L_b); <a>; Jump(L_end); L_b: <b>; L_end:
		a, b, _ := n.Alt()
		splitAt := reserve(out)
		lower(a, out)
		jumpAt := reserve(out)
		bStart := len(*out)
		lower(b, out)
		end := len(*out)
		(*out)[splitAt] = program.SplitInstr[token.Rune](bStart)
		(*out)[jumpAt] = program.JumpInstr[token.Rune](end)

	case ast.KindRepeat:
		body, op, greedy, _ := n.Repeat()
		switch op {
		case ast.ZeroOrOne:
			// greedy: Split(L_end); <r>; L_end:
			// lazy:   JSplit(L_end); <r>; L_end:
			splitAt := reserve(out)
			lower(body, out)
			end := len(*out)
			(*out)[splitAt] = forkInstr(greedy, end)

		case ast.ZeroOrMore:
			// greedy: L: Split(L_end); <r>; Jump(L); L_end:
			// lazy:   L: JSplit(L_end); <r>; Jump(L); L_end:
			lstart := len(*out)
			splitAt := reserve(out)
			lower(body, out)
			jumpAt := reserve(out)
			end := len(*out)
			(*out)[splitAt] = forkInstr(greedy, end)
			(*out)[jumpAt] = program.JumpInstr[token.Rune](lstart)

		case ast.OneOrMore:
			// <r> runs unconditionally once; the priority direction of the
			// trailing fork depends on greediness, since here the "keep
			// looping" target is the non-adjacent one (L_start):
			// greedy: <r>; L: JSplit(L_start); (fallthrough exits)
			// lazy:   <r>; L: Split(L_start);  (fallthrough exits)
			lstart := len(*out)
			lower(body, out)
			if greedy {
				*out = append(*out, program.JSplitInstr[token.Rune](lstart))
			} else {
				*out = append(*out, program.SplitInstr[token.Rune](lstart))
			}
		}

	case ast.KindCapture:
		body, idx, _ := n.Capture()
		*out = append(*out, program.UpdateStateInstr[token.Rune](2*idx))
		lower(body, out)
		*out = append(*out, program.UpdateStateInstr[token.Rune](2*idx+1))
	}
}

// reserve appends a placeholder instruction and returns its index, to
// be overwritten once the real jump target is known.
func reserve(out *[]program.Instr[token.Rune]) int {
	*out = append(*out, program.Instr[token.Rune]{})
	return len(*out) - 1
}

// forkInstr builds the greedy (Split) or lazy (JSplit) fork instruction
// used by the ZeroOrOne and ZeroOrMore quantifiers, whose fallthrough
// branch is the adjacent one and whose target branch is end.
func forkInstr(greedy bool, target program.InstrPtr) program.Instr[token.Rune] {
	if greedy {
		return program.SplitInstr[token.Rune](target)
	}
	return program.JSplitInstr[token.Rune](target)
}
