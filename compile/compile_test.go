package compile

import (
	"testing"

	"github.com/zyxw59/regexvm/ast"
	"github.com/zyxw59/regexvm/program"
	"github.com/zyxw59/regexvm/search"
	"github.com/zyxw59/regexvm/token"
	"github.com/zyxw59/regexvm/vm"
	"github.com/zyxw59/regexvm/vmstate"
)

// optB builds Repeat(Literal("b"), ZeroOrOne, greedy: true), the `b?`
// fragment shared by both capture groups below.
func optB() ast.Node {
	return ast.Repeat(ast.LiteralString("b"), ast.ZeroOrOne, true)
}

// pattern builds the AST for /(ab?)(b?c)\b/, the worked example used
// throughout these tests: two capture groups competing for the same
// optional b, guarded by a trailing word boundary.
func pattern() ast.Node {
	group1 := ast.Capture(ast.Concat(ast.LiteralString("a"), optB()), 1)
	group2 := ast.Capture(ast.Concat(optB(), ast.LiteralString("c")), 2)
	return ast.Concat(group1, group2, ast.WordBoundary())
}

// TestLowerInstructionSequence checks the exact instruction sequence
// emitted for /(ab?)(b?c)\b/:
//
//	0: JSplit(3)   1: Any        2: Jump(0)
//	3: UpdateState(0)  4: UpdateState(2)  5: Token(a)
//	6: Split(8)    7: Token(b)   8: UpdateState(3)
//	9: UpdateState(4)  10: Split(12)      11: Token(b)
//	12: Token(c)   13: UpdateState(5)     14: WordBoundary
//	15: UpdateState(1) 16: Match
func TestLowerInstructionSequence(t *testing.T) {
	prog, err := Lower(pattern(), 2)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if prog.Len() != 17 {
		t.Fatalf("Len() = %d, want 17", prog.Len())
	}

	wantKind := []program.InstrKind{
		program.KindJSplit, program.KindAny, program.KindJump,
		program.KindUpdateState, program.KindUpdateState, program.KindToken,
		program.KindSplit, program.KindToken, program.KindUpdateState,
		program.KindUpdateState, program.KindSplit, program.KindToken,
		program.KindToken, program.KindUpdateState, program.KindWordBoundary,
		program.KindUpdateState, program.KindMatch,
	}
	for i, want := range wantKind {
		if got := prog.Instr(i).Kind(); got != want {
			t.Errorf("Instr(%d).Kind() = %v, want %v", i, got, want)
		}
	}

	wantTargets := map[int]program.InstrPtr{0: 3, 2: 0, 6: 8, 10: 12}
	for i, want := range wantTargets {
		in := prog.Instr(i)
		var got program.InstrPtr
		switch in.Kind() {
		case program.KindJSplit:
			got, _ = in.JSplit()
		case program.KindSplit:
			got, _ = in.Split()
		case program.KindJump:
			got, _ = in.Jump()
		}
		if got != want {
			t.Errorf("Instr(%d) target = %d, want %d", i, got, want)
		}
	}

	wantUpdate := map[int]int{3: 0, 4: 2, 8: 3, 9: 4, 13: 5, 15: 1}
	for i, want := range wantUpdate {
		u, ok := prog.Instr(i).UpdateState()
		if !ok || u.(int) != want {
			t.Errorf("Instr(%d).UpdateState() = %v, %v, want %d, true", i, u, ok, want)
		}
	}
}

// TestLowerExecSubmatchVariants runs the compiled program end to end
// through vm.Engine: /(ab?)(b?c)\b/ over "ducabc " yields exactly two
// priority-ordered matches sharing one outer span but differing in how
// `b` is split between the two capture groups.
func TestLowerExecSubmatchVariants(t *testing.T) {
	prog, err := Lower(pattern(), 2)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	eng := vm.New(prog)
	results := eng.Exec(search.NewUTF8Searcher("ducabc "))

	if len(results) != 2 {
		t.Fatalf("Exec() returned %d matches, want 2", len(results))
	}
	want := [][]int{
		{3, 6, 3, 5, 5, 6},
		{3, 6, 3, 4, 4, 6},
	}
	for i, w := range want {
		sl, ok := results[i].(vmstate.SaveList[token.Rune])
		if !ok {
			t.Fatalf("results[%d] is not a SaveList", i)
		}
		if got := sl.Slots(); !slotsEqual(got, w) {
			t.Errorf("results[%d].Slots() = %v, want %v", i, got, w)
		}
	}
}

func slotsEqual(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// TestLowerRejectsInvalidCaptureIndex checks the ambient validation
// error for a capture index outside [1, numCaptures].
func TestLowerRejectsInvalidCaptureIndex(t *testing.T) {
	_, err := Lower(ast.Capture(ast.LiteralString("a"), 5), 1)
	if err == nil {
		t.Fatal("Lower() error = nil, want an InvalidCaptureIndexError")
	}
	var target *InvalidCaptureIndexError
	if !errorsAs(err, &target) {
		t.Errorf("Lower() error = %v (%T), want *InvalidCaptureIndexError", err, err)
	}
}

func errorsAs(err error, target **InvalidCaptureIndexError) bool {
	e, ok := err.(*InvalidCaptureIndexError)
	if ok {
		*target = e
	}
	return ok
}

// TestLowerAlternationPriority checks that Alt's first branch is tried
// with higher priority: /a|ab/ over "ab" reports the shorter "a" match
// first.
func TestLowerAlternationPriority(t *testing.T) {
	body := ast.Alt(ast.LiteralString("a"), ast.LiteralString("ab"))
	prog, err := Lower(body, 0)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	eng := vm.New(prog)
	results := eng.Exec(search.NewUTF8Searcher("ab"))
	if len(results) == 0 {
		t.Fatal("Exec() returned no matches")
	}
	sl := results[0].(vmstate.SaveList[token.Rune])
	slots := sl.Slots()
	if slots[0] != 0 || slots[1] != 1 {
		t.Errorf("first match span = (%d,%d), want (0,1) for the shorter branch", slots[0], slots[1])
	}
}

// TestLowerGreedyVsLazyStar exercises the ZeroOrMore greedy/lazy pair
// through the one channel where the fork direction is observable: two
// capture groups competing for the same token. In `(a*)(a*)` over "a",
// a greedy first group claims the `a` in the higher-priority variant;
// flipping the first group to lazy flips which variant is reported
// first. (The whole-match spans are identical either way — results are
// recorded as threads reach Match, so the empty match at offset 0
// always precedes both variants.)
func TestLowerGreedyVsLazyStar(t *testing.T) {
	pattern := func(firstGreedy bool) ast.Node {
		return ast.Concat(
			ast.Capture(ast.Repeat(ast.LiteralString("a"), ast.ZeroOrMore, firstGreedy), 1),
			ast.Capture(ast.Repeat(ast.LiteralString("a"), ast.ZeroOrMore, true), 2),
		)
	}

	// firstSpanned returns the slots of the first result whose whole
	// match covers [0, 1), skipping the empty matches recorded earlier.
	firstSpanned := func(t *testing.T, body ast.Node) []int {
		t.Helper()
		prog, err := Lower(body, 2)
		if err != nil {
			t.Fatalf("Lower() error = %v", err)
		}
		for _, res := range vm.New(prog).Exec(search.NewUTF8Searcher("a")) {
			slots := res.(vmstate.SaveList[token.Rune]).Slots()
			if slots[0] == 0 && slots[1] == 1 {
				return slots
			}
		}
		t.Fatal("no match spanning (0,1)")
		return nil
	}

	greedy := firstSpanned(t, pattern(true))
	if want := []int{0, 1, 0, 1, 1, 1}; !slotsEqual(greedy, want) {
		t.Errorf("greedy (a*)(a*) slots = %v, want %v (first group claims the a)", greedy, want)
	}

	lazy := firstSpanned(t, pattern(false))
	if want := []int{0, 1, 0, 0, 0, 1}; !slotsEqual(lazy, want) {
		t.Errorf("lazy (a*?)(a*) slots = %v, want %v (first group stays empty)", lazy, want)
	}
}
