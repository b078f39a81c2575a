package vmstate_test

import (
	"fmt"

	"github.com/zyxw59/regexvm/vmstate"
)

// runeTok is a minimal Tok used only by this example.
type runeTok rune

func (r runeTok) IsWord() bool { return false }

// recorder is a custom State implementation that has nothing to do with
// capture-group tracking: it records every token consumed along its
// thread's path into a string, demonstrating that the VM's State
// contract (Clone/Equal/Update) is open to arbitrary per-thread
// auxiliaries, not just vmstate.SaveList.
type recorder struct {
	seen string
}

func (r recorder) Clone() vmstate.State[runeTok] { return r }

func (r recorder) Equal(other vmstate.State[runeTok]) bool {
	o, ok := other.(recorder)
	return ok && o.seen == r.seen
}

// Update treats its parameter as the token to append, ignoring ctx.
func (r recorder) Update(update any, ctx vmstate.ProgramState[runeTok]) (vmstate.State[runeTok], bool) {
	tok, ok := update.(runeTok)
	if !ok {
		return r, false
	}
	return recorder{seen: r.seen + string(rune(tok))}, true
}

// ExampleState shows a State implementation unrelated to SaveList: each
// UpdateState instruction appends a rune to the thread's own string,
// independent of instruction pointer or token index.
func ExampleState() {
	var s vmstate.State[runeTok] = recorder{}

	for _, r := range "abc" {
		var ok bool
		s, ok = s.Update(runeTok(r), vmstate.ProgramState[runeTok]{})
		if !ok {
			fmt.Println("update rejected")
			return
		}
	}

	fmt.Println(s.(recorder).seen)
	// Output: abc
}
