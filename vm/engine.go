// Package vm implements the Pike VM / Thompson NFA simulation that
// executes a program.Program over a stream of tokens.
//
// The default Exec performs no thread deduplication: alternate paths
// stay alive even when they share an instruction pointer, because they
// can carry different submatch values and every surviving variant is
// reported. ExecDeduped collapses threads that reach the same
// (pc, state) pair within one step, for callers willing to trade
// submatch-variant fidelity for a hard bound on thread-list size.
package vm

import (
	"fmt"

	"github.com/zyxw59/regexvm/internal/threadset"
	"github.com/zyxw59/regexvm/program"
	"github.com/zyxw59/regexvm/search"
	"github.com/zyxw59/regexvm/token"
	"github.com/zyxw59/regexvm/vmstate"
)

// Engine runs a single compiled program. An Engine is stateless between
// calls to Exec/ExecDeduped; the same *Engine may run many searches
// concurrently from different goroutines, since every call allocates its
// own thread lists.
type Engine[T token.Tok] struct {
	prog *program.Program[T]
}

// New wraps prog for execution.
func New[T token.Tok](prog *program.Program[T]) *Engine[T] {
	return &Engine[T]{prog: prog}
}

// thread is a single Pike VM thread: an instruction pointer paired with
// the submatch state carried along that path.
type thread[T token.Tok] struct {
	pc    program.InstrPtr
	state vmstate.State[T]
}

// threadList holds the threads active at one step. Two are kept (curr,
// next) and swapped each step so neither is reallocated.
type threadList[T token.Tok] struct {
	threads []thread[T]
}

func newThreadList[T token.Tok](capacity int) *threadList[T] {
	return &threadList[T]{threads: make([]thread[T], 0, capacity)}
}

func (l *threadList[T]) reset() { l.threads = l.threads[:0] }

// Steps counts admission-closure visits — one per instruction the
// closure walks through, control instructions included — performed by
// the most recent Exec/ExecDeduped call, exposed so tests can assert a
// linear bound on work done rather than timing wall-clock duration.
type Steps struct {
	Admitted int
}

// Exec runs the program over s and returns the final state of every
// accepted match. Matches are recorded as their threads reach Match:
// a match completing at an earlier input position precedes one
// completing later, and matches completing at the same position appear
// in the priority order the Split/JSplit instructions establish.
func (e *Engine[T]) Exec(s search.Searcher[T]) []vmstate.State[T] {
	states, _ := e.exec(s, nil)
	return states
}

// ExecDeduped runs the program like Exec, but collapses threads that
// reach the same (pc, state) pair within a single step, using an
// internal/threadset.Set sized to the program length. This bounds the
// thread list to at most one entry per (pc, distinct-state) combination
// per step, at the cost of possibly losing some submatch-variant
// matches that a full Exec would have reported separately.
func (e *Engine[T]) ExecDeduped(s search.Searcher[T]) []vmstate.State[T] {
	states, _ := e.exec(s, threadset.New[T](e.prog.Len()))
	return states
}

// ExecSteps behaves like Exec but also returns step-count
// instrumentation.
func (e *Engine[T]) ExecSteps(s search.Searcher[T]) ([]vmstate.State[T], Steps) {
	return e.exec(s, nil)
}

// ExecDedupedSteps behaves like ExecDeduped but also returns step-count
// instrumentation, for tests asserting the deduplicated mode's linear
// bound on work done.
func (e *Engine[T]) ExecDedupedSteps(s search.Searcher[T]) ([]vmstate.State[T], Steps) {
	return e.exec(s, threadset.New[T](e.prog.Len()))
}

func (e *Engine[T]) exec(s search.Searcher[T], dedup *threadset.Set[T]) ([]vmstate.State[T], Steps) {
	n := e.prog.Len()
	curr := newThreadList[T](n)
	next := newThreadList[T](n)
	var steps Steps

	var states []vmstate.State[T]

	hinter, _ := s.(search.WordHinter)

	if dedup != nil {
		dedup.Clear()
	}
	e.addThread(curr, dedup, &steps, vmstate.ProgramState[T]{InstrPtr: 0, TokenIndex: 0}, e.prog.NewState())

	word := false
	lastIdx := 0

	for {
		idx, tok, ok := s.Next()
		if !ok {
			break
		}
		var newWord bool
		if hinter != nil {
			newWord = hinter.WordAt(lastIdx)
		} else {
			newWord = tok.IsWord()
		}
		wordBoundary := newWord != word
		word = newWord

		if dedup != nil {
			dedup.Clear()
		}
		for _, th := range curr.threads {
			in := e.prog.Instr(th.pc)
			nextPS := vmstate.ProgramState[T]{InstrPtr: th.pc + 1, TokenIndex: idx, Token: &tok}
			switch in.Kind() {
			case program.KindToken:
				want, _ := in.Token()
				if tok == want {
					e.addThread(next, dedup, &steps, nextPS, th.state)
				}
			case program.KindSet:
				set, _ := in.Set()
				if set.Contains(tok) {
					e.addThread(next, dedup, &steps, nextPS, th.state)
				}
			case program.KindMap:
				mp, _ := in.Map()
				target := th.pc + 1
				if t, found := mp.Get(tok); found {
					target = t
				}
				e.addThread(next, dedup, &steps, vmstate.ProgramState[T]{InstrPtr: target, TokenIndex: idx, Token: &tok}, th.state)
			case program.KindAny:
				e.addThread(next, dedup, &steps, nextPS, th.state)
			case program.KindWordBoundary:
				if wordBoundary {
					e.addThread(next, dedup, &steps, vmstate.ProgramState[T]{InstrPtr: th.pc + 1, TokenIndex: lastIdx, Token: &tok}, th.state)
				}
			case program.KindMatch:
				states = append(states, th.state)
			default:
				// Split/JSplit/Jump/UpdateState/Reject never appear in an
				// admitted thread: addThread always resolves them away.
				panic("vm: admitted thread points at a control instruction")
			}
		}

		curr, next = next, curr
		next.reset()
		lastIdx = idx
	}

	// Remaining threads may still be waiting on a deferred WordBoundary,
	// resolved now against end-of-input (no next token).
	if dedup != nil {
		dedup.Clear()
	}
	for _, th := range curr.threads {
		in := e.prog.Instr(th.pc)
		switch in.Kind() {
		case program.KindWordBoundary:
			if word {
				e.addThread(next, dedup, &steps, vmstate.ProgramState[T]{InstrPtr: th.pc + 1, TokenIndex: lastIdx}, th.state)
			}
		case program.KindMatch:
			states = append(states, th.state)
		}
	}

	// A WordBoundary resolved above may itself have landed on Match.
	for _, th := range next.threads {
		if e.prog.Instr(th.pc).Kind() == program.KindMatch {
			states = append(states, th.state)
		}
	}

	return states, steps
}

// addThread performs the admission closure: it follows Split, JSplit,
// Jump, and UpdateState instructions until it reaches an instruction
// that consumes input or ends the thread (Token, Set, Map, Any,
// WordBoundary, Match), or a Reject, at which point recursion stops.
// Split's fall-through branch is admitted before its jump branch, and
// JSplit's jump branch before its fall-through branch, giving the
// earlier-admitted branch higher match priority.
func (e *Engine[T]) addThread(list *threadList[T], dedup *threadset.Set[T], steps *Steps, ps vmstate.ProgramState[T], state vmstate.State[T]) {
	e.addThreadDepth(list, dedup, steps, ps, state, 0)
}

// closureDepthSlack bounds how many zero-width instructions a single
// admission chain may cross beyond the program's own length before it's
// treated as an unbounded cycle. A Jump/Split chain with no consuming
// instruction is a compiler bug; detecting it here beats diverging.
const closureDepthSlack = 64

func (e *Engine[T]) addThreadDepth(list *threadList[T], dedup *threadset.Set[T], steps *Steps, ps vmstate.ProgramState[T], state vmstate.State[T], depth int) {
	if depth > e.prog.Len()+closureDepthSlack {
		panic(fmt.Errorf("vm: %w", program.ErrUnboundedClosure))
	}
	if dedup != nil && !dedup.Insert(ps.InstrPtr, state) {
		return
	}
	steps.Admitted++
	in := e.prog.Instr(ps.InstrPtr)
	switch in.Kind() {
	case program.KindSplit:
		target, _ := in.Split()
		e.addThreadDepth(list, dedup, steps, ps.WithInstrPtr(ps.InstrPtr+1), state.Clone(), depth+1)
		e.addThreadDepth(list, dedup, steps, ps.WithInstrPtr(target), state, depth+1)
	case program.KindJSplit:
		target, _ := in.JSplit()
		e.addThreadDepth(list, dedup, steps, ps.WithInstrPtr(target), state.Clone(), depth+1)
		e.addThreadDepth(list, dedup, steps, ps.WithInstrPtr(ps.InstrPtr+1), state, depth+1)
	case program.KindJump:
		target, _ := in.Jump()
		e.addThreadDepth(list, dedup, steps, ps.WithInstrPtr(target), state, depth+1)
	case program.KindUpdateState:
		update, _ := in.UpdateState()
		newState, ok := state.Update(update, ps)
		if !ok {
			return
		}
		e.addThreadDepth(list, dedup, steps, ps.WithInstrPtr(ps.InstrPtr+1), newState, depth+1)
	case program.KindReject:
		// thread dies
	default:
		list.threads = append(list.threads, thread[T]{pc: ps.InstrPtr, state: state})
	}
}
