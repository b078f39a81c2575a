// Package threadset tracks which (pc, state) pairs have already been
// admitted to a thread list during a single VM step, for the opt-in
// deduplicated execution mode. A sparse.PCSet answers "has any thread
// reached this pc yet" in constant time; a per-pc bucket of the states
// already admitted there, compared pairwise with vmstate.State.Equal,
// lets distinct states at the same pc both survive.
package threadset

import (
	"github.com/zyxw59/regexvm/internal/sparse"
	"github.com/zyxw59/regexvm/token"
	"github.com/zyxw59/regexvm/vmstate"
)

// Set is a (pc, state) membership set over token type T.
type Set[T token.Tok] struct {
	pcs     *sparse.PCSet
	buckets [][]vmstate.State[T]
}

// New creates a Set whose universe of pcs is [0, capacity).
func New[T token.Tok](capacity int) *Set[T] {
	return &Set[T]{
		pcs:     sparse.NewPCSet(capacity),
		buckets: make([][]vmstate.State[T], capacity),
	}
}

// Contains reports whether (pc, state) has already been inserted, per
// state's Equal.
func (s *Set[T]) Contains(pc int, state vmstate.State[T]) bool {
	if !s.pcs.Contains(pc) {
		return false
	}
	for _, other := range s.buckets[pc] {
		if state.Equal(other) {
			return true
		}
	}
	return false
}

// Insert adds (pc, state) to the set. If Contains(pc, state) is already
// true, this is a no-op and returns false; otherwise it records the pair
// and returns true.
func (s *Set[T]) Insert(pc int, state vmstate.State[T]) bool {
	if s.Contains(pc, state) {
		return false
	}
	s.pcs.Insert(pc)
	s.buckets[pc] = append(s.buckets[pc], state)
	return true
}

// Clear empties the set, walking only the pcs touched since the last
// Clear.
func (s *Set[T]) Clear() {
	s.pcs.Iter(func(pc int) {
		s.buckets[pc] = nil
	})
	s.pcs.Clear()
}
