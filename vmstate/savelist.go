package vmstate

import "github.com/zyxw59/regexvm/token"

// savedSlots is the copy-on-write backing store shared by SaveList
// values that have not yet diverged: multiple threads share one
// *savedSlots until an Update needs to write to it, at which point the
// writer copies first. Update never writes into an existing store, so a
// SaveList value's slots do not change after it is created.
type savedSlots struct {
	data []int
	refs int
}

// SaveList is the built-in State implementation used for capture-group
// tracking. By convention, capture group k's start and end are stored in
// slots 2k and 2k+1; slots 0 and 1 hold the whole match's span. A slot
// holding -1 has not been written yet.
//
// SaveList carries a phantom T type parameter purely to satisfy
// State[T] for the caller's chosen token type; its behavior never
// depends on T.
type SaveList[T token.Tok] struct {
	shared *savedSlots
}

// NewSaveList creates a SaveList with the given number of slots, all
// unset (-1). numSlots is this State's Init parameter (see
// program.Program's state factory).
func NewSaveList[T token.Tok](numSlots int) SaveList[T] {
	if numSlots == 0 {
		return SaveList[T]{}
	}
	data := make([]int, numSlots)
	for i := range data {
		data[i] = -1
	}
	return SaveList[T]{shared: &savedSlots{data: data, refs: 1}}
}

// Slots returns the current slot values, or nil if this SaveList has
// zero slots.
func (s SaveList[T]) Slots() []int {
	if s.shared == nil {
		return nil
	}
	return s.shared.data
}

// Clone implements State[T]: it shares the backing store and bumps the
// refcount rather than copying, deferring the copy to the next Update
// that actually writes (see Update).
func (s SaveList[T]) Clone() State[T] {
	if s.shared == nil {
		return s
	}
	s.shared.refs++
	return SaveList[T]{shared: s.shared}
}

// Equal implements State[T].
func (s SaveList[T]) Equal(other State[T]) bool {
	o, ok := other.(SaveList[T])
	if !ok {
		return false
	}
	if s.shared == nil || o.shared == nil {
		return s.shared == nil && o.shared == nil
	}
	if len(s.shared.data) != len(o.shared.data) {
		return false
	}
	for i, v := range s.shared.data {
		if o.shared.data[i] != v {
			return false
		}
	}
	return true
}

// Update implements State[T]. update must be an int naming the slot to
// write; the current token index is written there, in a copy of the
// slots, so s and its clones keep their values. Returns false
// (rejecting the thread) if the slot is out of range.
func (s SaveList[T]) Update(update any, ctx ProgramState[T]) (State[T], bool) {
	slot, ok := update.(int)
	if !ok || s.shared == nil || slot < 0 || slot >= len(s.shared.data) {
		return s, false
	}
	if s.shared.refs > 1 {
		s.shared.refs--
	}
	newData := make([]int, len(s.shared.data))
	copy(newData, s.shared.data)
	newData[slot] = ctx.TokenIndex
	return SaveList[T]{shared: &savedSlots{data: newData, refs: 1}}, true
}
