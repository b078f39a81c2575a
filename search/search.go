// Package search adapts various input shapes — UTF-8 text, arbitrary
// element slices, or a caller-supplied stream — into the indexed token
// stream the VM consumes.
package search

import (
	"sort"
	"unicode/utf8"

	"github.com/zyxw59/regexvm/token"
	"github.com/zyxw59/regexvm/wordscan"
)

// Searcher produces a stream of (post-consumption index, token) pairs.
// idx is the index one past the token's end: for UTF-8 text this is a
// byte offset advancing by the codepoint's encoded width; for a uniform
// element slice it advances by 1 per element. ok is false once the
// stream is exhausted, at which point idx is the end offset of the input
// and tok is the zero value.
type Searcher[T any] interface {
	Next() (idx int, tok T, ok bool)
}

// WordHinter is an optional capability a Searcher may implement to let
// vm.Engine resolve IsWord for the token starting at a given
// pre-consumption index from a precomputed table instead of calling
// Tok.IsWord per token. NewUTF8Searcher implements this over an
// all-ASCII input's precomputed wordscan runs; vm.Engine falls back to
// Tok.IsWord when a Searcher doesn't implement it.
type WordHinter interface {
	WordAt(pos int) bool
}

// sliceSearcher implements Searcher over a uniform element slice.
type sliceSearcher[T any] struct {
	xs  []T
	pos int
}

// NewSliceSearcher adapts an arbitrary element slice into a Searcher
// that offsets by one element per token.
func NewSliceSearcher[T any](xs []T) Searcher[T] {
	return &sliceSearcher[T]{xs: xs}
}

func (s *sliceSearcher[T]) Next() (int, T, bool) {
	if s.pos >= len(s.xs) {
		var zero T
		return s.pos, zero, false
	}
	tok := s.xs[s.pos]
	s.pos++
	return s.pos, tok, true
}

// utf8Searcher implements Searcher over UTF-8 text: idx is a byte
// offset, advancing by each codepoint's encoded width.
type utf8Searcher struct {
	s   string
	pos int
	// runs is an optional precomputed word-class acceleration table
	// (see wordscan); nil when the input isn't worth accelerating.
	runs []wordscan.Run
}

// NewUTF8Searcher adapts a UTF-8 string into a Searcher over codepoints,
// reporting byte offsets. Invalid UTF-8 sequences decode as
// utf8.RuneError with width 1, matching range-over-string semantics.
func NewUTF8Searcher(s string) Searcher[token.Rune] {
	u := &utf8Searcher{s: s}
	if wordscan.IsASCII(s) {
		u.runs = wordscan.ScanASCIIWordRuns(s)
	}
	return u
}

func (u *utf8Searcher) Next() (int, token.Rune, bool) {
	if u.pos >= len(u.s) {
		return u.pos, 0, false
	}
	r, width := utf8.DecodeRuneInString(u.s[u.pos:])
	u.pos += width
	return u.pos, token.Rune(r), true
}

// WordAt implements WordHinter: when the input was all-ASCII and a
// wordscan run table was precomputed, this is a binary search into that
// table instead of an allocation-free but still per-call
// unicode.IsSpace decode. pos must be the start byte offset of a token
// this searcher has returned or will return; behavior is otherwise
// unspecified.
func (u *utf8Searcher) WordAt(pos int) bool {
	if u.runs == nil {
		r, _ := utf8.DecodeRuneInString(u.s[pos:])
		return token.Rune(r).IsWord()
	}
	i := sort.Search(len(u.runs), func(i int) bool { return u.runs[i].End > pos })
	if i >= len(u.runs) {
		return false
	}
	return u.runs[i].Word
}
