// Package prefilter accelerates the convenience regexvm.Regexp facade by
// locating candidate start offsets for a program's required literal
// prefix before invoking the VM. It never changes match results: a
// caller that skips a prefilter miss is skipping regions the VM itself
// could not have matched anyway (the prefix is required), and every hit
// is still verified by a real vm.Engine run.
package prefilter

import "github.com/coregx/ahocorasick"

// LiteralPrefix locates byte offsets in a haystack where a single
// required literal prefix could start.
type LiteralPrefix struct {
	automaton *ahocorasick.Automaton
	prefix    string
}

// New builds a LiteralPrefix locator for prefix. An empty prefix is
// rejected — there is nothing useful to prefilter on.
func New(prefix string) (*LiteralPrefix, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	builder := ahocorasick.NewBuilder()
	builder.AddPattern([]byte(prefix))
	automaton, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &LiteralPrefix{automaton: automaton, prefix: prefix}, nil
}

// Prefix returns the literal this locator searches for.
func (lp *LiteralPrefix) Prefix() string { return lp.prefix }

// Find returns the byte offset of the first occurrence of the prefix in
// haystack at or after at, or -1 if it does not occur again. Callers
// should still run the full VM starting from (at most) this offset,
// since a literal prefix occurrence is necessary but not sufficient for
// a match (the rest of the pattern still has to succeed).
func (lp *LiteralPrefix) Find(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	m := lp.automaton.Find(haystack, at)
	if m == nil {
		return -1
	}
	return m.Start
}
