// Package regexvm is a convenience facade over the generic Pike VM
// engine in package vm: given an already-built ast.Node, it compiles
// the AST with package compile, runs it with package vm, and reports
// matches and capture groups as byte-index slices, the shape stdlib
// regexp callers expect.
package regexvm

import (
	"unicode/utf8"

	"github.com/zyxw59/regexvm/ast"
	"github.com/zyxw59/regexvm/compile"
	"github.com/zyxw59/regexvm/literal"
	"github.com/zyxw59/regexvm/prefilter"
	"github.com/zyxw59/regexvm/program"
	"github.com/zyxw59/regexvm/search"
	"github.com/zyxw59/regexvm/token"
	"github.com/zyxw59/regexvm/vm"
	"github.com/zyxw59/regexvm/vmstate"
)

// Regexp is a compiled pattern, ready to search UTF-8 text. A *Regexp is
// safe to use concurrently from multiple goroutines: vm.Engine.Exec
// allocates fresh thread lists per call and Regexp carries no other
// mutable state.
//
// Limitations: no surface regex syntax (patterns are ast.Node values
// built directly — see package ast); no Replace family; no case-folding
// or multiline flags (fold/anchor behavior belongs in how the caller
// builds the AST, e.g. an ast.Class built from a case-insensitive
// token.Set).
type Regexp struct {
	prog        *program.Program[token.Rune]
	eng         *vm.Engine[token.Rune]
	numCaptures int
	prefix      *prefilter.LiteralPrefix
}

// Compile lowers body into a program and wraps it for searching, using
// DefaultConfig. numCaptures is the number of capture groups body's
// ast.Capture nodes use; see compile.Lower for the indexing rules.
func Compile(body ast.Node, numCaptures int) (*Regexp, error) {
	return CompileWithConfig(body, numCaptures, DefaultConfig())
}

// MustCompile is Compile, panicking on error. Useful for patterns known
// to be well-formed at compile time (e.g. constructed from a constant
// AST rather than derived from untrusted input).
func MustCompile(body ast.Node, numCaptures int) *Regexp {
	re, err := Compile(body, numCaptures)
	if err != nil {
		panic("regexvm: Compile: " + err.Error())
	}
	return re
}

// CompileWithConfig is Compile with explicit facade tuning.
func CompileWithConfig(body ast.Node, numCaptures int, cfg Config) (*Regexp, error) {
	prog, err := compile.Lower(body, numCaptures)
	if err != nil {
		return nil, err
	}

	re := &Regexp{
		prog:        prog,
		eng:         vm.New(prog),
		numCaptures: numCaptures,
	}

	if cfg.EnablePrefilter {
		if prefix, ok := literal.RequiredPrefix(body); ok && len(prefix) > 0 {
			if lp, err := prefilter.New(string(prefix)); err == nil {
				re.prefix = lp
			}
		}
	}

	return re, nil
}

// NumSubexp returns the number of capture groups in the pattern (not
// counting the implicit whole-match group 0).
func (re *Regexp) NumSubexp() int { return re.numCaptures }

// mayMatch is the prefilter short-circuit: it reports false only when a
// required literal prefix provably cannot occur in s, in which case the
// VM is skipped entirely. It always reports true when there is no
// prefilter or the prefix does occur — the VM run that follows is the
// actual source of truth.
func (re *Regexp) mayMatch(s string) bool {
	if re.prefix == nil {
		return true
	}
	return re.prefix.Find([]byte(s), 0) >= 0
}

// firstMatch runs the VM over s and returns the SaveList slots of the
// first match the engine records: the match completing earliest in the
// input, ties broken by the pattern's Split/JSplit priority. Returns
// nil if there is no match.
func (re *Regexp) firstMatch(s string) []int {
	if !re.mayMatch(s) {
		return nil
	}
	results := re.eng.Exec(search.NewUTF8Searcher(s))
	if len(results) == 0 {
		return nil
	}
	sl := results[0].(vmstate.SaveList[token.Rune])
	return sl.Slots()
}

// MatchString reports whether s contains any match of the pattern.
func (re *Regexp) MatchString(s string) bool {
	return re.firstMatch(s) != nil
}

// FindStringIndex returns a two-element slice giving the byte offsets
// of the first match the engine records in s (see firstMatch for the
// ordering), or nil if there is no match.
func (re *Regexp) FindStringIndex(s string) []int {
	slots := re.firstMatch(s)
	if slots == nil || slots[0] < 0 || slots[1] < 0 {
		return nil
	}
	return []int{slots[0], slots[1]}
}

// FindString returns the text of the first match in s, or "" if there
// is no match. Note this cannot distinguish "no match" from an empty
// match; use FindStringIndex when that distinction matters.
func (re *Regexp) FindString(s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindStringSubmatchIndex returns slot pairs for the whole match and
// every capture group, in the SaveList layout: result[0], result[1]
// are the whole match's start/end; result[2k],
// result[2k+1] are capture group k's start/end. An unset group's pair is
// (-1, -1). Returns nil if there is no match.
func (re *Regexp) FindStringSubmatchIndex(s string) []int {
	slots := re.firstMatch(s)
	if slots == nil {
		return nil
	}
	out := make([]int, len(slots))
	copy(out, slots)
	return out
}

// FindAllStringIndex returns the start/end byte offsets of successive
// non-overlapping matches of the pattern in s, in left-to-right order.
// If n >= 0, it returns at most n matches. It is a thin wrapper, not a
// new matching algorithm: the VM is re-invoked at successive start
// offsets.
func (re *Regexp) FindAllStringIndex(s string, n int) [][]int {
	if n == 0 {
		return nil
	}
	var out [][]int
	pos := 0
	for pos <= len(s) {
		loc := re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		out = append(out, []int{start, end})
		if n > 0 && len(out) >= n {
			break
		}
		if end > pos {
			pos = end
		} else if pos >= len(s) {
			break
		} else {
			// Empty match: advance by one codepoint's width to avoid
			// looping forever on the same offset.
			_, width := utf8.DecodeRuneInString(s[pos:])
			pos += width
		}
	}
	return out
}
