// Package literal extracts a best-effort required literal prefix from
// an ast.Node, for use by the optional prefilter acceleration package.
// Extraction is deliberately shallow — a single prefix, no
// alternation-set analysis — because its only consumer is a skip-ahead
// that needs one candidate literal, not a full multi-pattern dispatch.
package literal

import (
	"github.com/zyxw59/regexvm/ast"
	"github.com/zyxw59/regexvm/token"
)

// RequiredPrefix returns the literal token sequence that must appear at
// the start of any match of n, and whether one was found. It recognizes
// three shapes: n itself is a Literal; n is a Capture, whose body is
// examined in its place; or n is a Concat whose leading run of children
// are Literals (the run stops at the first non-literal child — Capture
// is also unwrapped there so `(ab)c`-style patterns still yield a
// prefix, since a Capture is transparent to matching).
func RequiredPrefix(n ast.Node) ([]rune, bool) {
	switch n.Kind() {
	case ast.KindLiteral:
		toks, _ := n.Literal()
		if len(toks) == 0 {
			return nil, false
		}
		return runesOf(toks), true

	case ast.KindCapture:
		body, _, _ := n.Capture()
		return RequiredPrefix(body)

	case ast.KindConcat:
		subs, _ := n.Concat()
		var prefix []rune
		for _, s := range subs {
			toks, ok := literalRun(s)
			if !ok {
				break
			}
			prefix = append(prefix, runesOf(toks)...)
		}
		return prefix, len(prefix) > 0

	default:
		return nil, false
	}
}

// literalRun returns n's literal tokens if n is itself a Literal, or
// unwraps Captures (nested to any depth) around one; anything else (Alt,
// Repeat, Class, AnyToken, WordBoundary) is not statically required, so
// the caller's prefix-accumulation loop stops there.
func literalRun(n ast.Node) ([]token.Rune, bool) {
	switch n.Kind() {
	case ast.KindLiteral:
		return n.Literal()
	case ast.KindCapture:
		body, _, _ := n.Capture()
		return literalRun(body)
	default:
		return nil, false
	}
}

func runesOf(toks []token.Rune) []rune {
	rs := make([]rune, len(toks))
	for i, t := range toks {
		rs[i] = rune(t)
	}
	return rs
}
