// Package ast defines the regex AST node set package compile lowers to
// VM bytecode: alternation, concatenation, literal runs, character
// classes, quantifiers, captures, and word boundaries. There is no
// surface syntax parser — callers construct Node values directly.
//
// Node follows the same tagged-struct shape as program.Instr[T]: a Kind
// tag plus per-kind payload fields, read through accessor methods
// rather than directly.
package ast

import "github.com/zyxw59/regexvm/token"

// Kind identifies which variant of Node is populated.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindClass
	KindAnyToken
	KindWordBoundary
	KindConcat
	KindAlt
	KindRepeat
	KindCapture
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindClass:
		return "Class"
	case KindAnyToken:
		return "AnyToken"
	case KindWordBoundary:
		return "WordBoundary"
	case KindConcat:
		return "Concat"
	case KindAlt:
		return "Alt"
	case KindRepeat:
		return "Repeat"
	case KindCapture:
		return "Capture"
	default:
		return "Kind(?)"
	}
}

// RepeatOp identifies which of the three quantifier shapes a Repeat node
// uses.
type RepeatOp uint8

const (
	ZeroOrOne RepeatOp = iota
	ZeroOrMore
	OneOrMore
)

func (op RepeatOp) String() string {
	switch op {
	case ZeroOrOne:
		return "ZeroOrOne"
	case ZeroOrMore:
		return "ZeroOrMore"
	case OneOrMore:
		return "OneOrMore"
	default:
		return "RepeatOp(?)"
	}
}

// Node is a single AST node. Which fields are meaningful depends on
// Kind(); use the accessor methods rather than reading fields directly
// (the fields are unexported).
type Node struct {
	kind   Kind
	lits   []token.Rune
	class  token.Set[token.Rune]
	sub    []Node
	op     RepeatOp
	greedy bool
	capIdx int
}

// Kind returns which node variant this is.
func (n Node) Kind() Kind { return n.kind }

// Literal returns the literal token sequence, for Kind() == KindLiteral.
func (n Node) Literal() ([]token.Rune, bool) {
	if n.kind != KindLiteral {
		return nil, false
	}
	return n.lits, true
}

// Class returns the membership set, for Kind() == KindClass.
func (n Node) Class() (token.Set[token.Rune], bool) {
	if n.kind != KindClass {
		return nil, false
	}
	return n.class, true
}

// Concat returns the concatenated children, for Kind() == KindConcat.
func (n Node) Concat() ([]Node, bool) {
	if n.kind != KindConcat {
		return nil, false
	}
	return n.sub, true
}

// Alt returns the two alternatives, for Kind() == KindAlt.
func (n Node) Alt() (a, b Node, ok bool) {
	if n.kind != KindAlt {
		return Node{}, Node{}, false
	}
	return n.sub[0], n.sub[1], true
}

// Repeat returns the repeated body, the quantifier shape, and whether it
// is greedy, for Kind() == KindRepeat.
func (n Node) Repeat() (body Node, op RepeatOp, greedy bool, ok bool) {
	if n.kind != KindRepeat {
		return Node{}, 0, false, false
	}
	return n.sub[0], n.op, n.greedy, true
}

// Capture returns the captured body and the capture group's 1-based
// index (per the SaveList convention, group k spans slots 2k and 2k+1),
// for Kind() == KindCapture.
func (n Node) Capture() (body Node, index int, ok bool) {
	if n.kind != KindCapture {
		return Node{}, 0, false
	}
	return n.sub[0], n.capIdx, true
}

// Literal constructs a literal run of tokens, lowered to a sequence of
// Token instructions.
func Literal(toks ...token.Rune) Node {
	return Node{kind: KindLiteral, lits: toks}
}

// LiteralString is a convenience constructor building a Literal node
// from a Go string's codepoints.
func LiteralString(s string) Node {
	toks := make([]token.Rune, 0, len(s))
	for _, r := range s {
		toks = append(toks, token.Rune(r))
	}
	return Literal(toks...)
}

// Class constructs a character-class node, lowered to a Set instruction.
func Class(set token.Set[token.Rune]) Node {
	return Node{kind: KindClass, class: set}
}

// AnyToken constructs a node matching any single token, lowered to an
// Any instruction.
func AnyToken() Node {
	return Node{kind: KindAnyToken}
}

// WordBoundary constructs a zero-width word-boundary assertion.
func WordBoundary() Node {
	return Node{kind: KindWordBoundary}
}

// Concat constructs the concatenation of its children, in order.
func Concat(nodes ...Node) Node {
	return Node{kind: KindConcat, sub: nodes}
}

// Alt constructs an alternation: a is tried before b, giving it higher
// match priority.
func Alt(a, b Node) Node {
	return Node{kind: KindAlt, sub: []Node{a, b}}
}

// Repeat constructs a quantified repetition of body, per op and
// greediness.
func Repeat(body Node, op RepeatOp, greedy bool) Node {
	return Node{kind: KindRepeat, sub: []Node{body}, op: op, greedy: greedy}
}

// Capture constructs a capturing group wrapping body, lowered to
// `UpdateState(2k); <body>; UpdateState(2k+1)` where k is index.
func Capture(body Node, index int) Node {
	return Node{kind: KindCapture, sub: []Node{body}, capIdx: index}
}
