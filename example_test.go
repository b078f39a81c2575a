package regexvm_test

import (
	"fmt"

	"github.com/zyxw59/regexvm"
	"github.com/zyxw59/regexvm/ast"
)

// ExampleMustCompile demonstrates compiling an AST pattern and matching.
func ExampleMustCompile() {
	re := regexvm.MustCompile(ast.LiteralString("hello"), 0)
	fmt.Println(re.MatchString("hello world"))
	// Output: true
}

// ExampleRegexp_FindString demonstrates finding the first match.
func ExampleRegexp_FindString() {
	re := regexvm.MustCompile(ast.LiteralString("cat"), 0)
	fmt.Println(re.FindString("concatenate"))
	// Output: cat
}

// ExampleRegexp_FindStringSubmatchIndex demonstrates capture-group
// reporting: slots 0/1 are the whole match, slots 2k/2k+1 are group k.
func ExampleRegexp_FindStringSubmatchIndex() {
	// /(a+)b/
	pattern := ast.Concat(
		ast.Capture(ast.Repeat(ast.LiteralString("a"), ast.OneOrMore, true), 1),
		ast.LiteralString("b"),
	)
	re := regexvm.MustCompile(pattern, 1)
	fmt.Println(re.FindStringSubmatchIndex("xaab"))
	// Output: [1 4 1 3]
}
