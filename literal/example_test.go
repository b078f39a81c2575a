package literal_test

import (
	"fmt"

	"github.com/zyxw59/regexvm/ast"
	"github.com/zyxw59/regexvm/literal"
)

// ExampleRequiredPrefix shows the best-effort extraction the optional
// prefilter package uses: a Capture is transparent, and extraction stops
// at the first non-literal child.
func ExampleRequiredPrefix() {
	n := ast.Concat(
		ast.Capture(ast.LiteralString("GET "), 1),
		ast.AnyToken(),
	)
	prefix, ok := literal.RequiredPrefix(n)
	fmt.Println(string(prefix), ok)
	// Output: GET  true
}
