package prefilter_test

import (
	"fmt"

	"github.com/zyxw59/regexvm/prefilter"
)

// ExampleLiteralPrefix shows the prefilter's sole use: a required
// literal prefix is necessary but never sufficient for a match, so an
// offset Find returns should always still be verified by a real
// vm.Engine run.
func ExampleLiteralPrefix() {
	lp, err := prefilter.New("ERROR")
	if err != nil {
		fmt.Println(err)
		return
	}
	at := lp.Find([]byte("INFO: started\nERROR: disk full"), 0)
	fmt.Println(at)
	// Output: 14
}
