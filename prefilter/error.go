package prefilter

import "errors"

// ErrEmptyPrefix is returned by New when asked to build a locator for
// the empty string.
var ErrEmptyPrefix = errors.New("prefilter: empty literal prefix")
