//go:build !amd64

package wordscan

// Off amd64 we still take the SWAR path: it's plain uint64 arithmetic,
// not an intrinsic, so it needs no per-arch feature check.
var hasSWARFastPath = true
