//go:build amd64

package wordscan

import "golang.org/x/sys/cpu"

// SSE2 is baseline on amd64; the flag exists so narrower SWAR variants
// can gate on wider vector features later.
var hasSWARFastPath = cpu.X86.HasSSE2
