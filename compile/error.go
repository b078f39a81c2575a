package compile

import "fmt"

// InvalidCaptureIndexError reports a Capture node whose index is
// less than 1 or greater than the numCaptures passed to Lower.
type InvalidCaptureIndexError struct {
	Index       int
	NumCaptures int
}

func (e *InvalidCaptureIndexError) Error() string {
	return fmt.Sprintf("compile: capture index %d out of range for %d capture group(s)", e.Index, e.NumCaptures)
}
