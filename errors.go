package icarus

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by every Pager operation after Close.
var ErrClosed = errors.New("pager closed")

// PageError reports a failure to materialize a page.
//
// The underlying error can be accessed via errors.Unwrap; a page outside
// the buffer matches index.ErrOutOfBounds.
type PageError struct {
	Page  int
	cause error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.cause)
}

func (e *PageError) Unwrap() error { return e.cause }
