package multipart

import "errors"

var (
	// ErrClosed is returned by any operation attempted after Close.
	ErrClosed = errors.New("multipart: writer is closed")
	// ErrStalePart is returned when writing to a part handle after
	// a newer part was created or the writer was closed.
	ErrStalePart = errors.New("multipart: write to stale part")
	// ErrInvalidBoundary is returned for boundaries not permitted by RFC 2046.
	ErrInvalidBoundary = errors.New("multipart: invalid boundary")
)

// WriteError wraps failure of underlying writer.
// Bytes already accepted by underlying writer before failure are not
// rolled back, so output may end with truncated block.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return "multipart: " + e.Op + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }
