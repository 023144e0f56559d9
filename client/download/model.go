package download

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceFailure indicates the byte source failed mid-stream.
	ErrSourceFailure = errors.New("source read failure")

	// ErrFileFailure indicates a local filesystem operation failed
	// (preallocate, write, sync, close, or the final rename).
	ErrFileFailure = errors.New("file io failure")

	// ErrContentLengthMismatch indicates the byte count did not match
	// the declared content length.
	ErrContentLengthMismatch = errors.New("content length mismatch")

	// ErrDownloadCancelled indicates the download was cancelled via context.
	ErrDownloadCancelled = errors.New("download cancelled")

	// ErrGroupShutdown indicates the download queue was shut down.
	ErrGroupShutdown = errors.New("download queue shut down")
)

// Error wraps a sentinel error with additional detail.
type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}
