package download

import (
	"context"
	"io"
)

// contextReader fails the stream as soon as ctx ends. HTTP response
// bodies already unblock on request-context cancellation; this covers
// sources that don't.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(p)
}
