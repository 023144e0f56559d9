package download

import (
	"errors"

	"go.opentelemetry.io/otel/trace"
)

// Option defines optional settings for downloading files.
type Option func(*options) error

type options struct {
	progress     bool
	skipExisting bool
	tracer       trace.Tracer
	locks        *LockTable
	queue        *Queue
}

// WithProgress enables periodic download progress logging via the
// logger supplied to Handle.
func WithProgress() Option {
	return func(opts *options) error {
		opts.progress = true
		return nil
	}
}

// WithSkipExisting causes Handle to return nil immediately when
// the destination file already exists, avoiding a redundant download.
func WithSkipExisting() Option {
	return func(opts *options) error {
		opts.skipExisting = true
		return nil
	}
}

// WithTracer wraps the download in an OpenTelemetry span recording the
// destination path and byte count.
func WithTracer(tracer trace.Tracer) Option {
	return func(opts *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}

		opts.tracer = tracer
		return nil
	}
}

// WithLockTable scopes same-path serialization to the given table
// instead of the package-wide default.
func WithLockTable(t *LockTable) Option {
	return func(opts *options) error {
		if t == nil {
			return errors.New("lock table must not be nil")
		}

		opts.locks = t
		return nil
	}
}

// WithBatch activates batch mode by creating a download queue with the given
// concurrency limit. If maxConcurrent <= 0, concurrency is unlimited.
// It cannot be combined with [Result.Add], which already carries a queue.
func WithBatch(maxConcurrent int) Option {
	return func(opts *options) error {
		if opts.queue != nil {
			return errors.New("WithBatch conflicts with an existing batch")
		}

		opts.queue = newQueue(maxConcurrent)
		return nil
	}
}

// withBatch reuses an existing queue when chaining downloads onto a batch.
func withBatch(q *Queue) Option {
	return func(opts *options) error {
		opts.queue = q
		return nil
	}
}
