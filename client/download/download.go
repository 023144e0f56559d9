package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Handle streams body to a temp file beside destPath and installs it
// with a single atomic rename on success. On any failure, including
// cancellation and panic unwinding, the temp file is removed and
// destPath keeps its prior state; Handle never writes destPath
// directly.
//
// Concurrent calls for the same destination are serialized through a
// per-path lock table, so two callers cannot interleave partial
// states. The temp file lives in destPath's directory because rename
// is only atomic within one filesystem.
func Handle(ctx context.Context, body io.Reader, contentLength int64, destPath string, logger *slog.Logger, optFns ...Option) error {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return fmt.Errorf("applying option: %w", err)
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	ctx, span := startSpan(ctx, opts.tracer, "download.handle",
		attribute.String("dest", destPath),
		attribute.Int64("content_length", contentLength),
	)
	defer span.End()

	key, err := lockKey(destPath)
	if err != nil {
		return err
	}

	locks := opts.locks
	if locks == nil {
		locks = defaultLocks
	}

	release, err := locks.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()

	// Stat under the lock so the answer reflects whatever a concurrent
	// installer for the same path just did, not a state it is about to
	// replace.
	if opts.skipExisting {
		if _, err := os.Stat(destPath); err == nil {
			logger.Info("skipping existing file", "path", destPath)
			return nil
		}
	}

	file, err := os.OpenFile(tempPath(destPath), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", ErrFileFailure, err)
	}

	guard := NewPathGuard(file.Name(), logger)
	defer guard.Release()
	defer func() {
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Error("defer closing temp file", "error", err)
		}
	}()

	n, err := intoFile(ctx, body, file, contentLength, logger, &opts)
	if err != nil {
		return err
	}

	// Close before rename; an open handle blocks the rename on some
	// platforms.
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %w", ErrFileFailure, err)
	}
	if err := os.Rename(file.Name(), destPath); err != nil {
		return fmt.Errorf("%w: renaming temp file: %w", ErrFileFailure, err)
	}

	guard.Persist()
	span.SetAttributes(attribute.Int64("bytes", n))

	return nil
}

// tempPath derives a hidden sibling of destPath. The uuid suffix keeps
// concurrent writers that bypass the lock table from colliding on
// O_EXCL creation.
func tempPath(destPath string) string {
	name := "." + filepath.Base(destPath) + "." + uuid.NewString() + ".part"
	return filepath.Join(filepath.Dir(destPath), name)
}

// startSpan begins a span when a tracer is configured; otherwise it
// returns a noop span so call sites can End unconditionally.
func startSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, noop.Span{}
	}

	ctx, span := tracer.Start(ctx, name)
	span.SetAttributes(attrs...)

	return ctx, span
}
