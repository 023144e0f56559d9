package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// IntoFile streams src into the already-open file f and returns the
// number of bytes written. When contentLength >= 0 the file is
// preallocated up front, surfacing insufficient disk space before any
// bytes move, and the actual byte count is checked against it after
// the copy.
//
// On error the file may hold a partial prefix; discarding it is the
// caller's job. IntoFile never retries.
func IntoFile(ctx context.Context, src io.Reader, f *os.File, contentLength int64, logger *slog.Logger, optFns ...Option) (int64, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return 0, fmt.Errorf("applying option: %w", err)
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return intoFile(ctx, src, f, contentLength, logger, &opts)
}

// intoFile is the option-struct form shared with Handle, which has
// already applied its options.
func intoFile(ctx context.Context, src io.Reader, f *os.File, contentLength int64, logger *slog.Logger, opts *options) (int64, error) {
	if contentLength >= 0 {
		if err := f.Truncate(contentLength); err != nil {
			return 0, fmt.Errorf("%w: preallocating %d bytes: %w", ErrFileFailure, contentLength, err)
		}
	}

	src = &contextReader{ctx: ctx, r: &sourceReader{r: src}}

	var writer io.Writer = f
	if opts.progress {
		writer = &progressWriter{
			w:         writer,
			logger:    logger,
			total:     contentLength,
			startTime: time.Now(),
		}
	}

	n, err := io.Copy(writer, src)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return n, fmt.Errorf("%w: %w", ErrDownloadCancelled, err)
		case errors.Is(err, ErrSourceFailure):
			return n, err
		default:
			return n, fmt.Errorf("%w: writing file body: %w", ErrFileFailure, err)
		}
	}

	if contentLength >= 0 && n != contentLength {
		return n, &Error{
			Err:    ErrContentLengthMismatch,
			Detail: fmt.Sprintf("expected %d bytes, got %d", contentLength, n),
		}
	}

	if err := f.Sync(); err != nil {
		return n, fmt.Errorf("%w: syncing file: %w", ErrFileFailure, err)
	}

	return n, nil
}

// sourceReader tags read-side failures so they remain distinguishable
// from file errors after passing through io.Copy.
type sourceReader struct {
	r io.Reader
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w: %w", ErrSourceFailure, err)
	}

	return n, err
}
