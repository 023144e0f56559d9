package client

import (
	"github.com/atomfetch/atomfetch/client/download"
	"go.opentelemetry.io/otel/trace"
)

// ————————————————————————————————————————————————————————————————————
// Type aliases – re-export user-facing types from [download].
// ————————————————————————————————————————————————————————————————————

type (
	// DownloadOption configures a single download.
	DownloadOption = download.Option

	// DownloadError wraps a sentinel error with additional detail.
	DownloadError = download.Error

	// DownloadResult represents an in-flight or completed async download.
	DownloadResult = download.Result

	// DownloadRequest is one entry of a download manifest.
	DownloadRequest = download.Request

	// DownloadManifest is a validated set of download requests.
	DownloadManifest = download.Manifest
)

// ————————————————————————————————————————————————————————————————————
// Sentinel errors
// ————————————————————————————————————————————————————————————————————

var (
	// ErrContentLengthMismatch indicates the byte count did not match Content-Length.
	ErrContentLengthMismatch = download.ErrContentLengthMismatch

	// ErrSourceFailure indicates the response body failed mid-stream.
	ErrSourceFailure = download.ErrSourceFailure

	// ErrFileFailure indicates a local filesystem operation failed.
	ErrFileFailure = download.ErrFileFailure

	// ErrDownloadCancelled indicates the download was cancelled via context.
	ErrDownloadCancelled = download.ErrDownloadCancelled

	// ErrGroupShutdown indicates the download queue was shut down.
	ErrGroupShutdown = download.ErrGroupShutdown
)

// ————————————————————————————————————————————————————————————————————
// Download option forwarding functions
// ————————————————————————————————————————————————————————————————————

// WithProgress enables periodic download progress logging.
func WithProgress() DownloadOption { return download.WithProgress() }

// WithSkipExisting causes a download to return nil immediately when
// the destination file already exists.
func WithSkipExisting() DownloadOption { return download.WithSkipExisting() }

// WithBatch activates batch mode by creating a download queue with the given
// concurrency limit. If maxConcurrent <= 0, concurrency is unlimited.
func WithBatch(maxConcurrent int) DownloadOption { return download.WithBatch(maxConcurrent) }

// WithTracer wraps downloads in OpenTelemetry spans.
func WithTracer(tracer trace.Tracer) DownloadOption { return download.WithTracer(tracer) }

// WithLockTable scopes same-path serialization to the given table.
func WithLockTable(t *download.LockTable) DownloadOption { return download.WithLockTable(t) }
