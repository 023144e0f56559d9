package download

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// failingReader returns its payload, then fails with readErr.
type failingReader struct {
	data    *bytes.Reader
	readErr error
}

func (fr *failingReader) Read(p []byte) (int, error) {
	n, err := fr.data.Read(p)
	if errors.Is(err, io.EOF) {
		return n, fr.readErr
	}

	return n, err
}

func openScratchFile(t *testing.T) *os.File {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "scratch.bin"))
	if err != nil {
		t.Fatalf("creating scratch file: %v", err)
	}
	t.Cleanup(func() { f.Close() })

	return f
}

func TestIntoFile_Basic(t *testing.T) {
	content := strings.Repeat("x", 4096)
	f := openScratchFile(t)

	n, err := IntoFile(context.Background(), strings.NewReader(content), f, int64(len(content)), nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("expected %d bytes written, got %d", len(content), n)
	}

	got, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("reading file back: %v", err)
	}
	if string(got) != content {
		t.Error("file contents do not match source")
	}
}

func TestIntoFile_UnknownLength(t *testing.T) {
	content := "no declared length"
	f := openScratchFile(t)

	n, err := IntoFile(context.Background(), strings.NewReader(content), f, -1, nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("expected %d bytes, got %d", len(content), n)
	}
}

func TestIntoFile_Preallocates(t *testing.T) {
	const declared = 8192
	content := strings.Repeat("y", declared)
	f := openScratchFile(t)

	if _, err := IntoFile(context.Background(), strings.NewReader(content), f, declared, nil); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	info, err := os.Stat(f.Name())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != declared {
		t.Errorf("expected file size %d, got %d", declared, info.Size())
	}
}

func TestIntoFile_LengthMismatchShort(t *testing.T) {
	f := openScratchFile(t)

	// Source delivers 5 bytes but declares 10.
	_, err := IntoFile(context.Background(), strings.NewReader("short"), f, 10, nil)
	if !errors.Is(err, ErrContentLengthMismatch) {
		t.Errorf("expected ErrContentLengthMismatch, got: %v", err)
	}

	var dlErr *Error
	if !errors.As(err, &dlErr) {
		t.Errorf("expected *Error with detail, got: %T", err)
	}
}

func TestIntoFile_SourceFailureTagged(t *testing.T) {
	wantErr := errors.New("connection reset")
	src := &failingReader{
		data:    bytes.NewReader([]byte("partial prefix")),
		readErr: wantErr,
	}
	f := openScratchFile(t)

	_, err := IntoFile(context.Background(), src, f, -1, nil)
	if !errors.Is(err, ErrSourceFailure) {
		t.Errorf("expected ErrSourceFailure, got: %v", err)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("expected original cause preserved, got: %v", err)
	}
	if errors.Is(err, ErrFileFailure) {
		t.Error("source failure must not look like a file failure")
	}
}

func TestIntoFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := openScratchFile(t)

	_, err := IntoFile(ctx, strings.NewReader("data"), f, -1, nil)
	if !errors.Is(err, ErrDownloadCancelled) {
		t.Errorf("expected ErrDownloadCancelled, got: %v", err)
	}
}

func TestIntoFile_WriteToClosedFile(t *testing.T) {
	f := openScratchFile(t)
	f.Close()

	_, err := IntoFile(context.Background(), strings.NewReader("data"), f, -1, nil)
	if !errors.Is(err, ErrFileFailure) {
		t.Errorf("expected ErrFileFailure, got: %v", err)
	}
}

func TestIntoFile_NilLoggerWithProgress(t *testing.T) {
	content := strings.Repeat("z", 1<<20)
	f := openScratchFile(t)

	// The progress writer logs through the supplied logger; a nil
	// logger must fall back to slog.Default rather than crash.
	n, err := IntoFile(context.Background(), strings.NewReader(content), f, int64(len(content)), nil, WithProgress())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("expected %d bytes written, got %d", len(content), n)
	}
}

func TestIntoFile_EmptySource(t *testing.T) {
	f := openScratchFile(t)

	n, err := IntoFile(context.Background(), strings.NewReader(""), f, 0, nil)
	if err != nil {
		t.Fatalf("expected no error for empty source, got: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 bytes, got %d", n)
	}
}
