package download

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	return path
}

func TestPathGuard_ReleaseRemovesPath(t *testing.T) {
	path := writeTempFile(t, "armed.txt", "data")

	g := NewPathGuard(path, nil)
	g.Release()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected path removed, stat err: %v", err)
	}
}

func TestPathGuard_PersistKeepsPath(t *testing.T) {
	path := writeTempFile(t, "persisted.txt", "data")

	g := NewPathGuard(path, nil)
	got := g.Persist()
	g.Release()

	if got != path {
		t.Errorf("Persist returned %q, want %q", got, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected path to survive, stat err: %v", err)
	}
}

func TestPathGuard_ReleaseIdempotent(t *testing.T) {
	path := writeTempFile(t, "idem.txt", "data")

	g := NewPathGuard(path, nil)
	g.Release()
	g.Release() // second call must be a no-op

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected path removed, stat err: %v", err)
	}
}

func TestPathGuard_ReleaseMissingPathSwallowed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never-created.txt")

	// Must not panic or surface an error.
	g := NewPathGuard(path, nil)
	g.Release()
}

func TestPathGuard_ReleasesOnPanicUnwind(t *testing.T) {
	path := writeTempFile(t, "panic.txt", "data")

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic to propagate")
			}
		}()

		g := NewPathGuard(path, nil)
		defer g.Release()

		panic("mid-transfer failure")
	}()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected path removed during unwind, stat err: %v", err)
	}
}

func TestPathGuard_PersistThenPanicKeepsPath(t *testing.T) {
	path := writeTempFile(t, "persist-panic.txt", "data")

	func() {
		defer func() { _ = recover() }()

		g := NewPathGuard(path, nil)
		defer g.Release()

		g.Persist()
		panic("after persist")
	}()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected persisted path to survive unwind, stat err: %v", err)
	}
}
