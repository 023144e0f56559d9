package download

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
)

// PathGuard owns a filesystem path and removes it when released,
// unless Persist was called first. It exists so that every exit path
// out of a download attempt, including panics, discards the temporary
// artifact:
//
//	guard := NewPathGuard(tmp, logger)
//	defer guard.Release()
//	// ... work ...
//	guard.Persist() // success: the path outlives the guard
//
// Removal failures are logged and swallowed. Cleanup is best-effort
// and must never mask the error that triggered it.
type PathGuard struct {
	path     string
	logger   *slog.Logger
	released bool
	armed    bool
}

// NewPathGuard returns an armed guard owning path.
func NewPathGuard(path string, logger *slog.Logger) *PathGuard {
	if logger == nil {
		logger = slog.Default()
	}

	return &PathGuard{
		path:   path,
		logger: logger,
		armed:  true,
	}
}

// Path returns the guarded path.
func (g *PathGuard) Path() string {
	return g.path
}

// Persist disarms the guard and hands ownership of the path back to
// the caller. Release becomes a no-op.
func (g *PathGuard) Persist() string {
	g.armed = false
	return g.path
}

// Release removes the path if the guard is still armed. It is intended
// to run via defer and is idempotent. A path that is already gone is
// not an error.
func (g *PathGuard) Release() {
	if g.released {
		return
	}
	g.released = true

	if !g.armed {
		return
	}

	if err := os.Remove(g.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		g.logger.Error("failed to remove guarded path", "path", g.path, "error", err)
	}
}
