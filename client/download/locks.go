package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sync/semaphore"
)

// LockTable serializes downloads targeting the same destination path
// within the process. Entries are reference counted and pruned once
// the last interested caller releases, so the table stays bounded by
// the number of in-flight downloads.
//
// It is an in-process primitive only; it does not protect against
// other processes writing the same path.
type LockTable struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// NewLockTable returns an empty table. Most callers can rely on the
// package-level default used by Handle; constructing a table is only
// needed to scope serialization, e.g. per subsystem or in tests.
func NewLockTable() *LockTable {
	return &LockTable{
		entries: make(map[string]*lockEntry),
	}
}

// defaultLocks serializes all Handle calls that don't inject their own table.
var defaultLocks = NewLockTable()

// Acquire blocks until the caller holds the exclusive entry for key,
// or ctx ends. On success it returns a release func that must be
// called exactly once; release is safe to invoke via defer on every
// exit path.
func (t *LockTable) Acquire(ctx context.Context, key string) (func(), error) {
	t.mu.Lock()
	e, ok := t.entries[key]
	if !ok {
		e = &lockEntry{sem: semaphore.NewWeighted(1)}
		t.entries[key] = e
	}
	e.refs++
	t.mu.Unlock()

	if err := e.sem.Acquire(ctx, 1); err != nil {
		t.unref(key, e)
		return nil, fmt.Errorf("%w: waiting for path lock: %w", ErrDownloadCancelled, err)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			e.sem.Release(1)
			t.unref(key, e)
		})
	}

	return release, nil
}

// Len reports the number of live entries. Used by tests to verify pruning.
func (t *LockTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

func (t *LockTable) unref(key string, e *lockEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(t.entries, key)
	}
}

// lockKey canonicalizes destPath into a table key. The destination may
// not exist yet, so symlinks are not resolved; Clean+Abs is the
// identity two callers naming the same target will share.
func lockKey(destPath string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(destPath))
	if err != nil {
		return "", fmt.Errorf("canonicalizing path: %w", err)
	}

	return abs, nil
}
