// Package download streams bytes to a filesystem path atomically: the
// destination either ends up with the complete content or keeps its
// prior state, never a partial write.
//
// # Single Download
//
// [Handle] writes the stream to a temporary file alongside the
// destination path, then atomically renames it on success:
//
//	err := download.Handle(ctx, resp.Body, resp.ContentLength, destPath, logger)
//
// On failure the temporary file is removed and the destination is
// untouched. Concurrent calls for the same destination are serialized
// through an in-process [LockTable].
//
// # Building Blocks
//
// [IntoFile] is the streaming leaf: it preallocates, copies, and
// verifies the declared length against the bytes seen, with no
// knowledge of paths or locking. [PathGuard] is the scope-exit
// cleanup: it owns a path and removes it on Release unless Persist
// was called.
//
// # Batches
//
// A [Manifest] lists validated URL/path pairs. Most callers should use
// the higher-level [github.com/atomfetch/atomfetch/client] package,
// which invokes Handle internally and re-exports all download options
// as client.With* functions.
package download
