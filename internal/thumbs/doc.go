// Package thumbs implements the on-demand, disk-backed thumbnail cache.
//
// # Keying
//
// An artifact is keyed by the source file's relative path and modification
// time (md5, hex, ".jpg"). Editing a file changes its key, so stale
// artifacts are orphaned rather than overwritten; nothing in this package
// ever deletes from the cache directory.
//
// # Concurrency
//
// Two independent mechanisms bound the work:
//
//   - Per key, a singleflight.Group guarantees that any number of
//     concurrent misses for the same source trigger exactly one
//     extraction; all callers block on that attempt's outcome. The group
//     forgets the key when the attempt finishes, which is also what makes
//     failures retryable.
//   - Across keys, a weighted semaphore caps simultaneous extraction
//     subprocesses. A key's sole generator still queues for a slot, so a
//     cold scroll through a large grid cannot fork ffmpeg per tile.
//
// The semaphore is held only around the extraction and encode, never
// inside any registry lock.
//
// # Durability
//
// Artifacts are placed with write-temp-then-rename (renameio), so a
// concurrent reader sees either the complete JPEG or nothing. Failed
// generations leave no artifact and no in-memory record: the next request
// for the same key starts a fresh attempt, which rides out transient tool
// failures without a process restart.
package thumbs
