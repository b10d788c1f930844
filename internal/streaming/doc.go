// Package streaming serves media files over HTTP with byte-range support.
//
// # Range Semantics
//
// A request without a Range header receives the whole file with status 200.
// A single satisfiable range ("bytes=start-end", "bytes=start-", or
// "bytes=-suffix") receives status 206 with a Content-Range header and a
// body covering exactly that span. Anything else — multiple ranges, a
// non-bytes unit, a start at or beyond the file size — is answered with
// 416 and "Content-Range: bytes */<size>". HEAD requests receive the same
// headers as the corresponding GET with no body.
//
// # Memory
//
// Bodies are produced by a bounded sequential copy of the file's extent on
// disk, one chunk at a time, so per-stream memory is independent of file
// size. This is what lets a player seek freely inside multi-gigabyte files
// without the server ever buffering them.
//
// # Failure mid-stream
//
// Before the first body byte is written, errors produce normal 404/500
// responses. After that the headers are committed; a disk read failure
// aborts the connection outright instead of emitting a truncated body that
// the client would cache as complete.
package streaming
