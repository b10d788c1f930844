// Package mediatypes provides shared type definitions and extension tables
// for media file handling across the application.
//
// It is a dependency-free foundation importable from any other package
// without creating import cycles: primitive types, extension maps, and pure
// lookup functions only.
//
// Use GetFileType to categorize a file by its lowercase extension and
// GetMimeType to pick the Content-Type for HTTP responses:
//
//	ext := strings.ToLower(filepath.Ext(name))
//	if mediatypes.GetFileType(ext) == mediatypes.FileTypeVideo {
//	    w.Header().Set("Content-Type", mediatypes.GetMimeType(ext))
//	}
package mediatypes
