// Package library confines all filesystem access to a single configured
// media root.
//
// Every request-supplied relative path passes through Resolve, which
// lexically cleans the path and rejects anything that would escape the
// root. Rejections and missing files share one error, ErrNotFound, so the
// HTTP layer never leaks whether a traversal attempt named a real path.
//
// The package also provides the non-recursive directory Listing consumed
// by the browse API.
package library
