// Package middleware provides the HTTP middleware chain: access logging
// with sanitized fields and Prometheus request instrumentation with
// bounded label cardinality. Both wrappers preserve http.Flusher so
// streamed bodies keep flushing through them.
package middleware
