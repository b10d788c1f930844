// Package handlers wires the HTTP surface to the library, streaming, and
// thumbnail subsystems.
//
// Routes: /video/{path} (range streaming, GET and HEAD), /thumb/{path}
// (cached still frames), /api/list (directory listing), plus /health and
// /version. Handlers translate internal errors to the client-facing
// taxonomy — 404 for anything path- or generation-related, 416 and 500
// coming from the streaming package — and never echo filesystem detail
// into a response body.
package handlers
