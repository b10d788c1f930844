// Package metrics defines the Prometheus instrumentation for the server.
//
// All metrics are registered at import time via promauto and share the
// video_streamer_ prefix. Three groups exist: generic HTTP request
// metrics (recorded by the middleware package), streaming metrics (open
// streams and bytes written, recorded by the streaming package), and
// thumbnail cache metrics (hit/generated/failed outcomes, generation
// latency, subprocess pool occupancy, recorded by the thumbs package).
//
// Call InitializeMetrics once at startup so labeled series appear in the
// first scrape instead of on first use.
package metrics
