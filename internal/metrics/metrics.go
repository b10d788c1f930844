package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_streamer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_streamer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_streamer_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Streaming metrics
var (
	StreamsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_streamer_streams_open",
			Help: "Number of media streams currently being served",
		},
	)

	StreamBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_streamer_stream_bytes_total",
			Help: "Total number of media bytes written to clients",
		},
	)
)

// Thumbnail metrics
var (
	ThumbnailRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_streamer_thumbnail_requests_total",
			Help: "Total number of thumbnail lookups by result",
		},
		[]string{"result"}, // "hit", "generated", "failed"
	)

	ThumbnailGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "video_streamer_thumbnail_generation_duration_seconds",
			Help:    "Wall time spent generating one thumbnail artifact",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ThumbnailGenerationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_streamer_thumbnail_generations_in_flight",
			Help: "Number of extraction subprocesses currently running",
		},
	)

	ThumbnailQueueWaiting = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_streamer_thumbnail_queue_waiting",
			Help: "Number of generation attempts waiting for a pool slot",
		},
	)
)

// InitializeMetrics pre-populates label combinations so every metric is
// exported from the first Prometheus scrape. Call once at startup.
func InitializeMetrics() {
	for _, result := range []string{"hit", "generated", "failed"} {
		ThumbnailRequestsTotal.WithLabelValues(result)
	}
}
