package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-streamer/internal/handlers"
	"video-streamer/internal/library"
	"video-streamer/internal/logging"
	"video-streamer/internal/metrics"
	"video-streamer/internal/middleware"
	"video-streamer/internal/startup"
	"video-streamer/internal/thumbs"
	"video-streamer/internal/workers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	lib, err := library.New(config.MediaDir)
	if err != nil {
		startup.LogFatal("Failed to open media library: %v", err)
	}

	extractors := config.MaxExtractions
	if extractors <= 0 {
		extractors = workers.ForMixed(8)
	}
	logging.Info("Thumbnail extraction pool: %d workers", extractors)
	thumbGen, err := thumbs.New(config.ThumbnailDir, extractors, config.ThumbnailTimeout)
	if err != nil {
		startup.LogFatal("Failed to initialize thumbnail cache: %v", err)
	}

	if config.MetricsEnabled {
		metrics.InitializeMetrics()
	}

	h := handlers.New(lib, thumbGen, config)
	router := setupRouter(h, config)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	handler := middleware.Logger(loggingConfig)(router)
	if config.MetricsEnabled {
		handler = middleware.Metrics()(handler)
	}

	srv := &http.Server{
		Addr:        ":" + config.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout stays 0: range streams of large files legitimately
		// outlive any fixed deadline.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go handleShutdown(srv)

	startup.LogServerStarted(config.Port, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, config *startup.Config) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	if config.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	r.HandleFunc("/video/{path:.*}", h.StreamVideo).Methods("GET", "HEAD")
	r.HandleFunc("/thumb/{path:.*}", h.GetThumbnail).Methods("GET")
	r.HandleFunc("/api/list", h.ListDirectory).Methods("GET")

	// Grid page and the lazy-load scheduler script.
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(config.StaticDir)))

	return r
}

func handleShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logging.Info("Received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Draining HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	}
	startup.LogShutdownComplete()
}
