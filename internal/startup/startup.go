package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"video-streamer/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration
type Config struct {
	MediaDir         string
	CacheDir         string
	StaticDir        string
	Port             string
	ThumbnailTimeout time.Duration
	MaxExtractions   int
	MetricsEnabled   bool
	LogStaticFiles   bool

	// Derived paths
	ThumbnailDir string
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	mediaDir := getEnv("MEDIA_DIR", "/media")
	cacheDir := getEnv("CACHE_DIR", "/cache")
	staticDir := getEnv("STATIC_DIR", "./static")
	port := getEnv("PORT", "8080")
	thumbTimeoutStr := getEnv("THUMBNAIL_TIMEOUT", "20s")
	maxExtractionsStr := getEnv("MAX_EXTRACTIONS", "0")
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	logStaticFiles := getEnvBool("LOG_STATIC_FILES", false)

	logging.Info("  MEDIA_DIR:          %s", mediaDir)
	logging.Info("  CACHE_DIR:          %s", cacheDir)
	logging.Info("  STATIC_DIR:         %s", staticDir)
	logging.Info("  PORT:               %s", port)
	logging.Info("  THUMBNAIL_TIMEOUT:  %s", thumbTimeoutStr)
	logging.Info("  MAX_EXTRACTIONS:    %s", maxExtractionsStr)
	logging.Info("  METRICS_ENABLED:    %v", metricsEnabled)
	logging.Info("  LOG_STATIC_FILES:   %v", logStaticFiles)
	logging.Info("  LOG_LEVEL:          %s", logging.GetLevel())

	thumbTimeout, err := time.ParseDuration(thumbTimeoutStr)
	if err != nil || thumbTimeout <= 0 {
		logging.Warn("  Invalid THUMBNAIL_TIMEOUT, using default: 20s")
		thumbTimeout = 20 * time.Second
	}

	maxExtractions, err := strconv.Atoi(maxExtractionsStr)
	if err != nil || maxExtractions < 0 {
		logging.Warn("  Invalid MAX_EXTRACTIONS, using automatic sizing")
		maxExtractions = 0
	}

	if info, err := os.Stat(mediaDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("media dir does not exist or is not a directory: %s", mediaDir)
	}

	return &Config{
		MediaDir:         mediaDir,
		CacheDir:         cacheDir,
		StaticDir:        staticDir,
		Port:             port,
		ThumbnailTimeout: thumbTimeout,
		MaxExtractions:   maxExtractions,
		MetricsEnabled:   metricsEnabled,
		LogStaticFiles:   logStaticFiles,
		ThumbnailDir:     filepath.Join(cacheDir, "thumbnails"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func printBanner() {
	logging.Info("============================================================")
	logging.Info("video-streamer %s (%s)", Version, Commit)
	logging.Info("built %s with %s, %s/%s", BuildTime, GoVersion, runtime.GOOS, runtime.GOARCH)
	logging.Info("============================================================")
}

// LogFatal logs a fatal startup error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// LogServerStarted logs the listening address and time to readiness
func LogServerStarted(port string, elapsed time.Duration) {
	logging.Info("Listening on :%s (startup took %v)", port, elapsed.Round(time.Millisecond))
}

// LogShutdownStep logs one step of the graceful shutdown sequence
func LogShutdownStep(msg string) {
	logging.Info("Shutdown: %s", msg)
}

// LogShutdownComplete logs completion of the shutdown sequence
func LogShutdownComplete() {
	logging.Info("Shutdown complete")
}
