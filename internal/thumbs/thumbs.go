package thumbs

import (
	"bytes"
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"time"

	"video-streamer/internal/library"
	"video-streamer/internal/logging"
	"video-streamer/internal/mediatypes"
	"video-streamer/internal/metrics"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/google/renameio/v2"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// ErrUnavailable is the only error Get returns. Missing extraction tool,
// subprocess failure, timeout, and undecodable output all collapse into
// it; the cause is logged server-side and never reaches the client.
var ErrUnavailable = errors.New("thumbnail unavailable")

const (
	thumbMaxDim   = 320
	thumbJPEGQual = 80

	// DefaultTimeout bounds one extraction subprocess.
	DefaultTimeout = 20 * time.Second
)

// Generator maps source files to cached still-frame JPEG artifacts.
//
// Artifacts live under cacheDir, keyed by the source's relative path and
// modification time, so an edited file naturally orphans its old artifact.
// Generation for one key runs at most once concurrently (singleflight);
// generation across keys is capped by a weighted semaphore so a burst of
// cold requests cannot fork an unbounded number of subprocesses.
type Generator struct {
	cacheDir string
	timeout  time.Duration

	group singleflight.Group
	sem   *semaphore.Weighted

	// extract produces the raw frame for a source file. Swapped for a
	// stub in tests so no ffmpeg binary is needed.
	extract func(ctx context.Context, src library.SourceFile) (image.Image, error)
}

// New creates a Generator writing artifacts under cacheDir. maxConcurrent
// caps simultaneous extraction subprocesses; timeout bounds each one
// (DefaultTimeout when zero).
func New(cacheDir string, maxConcurrent int, timeout time.Duration) (*Generator, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail cache dir: %w", err)
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	g := &Generator{
		cacheDir: cacheDir,
		timeout:  timeout,
		sem:      semaphore.NewWeighted(int64(maxConcurrent)),
	}
	g.extract = g.extractFrame
	return g, nil
}

// ArtifactPath returns the deterministic on-disk location for src's
// thumbnail. Path plus mtime in the key means edits invalidate; a file
// rewritten with identical path and mtime would keep serving the old
// artifact.
func (g *Generator) ArtifactPath(src library.SourceFile) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s|%d", src.Rel, src.ModTime.UnixNano())))
	return filepath.Join(g.cacheDir, fmt.Sprintf("%x.jpg", sum))
}

// Get returns the path of a ready artifact for src, generating it first
// if needed. Concurrent callers for the same source share one generation
// attempt and one outcome. Failed attempts are not remembered: the next
// call retries.
func (g *Generator) Get(ctx context.Context, src library.SourceFile) (string, error) {
	artifact := g.ArtifactPath(src)
	if ready(artifact) {
		metrics.ThumbnailRequestsTotal.WithLabelValues("hit").Inc()
		logging.Debug("Thumbnail cache hit: %s", src.Rel)
		return artifact, nil
	}

	_, err, shared := g.group.Do(artifact, func() (interface{}, error) {
		return nil, g.generate(ctx, src, artifact)
	})
	if err != nil {
		metrics.ThumbnailRequestsTotal.WithLabelValues("failed").Inc()
		return "", err
	}
	metrics.ThumbnailRequestsTotal.WithLabelValues("generated").Inc()
	if shared {
		logging.Debug("Thumbnail shared generation result: %s", src.Rel)
	}
	return artifact, nil
}

// generate runs inside the singleflight for one key. The semaphore alone
// guards the subprocess; no lock is held across it.
func (g *Generator) generate(ctx context.Context, src library.SourceFile, artifact string) error {
	metrics.ThumbnailQueueWaiting.Inc()
	err := g.sem.Acquire(ctx, 1)
	metrics.ThumbnailQueueWaiting.Dec()
	if err != nil {
		logging.Warn("Thumbnail pool wait aborted for %s: %v", src.Rel, err)
		return ErrUnavailable
	}
	defer g.sem.Release(1)

	// A previous process run may have left the artifact behind while we
	// queued for a slot.
	if ready(artifact) {
		return nil
	}

	metrics.ThumbnailGenerationsInFlight.Inc()
	defer metrics.ThumbnailGenerationsInFlight.Dec()
	start := time.Now()

	img, err := g.extract(ctx, src)
	if err != nil {
		logging.Warn("Thumbnail extraction failed for %s: %v", src.Rel, err)
		return ErrUnavailable
	}

	thumb := imaging.Fit(img, thumbMaxDim, thumbMaxDim, imaging.Lanczos)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbJPEGQual}); err != nil {
		logging.Warn("Thumbnail encode failed for %s: %v", src.Rel, err)
		return ErrUnavailable
	}

	// Atomic placement: readers either see the complete artifact or none.
	if err := renameio.WriteFile(artifact, buf.Bytes(), 0o644); err != nil {
		logging.Warn("Thumbnail write failed for %s: %v", src.Rel, err)
		return ErrUnavailable
	}

	metrics.ThumbnailGenerationDuration.Observe(time.Since(start).Seconds())
	logging.Debug("Thumbnail generated for %s in %v", src.Rel, time.Since(start))
	return nil
}

// ready reports whether a non-empty artifact exists at path.
func ready(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// extractFrame dispatches on file type: videos go through ffmpeg, images
// are decoded in-process with ffmpeg as a last resort for exotic formats.
func (g *Generator) extractFrame(ctx context.Context, src library.SourceFile) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(src.Path))
	switch mediatypes.GetFileType(ext) {
	case mediatypes.FileTypeVideo:
		return g.extractVideoFrame(ctx, src.Path)
	case mediatypes.FileTypeImage:
		return g.decodeImage(ctx, src.Path)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}
