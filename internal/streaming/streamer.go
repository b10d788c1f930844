package streaming

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"video-streamer/internal/library"
	"video-streamer/internal/logging"
	"video-streamer/internal/mediatypes"
	"video-streamer/internal/metrics"
)

// DefaultChunkSize is the read/write granularity for streamed bodies.
// Memory use per stream is bounded by one chunk regardless of file size.
const DefaultChunkSize = 1 << 20 // 1MiB

// Streamer serves media files with HTTP byte-range semantics: 200 for the
// whole file, 206 for a single satisfiable range, 416 otherwise. HEAD
// requests receive the same headers with no body.
type Streamer struct {
	// ChunkSize overrides DefaultChunkSize when positive.
	ChunkSize int
}

// ServeFile answers a GET or HEAD request for src. The source file is
// opened lazily, only when a body will actually be sent, and closed when
// the copy finishes or the client goes away.
func (s *Streamer) ServeFile(w http.ResponseWriter, r *http.Request, src library.SourceFile) {
	contentType := mediatypes.GetMimeType(strings.ToLower(filepath.Ext(src.Path)))

	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")

	br, err := ParseRange(r.Header.Get("Range"), src.Size)
	if err != nil {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", src.Size))
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	status := http.StatusOK
	start, length := int64(0), src.Size
	if br != nil {
		status = http.StatusPartialContent
		start, length = br.Start, br.Length()
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", br.Start, br.End, src.Size))
	}
	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))

	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}

	f, err := os.Open(src.Path)
	if err != nil {
		// Headers are not flushed until the first write, so a clean
		// error response is still possible here.
		w.Header().Del("Content-Length")
		w.Header().Del("Content-Range")
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
		} else {
			logging.Error("Stream open failed for %s: %v", src.Rel, err)
			http.Error(w, "Failed to open file", http.StatusInternalServerError)
		}
		return
	}
	defer f.Close()

	if start > 0 {
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			logging.Error("Stream seek failed for %s: %v", src.Rel, err)
			http.Error(w, "Failed to read file", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(status)
	s.copyBody(w, r, f, src.Rel, length)
}

// copyBody streams exactly length bytes from f to w in bounded chunks.
// Once here the headers are committed: a read failure aborts the
// connection via http.ErrAbortHandler rather than truncating the body
// into something a player could mistake for valid data.
func (s *Streamer) copyBody(w http.ResponseWriter, r *http.Request, f *os.File, rel string, length int64) {
	chunkSize := int64(s.ChunkSize)
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	metrics.StreamsOpen.Inc()
	defer metrics.StreamsOpen.Dec()

	flusher, _ := w.(http.Flusher)
	ctx := r.Context()
	remaining := length
	for remaining > 0 {
		select {
		case <-ctx.Done():
			logging.Debug("Stream client gone for %s with %d bytes remaining", rel, remaining)
			return
		default:
		}

		n := chunkSize
		if remaining < n {
			n = remaining
		}
		written, err := io.CopyN(w, f, n)
		remaining -= written
		metrics.StreamBytesTotal.Add(float64(written))
		if err != nil {
			if err != io.EOF && isClientError(ctx.Err(), err) {
				logging.Debug("Stream ended early for %s: %v", rel, err)
				return
			}
			// io.EOF here means the file shrank after it was stat'd;
			// either way the body cannot be completed honestly.
			logging.Error("Stream read failed for %s: %v", rel, err)
			panic(http.ErrAbortHandler)
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// isClientError reports whether err is attributable to the client side of
// the connection rather than the file on disk.
func isClientError(ctxErr, err error) bool {
	if ctxErr != nil {
		return true
	}
	// Write errors surface as *net.OpError wrapped by the http server;
	// read errors from the file are *fs.PathError.
	_, isPathErr := err.(*os.PathError)
	return !isPathErr
}
