package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"video-streamer/internal/library"
	"video-streamer/internal/startup"
	"video-streamer/internal/thumbs"

	"github.com/gorilla/mux"
)

type testEnv struct {
	h        *Handlers
	lib      *library.Library
	thumbGen *thumbs.Generator
	mediaDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mediaDir := t.TempDir()
	lib, err := library.New(mediaDir)
	if err != nil {
		t.Fatalf("library.New failed: %v", err)
	}
	thumbGen, err := thumbs.New(t.TempDir(), 1, time.Second)
	if err != nil {
		t.Fatalf("thumbs.New failed: %v", err)
	}
	return &testEnv{
		h:        New(lib, thumbGen, &startup.Config{}),
		lib:      lib,
		thumbGen: thumbGen,
		mediaDir: mediaDir,
	}
}

func (e *testEnv) writeFile(t *testing.T, rel string, data []byte) {
	t.Helper()
	full := filepath.Join(e.mediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func requestWithPath(method, url, pathVar string) *http.Request {
	r := httptest.NewRequest(method, url, nil)
	return mux.SetURLVars(r, map[string]string{"path": pathVar})
}

func TestStreamVideoFull(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile(t, "movie.mp4", []byte("abcdef"))

	w := httptest.NewRecorder()
	env.h.StreamVideo(w, requestWithPath("GET", "/video/movie.mp4", "movie.mp4"))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "abcdef" {
		t.Errorf("Expected full body, got %q", got)
	}
	if got := w.Header().Get("Accept-Ranges"); got != "bytes" {
		t.Errorf("Expected Accept-Ranges=bytes, got %q", got)
	}
}

func TestStreamVideoRange(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile(t, "movie.mp4", []byte("abcdef"))

	r := requestWithPath("GET", "/video/movie.mp4", "movie.mp4")
	r.Header.Set("Range", "bytes=2-4")
	w := httptest.NewRecorder()
	env.h.StreamVideo(w, r)

	if w.Code != http.StatusPartialContent {
		t.Fatalf("Expected 206, got %d", w.Code)
	}
	if got := w.Body.String(); got != "cde" {
		t.Errorf("Expected body %q, got %q", "cde", got)
	}
	if got := w.Header().Get("Content-Range"); got != "bytes 2-4/6" {
		t.Errorf("Expected Content-Range=bytes 2-4/6, got %q", got)
	}
}

func TestStreamVideoUnsatisfiable(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile(t, "movie.mp4", []byte("abcdef"))

	r := requestWithPath("GET", "/video/movie.mp4", "movie.mp4")
	r.Header.Set("Range", "bytes=100-")
	w := httptest.NewRecorder()
	env.h.StreamVideo(w, r)

	if w.Code != http.StatusRequestedRangeNotSatisfiable {
		t.Fatalf("Expected 416, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Range"); got != "bytes */6" {
		t.Errorf("Expected Content-Range=bytes */6, got %q", got)
	}
}

func TestStreamVideoMissing(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.StreamVideo(w, requestWithPath("GET", "/video/nope.mp4", "nope.mp4"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestStreamVideoTraversal(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.StreamVideo(w, requestWithPath("GET", "/video/x", "../../etc/passwd"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for traversal, got %d", w.Code)
	}
}

func TestStreamVideoHead(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile(t, "movie.mp4", []byte("12345678"))

	w := httptest.NewRecorder()
	env.h.StreamVideo(w, requestWithPath("HEAD", "/video/movie.mp4", "movie.mp4"))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body for HEAD, got %d bytes", w.Body.Len())
	}
	if got := w.Header().Get("Content-Length"); got != "8" {
		t.Errorf("Expected Content-Length=8, got %q", got)
	}
}

func TestGetThumbnailCacheHit(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile(t, "movie.mp4", []byte("not really a video"))

	src, err := env.lib.Stat("movie.mp4")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	// Pre-place the artifact: the handler must serve it without any
	// extraction attempt.
	artifact := env.thumbGen.ArtifactPath(src)
	if err := os.WriteFile(artifact, []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatalf("Failed to seed artifact: %v", err)
	}

	w := httptest.NewRecorder()
	env.h.GetThumbnail(w, requestWithPath("GET", "/thumb/movie.mp4", "movie.mp4"))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "jpeg-bytes" {
		t.Errorf("Expected seeded artifact bytes, got %q", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Errorf("Expected long-lived Cache-Control, got %q", got)
	}
}

func TestGetThumbnailUnsupportedType(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile(t, "notes.txt", []byte("text"))

	w := httptest.NewRecorder()
	env.h.GetThumbnail(w, requestWithPath("GET", "/thumb/notes.txt", "notes.txt"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unsupported type, got %d", w.Code)
	}
}

func TestGetThumbnailMissingSource(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.GetThumbnail(w, requestWithPath("GET", "/thumb/nope.mp4", "nope.mp4"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestListDirectory(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile(t, "shows/pilot.mp4", []byte("x"))
	env.writeFile(t, "shows/readme.txt", []byte("x"))
	env.writeFile(t, "shows/extras/clip.mkv", []byte("x"))

	r := httptest.NewRequest("GET", "/api/list?path=shows", nil)
	w := httptest.NewRecorder()
	env.h.ListDirectory(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var listing library.Listing
	if err := json.NewDecoder(w.Body).Decode(&listing); err != nil {
		t.Fatalf("Failed to decode listing: %v", err)
	}
	if len(listing.Dirs) != 1 || listing.Dirs[0] != "extras" {
		t.Errorf("Expected dirs [extras], got %v", listing.Dirs)
	}
	if len(listing.Videos) != 1 || listing.Videos[0] != "pilot.mp4" {
		t.Errorf("Expected videos [pilot.mp4], got %v", listing.Videos)
	}
}

func TestListDirectoryMissing(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest("GET", "/api/list?path=nope", nil)
	w := httptest.NewRecorder()
	env.h.ListDirectory(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected status=healthy, got %q", resp.Status)
	}
	if resp.MediaRoot == "" {
		t.Error("Expected media root in health response")
	}
}

func TestGetVersion(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.GetVersion(w, httptest.NewRequest("GET", "/version", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var info startup.BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("Failed to decode build info: %v", err)
	}
	if info.Version == "" {
		t.Error("Expected non-empty version")
	}
}
