package handlers

import (
	"net/http"

	"video-streamer/internal/logging"

	"github.com/gorilla/mux"
)

// StreamVideo serves GET/HEAD /video/{path} with byte-range support.
// Traversal attempts and missing files are indistinguishable 404s.
func (h *Handlers) StreamVideo(w http.ResponseWriter, r *http.Request) {
	rel := mux.Vars(r)["path"]

	src, err := h.lib.Stat(rel)
	if err != nil {
		logging.Debug("Video not found: %q", rel)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	h.streamer.ServeFile(w, r, src)
}
