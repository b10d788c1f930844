package handlers

import (
	"net/http"

	"video-streamer/internal/logging"

	"github.com/gorilla/mux"
)

// GetThumbnail serves GET /thumb/{path}: the cached still-frame artifact
// for a media file, generating it on first request. Every failure mode —
// bad path, missing file, missing tool, extraction error, timeout — is a
// 404 to the client; the distinction only matters in the server log.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	rel := mux.Vars(r)["path"]

	src, err := h.lib.Stat(rel)
	if err != nil {
		logging.Debug("Thumbnail source not found: %q", rel)
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	artifact, err := h.thumbGen.Get(r.Context(), src)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, artifact)
}
