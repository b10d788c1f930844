package handlers

import (
	"net/http"
	"strings"

	"video-streamer/internal/logging"
)

// ListDirectory serves GET /api/list?path=<rel>: the immediate
// subdirectories and media files of one directory under the root, for the
// grid page to render.
func (h *Handlers) ListDirectory(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimSpace(r.URL.Query().Get("path"))

	listing, err := h.lib.List(rel)
	if err != nil {
		logging.Debug("List failed for %q: %v", rel, err)
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	writeJSON(w, listing)
}
