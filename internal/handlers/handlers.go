package handlers

import (
	"encoding/json"
	"net/http"

	"video-streamer/internal/library"
	"video-streamer/internal/startup"
	"video-streamer/internal/streaming"
	"video-streamer/internal/thumbs"
)

// Handlers bundles the HTTP handlers and their collaborators.
type Handlers struct {
	lib      *library.Library
	thumbGen *thumbs.Generator
	streamer *streaming.Streamer
	config   *startup.Config
}

// New creates the handler set.
func New(lib *library.Library, thumbGen *thumbs.Generator, config *startup.Config) *Handlers {
	return &Handlers{
		lib:      lib,
		thumbGen: thumbGen,
		streamer: &streaming.Streamer{},
		config:   config,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
