package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/khidma-app/khidma-admin/internal/logger"
)

// ServeMedia streams a stored upload back to the admin UI. The path is the
// wildcard remainder of the route and stays confined to the media root.
func (h *Handler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	file, err := h.media.Read(path)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	defer file.Close()

	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")

	if _, err := io.Copy(w, file); err != nil {
		logger.Log.Warn("failed to stream media file", "path", path, "error", err)
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
