package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/storyforge/studio/pkg/studio"
)

// FilesHandler serves stored files over HTTP straight from the blob store,
// which keeps the HTTP layer working against any backend.
type FilesHandler struct {
	store studio.BlobStore
}

// NewFilesHandler creates a new files handler
func NewFilesHandler(store studio.BlobStore) *FilesHandler {
	return &FilesHandler{store: store}
}

// Routes returns the routes for file serving
func (h *FilesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/*", h.ServeFile)
	return r
}

func (h *FilesHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if key == "" || strings.Contains(key, "..") {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	reader, err := h.store.Download(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	defer reader.Close()

	if info, err := h.store.Meta(r.Context(), key); err == nil {
		if info.ContentType != "" {
			w.Header().Set("Content-Type", info.ContentType)
		}
		if info.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		}
	}

	io.Copy(w, reader)
}
