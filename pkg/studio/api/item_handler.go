package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/storyforge/studio/pkg/studio"
)

// ItemHandler handles HTTP requests for persistent asset items
type ItemHandler struct {
	service studio.Service
}

// NewItemHandler creates a new item handler
func NewItemHandler(service studio.Service) *ItemHandler {
	return &ItemHandler{service: service}
}

// Routes returns the routes for items
func (h *ItemHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{itemID}", func(r chi.Router) {
		r.Get("/", h.GetItem)
		r.Put("/", h.UpdateItem)
		r.Delete("/", h.DeleteItem)
		r.Post("/assets", h.UploadItemAsset)
	})

	return r
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "itemID")
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, item)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "itemID")
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	var req studio.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, item)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "itemID")
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	report, err := h.service.DeleteItem(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete item", "item_id", id, "error", err)
		writeError(w, err)
		return
	}

	slog.Info("Item deleted", "item_id", id, "files_deleted", len(report.Deleted), "failures", len(report.Failures))
	render.JSON(w, r, deleteResponse(report))
}

// UploadItemAsset accepts a multipart "file" part and stores it in the item's
// category folder.
func (h *ItemHandler) UploadItemAsset(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "itemID")
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	upload, cleanup, err := multipartUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer cleanup()

	asset, err := h.service.UploadItemAsset(r.Context(), id, upload)
	if err != nil {
		slog.Error("Failed to upload item asset", "item_id", id, "error", err)
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, asset)
}
