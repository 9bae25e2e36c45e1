package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/storyforge/studio/pkg/studio"
)

// AssetHandler handles HTTP requests for individual asset records
type AssetHandler struct {
	service studio.Service
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(service studio.Service) *AssetHandler {
	return &AssetHandler{service: service}
}

// Routes returns the routes for assets
func (h *AssetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{assetID}", func(r chi.Router) {
		r.Get("/", h.GetAsset)
		r.Delete("/", h.DeleteAsset)
		r.Put("/favorite", h.SetFavorite)
	})

	return r
}

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "assetID")
	if err != nil {
		http.Error(w, "Invalid asset ID", http.StatusBadRequest)
		return
	}

	asset, err := h.service.GetAsset(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, asset)
}

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "assetID")
	if err != nil {
		http.Error(w, "Invalid asset ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteAsset(r.Context(), id); err != nil {
		slog.Error("Failed to delete asset", "asset_id", id, "error", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetFavoriteRequest is the request body for toggling an asset favorite flag
type SetFavoriteRequest struct {
	IsFavorite bool `json:"is_favorite"`
}

func (h *AssetHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "assetID")
	if err != nil {
		http.Error(w, "Invalid asset ID", http.StatusBadRequest)
		return
	}

	var req SetFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, err := h.service.SetAssetFavorite(r.Context(), id, req.IsFavorite)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, asset)
}
