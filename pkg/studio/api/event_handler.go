package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/storyforge/studio/pkg/studio"
)

// EventHandler handles HTTP requests for overlay events and their nodes
type EventHandler struct {
	service studio.Service
}

// NewEventHandler creates a new event handler
func NewEventHandler(service studio.Service) *EventHandler {
	return &EventHandler{service: service}
}

// Routes returns the routes for events
func (h *EventHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{eventID}", func(r chi.Router) {
		r.Put("/", h.UpdateEvent)
		r.Delete("/", h.DeleteEvent)
		r.Post("/nodes", h.UpsertNode)
		r.Get("/nodes", h.ListNodes)
	})

	return r
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "eventID")
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	var req studio.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, event)
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "eventID")
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteEvent(r.Context(), id); err != nil {
		slog.Error("Failed to delete event", "event_id", id, "error", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) UpsertNode(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "eventID")
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	var req studio.UpsertEventNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TargetType == "" {
		http.Error(w, "target_type is required", http.StatusBadRequest)
		return
	}

	node, err := h.service.UpsertEventNode(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, node)
}

func (h *EventHandler) ListNodes(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "eventID")
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	nodes, err := h.service.ListEventNodes(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, nodes)
}
