// Package api exposes the studio service over HTTP using chi.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/storyforge/studio/pkg/studio"
)

// ProjectHandler handles HTTP requests for projects and their nested
// collections
type ProjectHandler struct {
	service studio.Service
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service studio.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Routes returns the routes for projects
func (h *ProjectHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateProject)
	r.Get("/", h.ListProjects)

	r.Route("/{projectID}", func(r chi.Router) {
		r.Get("/", h.GetProject)
		r.Put("/", h.UpdateProject)
		r.Delete("/", h.DeleteProject)

		r.Get("/script", h.FullScript)
		r.Post("/episodes", h.CreateEpisode)

		r.Post("/items", h.CreateItem)
		r.Get("/items", h.ListItems)

		r.Post("/events", h.CreateEvent)
		r.Get("/events", h.ListEvents)
	})

	return r
}

func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req studio.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, err := h.service.CreateProject(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create project", "error", err)
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, project)
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		slog.Error("Failed to list projects", "error", err)
		writeError(w, err)
		return
	}
	render.JSON(w, r, projects)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	project, err := h.service.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	var req studio.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, err := h.service.UpdateProject(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	report, err := h.service.DeleteProject(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete project", "project_id", id, "error", err)
		writeError(w, err)
		return
	}

	slog.Info("Project deleted", "project_id", id, "files_deleted", len(report.Deleted), "failures", len(report.Failures))
	render.JSON(w, r, deleteResponse(report))
}

func (h *ProjectHandler) FullScript(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	script, err := h.service.FullScript(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, script)
}

func (h *ProjectHandler) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	var req studio.CreateEpisodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	episode, err := h.service.CreateEpisode(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, episode)
}

func (h *ProjectHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	var req studio.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.CreateItem(r.Context(), id, req)
	if err != nil {
		slog.Error("Failed to create item", "project_id", id, "error", err)
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

func (h *ProjectHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	items, err := h.service.ListItems(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, items)
}

func (h *ProjectHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	var req studio.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, event)
}

func (h *ProjectHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "projectID")
	if err != nil {
		http.Error(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	events, err := h.service.ListEvents(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, events)
}

// DeleteResponse reports the outcome of a removal cascade.
type DeleteResponse struct {
	FilesDeleted []string `json:"files_deleted"`
	Failures     []string `json:"failures,omitempty"`
}

func deleteResponse(report *studio.CleanupReport) DeleteResponse {
	resp := DeleteResponse{FilesDeleted: report.Deleted}
	if resp.FilesDeleted == nil {
		resp.FilesDeleted = []string{}
	}
	for _, failure := range report.Failures {
		resp.Failures = append(resp.Failures, failure.Key)
	}
	return resp
}
