package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/storyforge/studio/pkg/studio"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 32 << 20

// StoryboardHandler handles HTTP requests for episodes, scenes and shots,
// including shot uploads
type StoryboardHandler struct {
	service studio.Service
}

// NewStoryboardHandler creates a new storyboard handler
func NewStoryboardHandler(service studio.Service) *StoryboardHandler {
	return &StoryboardHandler{service: service}
}

// EpisodeRoutes returns the routes for episodes
func (h *StoryboardHandler) EpisodeRoutes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{episodeID}", func(r chi.Router) {
		r.Put("/", h.UpdateEpisode)
		r.Delete("/", h.DeleteEpisode)
		r.Post("/scenes", h.CreateScene)
	})

	return r
}

// SceneRoutes returns the routes for scenes
func (h *StoryboardHandler) SceneRoutes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{sceneID}", func(r chi.Router) {
		r.Put("/", h.UpdateScene)
		r.Delete("/", h.DeleteScene)
		r.Post("/shots", h.CreateShot)
	})

	return r
}

// ShotRoutes returns the routes for shots
func (h *StoryboardHandler) ShotRoutes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{shotID}", func(r chi.Router) {
		r.Put("/", h.UpdateShot)
		r.Delete("/", h.DeleteShot)
		r.Post("/assets", h.UploadShotAsset)
		r.Post("/assets/register", h.RegisterShotAsset)
		r.Post("/video", h.UploadShotVideo)
	})

	return r
}

func (h *StoryboardHandler) UpdateEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "episodeID")
	if err != nil {
		http.Error(w, "Invalid episode ID", http.StatusBadRequest)
		return
	}

	var req studio.UpdateEpisodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	episode, err := h.service.UpdateEpisode(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, episode)
}

func (h *StoryboardHandler) DeleteEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "episodeID")
	if err != nil {
		http.Error(w, "Invalid episode ID", http.StatusBadRequest)
		return
	}

	report, err := h.service.DeleteEpisode(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete episode", "episode_id", id, "error", err)
		writeError(w, err)
		return
	}
	render.JSON(w, r, deleteResponse(report))
}

func (h *StoryboardHandler) CreateScene(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "episodeID")
	if err != nil {
		http.Error(w, "Invalid episode ID", http.StatusBadRequest)
		return
	}

	var req studio.CreateSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	scene, err := h.service.CreateScene(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, scene)
}

func (h *StoryboardHandler) UpdateScene(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "sceneID")
	if err != nil {
		http.Error(w, "Invalid scene ID", http.StatusBadRequest)
		return
	}

	var req studio.UpdateSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	scene, err := h.service.UpdateScene(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, scene)
}

func (h *StoryboardHandler) DeleteScene(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "sceneID")
	if err != nil {
		http.Error(w, "Invalid scene ID", http.StatusBadRequest)
		return
	}

	report, err := h.service.DeleteScene(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete scene", "scene_id", id, "error", err)
		writeError(w, err)
		return
	}

	slog.Info("Scene deleted", "scene_id", id, "files_deleted", len(report.Deleted), "failures", len(report.Failures))
	render.JSON(w, r, deleteResponse(report))
}

func (h *StoryboardHandler) CreateShot(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "sceneID")
	if err != nil {
		http.Error(w, "Invalid scene ID", http.StatusBadRequest)
		return
	}

	var req studio.CreateShotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	shot, err := h.service.CreateShot(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, shot)
}

func (h *StoryboardHandler) UpdateShot(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "shotID")
	if err != nil {
		http.Error(w, "Invalid shot ID", http.StatusBadRequest)
		return
	}

	var req studio.UpdateShotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	shot, err := h.service.UpdateShot(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	render.JSON(w, r, shot)
}

func (h *StoryboardHandler) DeleteShot(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "shotID")
	if err != nil {
		http.Error(w, "Invalid shot ID", http.StatusBadRequest)
		return
	}

	report, err := h.service.DeleteShot(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete shot", "shot_id", id, "error", err)
		writeError(w, err)
		return
	}
	render.JSON(w, r, deleteResponse(report))
}

// UploadShotAsset accepts a multipart "file" part and stores it against the
// shot.
func (h *StoryboardHandler) UploadShotAsset(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "shotID")
	if err != nil {
		http.Error(w, "Invalid shot ID", http.StatusBadRequest)
		return
	}

	upload, cleanup, err := multipartUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer cleanup()

	asset, err := h.service.UploadShotAsset(r.Context(), id, upload)
	if err != nil {
		slog.Error("Failed to upload shot asset", "shot_id", id, "error", err)
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, asset)
}

// RegisterShotAssetRequest is the request body for registering an
// already-stored file path against a shot
type RegisterShotAssetRequest struct {
	FilePath string `json:"file_path"`
}

func (h *StoryboardHandler) RegisterShotAsset(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "shotID")
	if err != nil {
		http.Error(w, "Invalid shot ID", http.StatusBadRequest)
		return
	}

	var req RegisterShotAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.FilePath == "" {
		http.Error(w, "file_path is required", http.StatusBadRequest)
		return
	}

	asset, err := h.service.RegisterShotAsset(r.Context(), id, req.FilePath)
	if err != nil {
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, asset)
}

func (h *StoryboardHandler) UploadShotVideo(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "shotID")
	if err != nil {
		http.Error(w, "Invalid shot ID", http.StatusBadRequest)
		return
	}

	upload, cleanup, err := multipartUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer cleanup()

	shot, err := h.service.UploadShotVideo(r.Context(), id, upload)
	if err != nil {
		slog.Error("Failed to upload shot video", "shot_id", id, "error", err)
		writeError(w, err)
		return
	}
	render.JSON(w, r, shot)
}

// multipartUpload extracts the "file" part from a multipart request.
func multipartUpload(r *http.Request) (studio.UploadRequest, func(), error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return studio.UploadRequest{}, nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return studio.UploadRequest{}, nil, err
	}

	return studio.UploadRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}, func() { file.Close() }, nil
}
