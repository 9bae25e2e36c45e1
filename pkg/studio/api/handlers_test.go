package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyforge/studio/pkg/studio"
	repomemory "github.com/storyforge/studio/pkg/studio/repo/memory"
	memorystorage "github.com/storyforge/studio/pkg/studio/storage/memory"
)

func newTestRouter(t *testing.T) (chi.Router, studio.Service, *memorystorage.Store) {
	t.Helper()

	repo := repomemory.New()
	store := memorystorage.New()
	svc, err := studio.New(studio.WithRepository(repo), studio.WithBlobStore(store))
	require.NoError(t, err)

	storyboard := NewStoryboardHandler(svc)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Mount("/projects", NewProjectHandler(svc).Routes())
		r.Mount("/items", NewItemHandler(svc).Routes())
		r.Mount("/episodes", storyboard.EpisodeRoutes())
		r.Mount("/scenes", storyboard.SceneRoutes())
		r.Mount("/shots", storyboard.ShotRoutes())
		r.Mount("/assets", NewAssetHandler(svc).Routes())
		r.Mount("/events", NewEventHandler(svc).Routes())
	})
	r.Mount("/files", NewFilesHandler(store).Routes())

	return r, svc, store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestProjectLifecycle(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", map[string]string{
		"name": "Show", "description": "a test project",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := decodeBody[studio.Project](t, rec)
	assert.Equal(t, "Show", project.Name)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeBody[[]studio.Project](t, rec)
	assert.Len(t, projects, 1)

	newName := "Renamed"
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ID), map[string]any{"name": newName})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[studio.Project](t, rec)
	assert.Equal(t, newName, updated.Name)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectNotFoundMapping(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/projects/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/projects/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDuplicateItemConflict(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, studio.CreateProjectRequest{Name: "Show"})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/projects/%d/items", project.ID), map[string]string{"name": "Hero"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/projects/%d/items", project.ID), map[string]string{"name": "hero"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func multipartBody(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename)}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadItemAssetAndServeFile(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, studio.CreateProjectRequest{Name: "Show"})
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, project.ID, studio.CreateItemRequest{Name: "Hero"})
	require.NoError(t, err)

	body, contentType := multipartBody(t, "hero.png", "image/png", "png-bytes")
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/items/%d/assets", item.ID), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	asset := decodeBody[studio.Asset](t, rec)
	assert.Equal(t, "Show/characters/hero.png", asset.FilePath)
	assert.True(t, asset.IsFavorite)

	// The uploaded bytes come back over the files route.
	rec = doJSON(t, router, http.MethodGet, "/files/Show/characters/hero.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/files/Show/characters/missing.png", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejectsTraversalFilename(t *testing.T) {
	router, svc, store := newTestRouter(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, studio.CreateProjectRequest{Name: "Show"})
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, project.ID, studio.CreateItemRequest{Name: "Hero"})
	require.NoError(t, err)

	body, contentType := multipartBody(t, "..", "image/png", "x")
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/items/%d/assets", item.ID), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.Keys())
}

func TestStoryboardRoutes(t *testing.T) {
	router, svc, store := newTestRouter(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, studio.CreateProjectRequest{Name: "Show"})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/projects/%d/episodes", project.ID), map[string]any{"Title": "Ep 1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	episode := decodeBody[studio.Episode](t, rec)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/episodes/%d/scenes", episode.ID), map[string]any{})
	require.Equal(t, http.StatusCreated, rec.Code)
	scene := decodeBody[studio.Scene](t, rec)
	assert.Equal(t, "Scene 1", scene.Title)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/scenes/%d/shots", scene.ID), map[string]any{"SequenceNumber": 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	shot := decodeBody[studio.Shot](t, rec)
	assert.Equal(t, "draft", shot.Status)

	// Upload a shot asset, then delete the scene and confirm the report.
	body, contentType := multipartBody(t, "frame.png", "image/png", "frame")
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/shots/%d/assets", shot.ID), body)
	req.Header.Set("Content-Type", contentType)
	uploadRec := httptest.NewRecorder()
	router.ServeHTTP(uploadRec, req)
	require.Equal(t, http.StatusCreated, uploadRec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/projects/%d/script", project.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	script := decodeBody[[]studio.EpisodeScript](t, rec)
	require.Len(t, script, 1)
	require.Len(t, script[0].Scenes, 1)
	assert.Len(t, script[0].Scenes[0].Shots, 1)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/scenes/%d", scene.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decodeBody[DeleteResponse](t, rec)
	assert.NotEmpty(t, report.FilesDeleted)
	assert.Empty(t, store.Keys())
}

func TestRegisterShotAssetRoute(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, studio.CreateProjectRequest{Name: "Show"})
	require.NoError(t, err)
	episode, err := svc.CreateEpisode(ctx, project.ID, studio.CreateEpisodeRequest{Title: "Ep"})
	require.NoError(t, err)
	scene, err := svc.CreateScene(ctx, episode.ID, studio.CreateSceneRequest{})
	require.NoError(t, err)
	shot, err := svc.CreateShot(ctx, scene.ID, studio.CreateShotRequest{SequenceNumber: 1})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/shots/%d/assets/register", shot.ID),
		map[string]string{"file_path": "Show/external/gen.png"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	asset := decodeBody[studio.Asset](t, rec)
	assert.Equal(t, "Show/external/gen.png", asset.FilePath)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/shots/%d/assets/register", shot.ID), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssetFavoriteRoute(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, studio.CreateProjectRequest{Name: "Show"})
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, project.ID, studio.CreateItemRequest{Name: "Hero"})
	require.NoError(t, err)
	asset, err := svc.UploadItemAsset(ctx, item.ID, studio.UploadRequest{
		FileName:    "a.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("a"),
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/assets/%d/favorite", asset.ID),
		map[string]bool{"is_favorite": false})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[studio.Asset](t, rec)
	assert.False(t, updated.IsFavorite)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/assets/%d", asset.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/assets/%d", asset.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventRoutes(t *testing.T) {
	router, svc, _ := newTestRouter(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, studio.CreateProjectRequest{Name: "Show"})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/projects/%d/events", project.ID),
		map[string]any{"Name": "Arc"})
	require.Equal(t, http.StatusCreated, rec.Code)
	event := decodeBody[studio.Event](t, rec)
	assert.Equal(t, "#3B82F6", event.Color)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/events/%d/nodes", event.ID),
		map[string]any{"TargetType": "scene", "TargetID": 1, "Description": "setup"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/events/%d/nodes", event.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	nodes := decodeBody[[]studio.EventNode](t, rec)
	assert.Len(t, nodes, 1)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/events/%d", event.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
