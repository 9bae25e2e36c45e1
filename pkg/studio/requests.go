package studio

import (
	"encoding/json"
	"io"
)

// CreateProjectRequest contains parameters for creating a project
type CreateProjectRequest struct {
	Name        string
	Description string
}

// UpdateProjectRequest contains parameters for updating a project. Nil
// fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string
	Description *string
}

// CreateItemRequest contains parameters for creating a persistent asset item
type CreateItemRequest struct {
	Name           string
	Description    string
	BasePrompt     string
	NegativePrompt string
	Category       string // defaults to persona_visual
}

// UpdateItemRequest contains parameters for updating an item. Nil fields are
// left unchanged. AvatarPath registers a new unowned favorite image asset
// and links it as the item's avatar.
type UpdateItemRequest struct {
	Name           *string
	Description    *string
	BasePrompt     *string
	NegativePrompt *string
	Category       *string
	AvatarPath     *string
}

// CreateEpisodeRequest contains parameters for creating an episode
type CreateEpisodeRequest struct {
	Title    string
	Position int
}

// UpdateEpisodeRequest contains parameters for updating an episode
type UpdateEpisodeRequest struct {
	Title    *string
	Position *int
}

// CreateSceneRequest contains parameters for creating a scene. A nil
// SequenceNumber is assigned the next number in the episode; an empty title
// defaults to "Scene {n}".
type CreateSceneRequest struct {
	Title          string
	SequenceNumber *int
}

// UpdateSceneRequest contains parameters for updating a scene
type UpdateSceneRequest struct {
	Title *string
}

// CreateShotRequest contains parameters for creating a shot
type CreateShotRequest struct {
	SequenceNumber int
	Title          string
	ActionText     string
	Dialogue       string
	Prompt         string
	NegativePrompt string
	Status         string // defaults to "draft"
}

// UpdateShotRequest contains parameters for updating a shot. Nil fields are
// left unchanged.
type UpdateShotRequest struct {
	SequenceNumber  *int
	Title           *string
	ActionText      *string
	Dialogue        *string
	Prompt          *string
	NegativePrompt  *string
	SelectedAssetID *int64
	Status          *string
}

// UploadRequest carries an upload stream with its declared identity. The
// filename is taken verbatim apart from traversal rejection; the content
// type feeds file-type classification.
type UploadRequest struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

// CreateEventRequest contains parameters for creating an overlay event
type CreateEventRequest struct {
	Name        string
	Color       string // defaults to "#3B82F6"
	SortKey     int
	Description string
	GraphData   json.RawMessage
}

// UpdateEventRequest contains parameters for updating an event. Nil fields
// are left unchanged.
type UpdateEventRequest struct {
	Name        *string
	Color       *string
	SortKey     *int
	Description *string
	GraphData   json.RawMessage
}

// UpsertEventNodeRequest keys an event node by target type and id; a second
// upsert for the same target replaces the description.
type UpsertEventNodeRequest struct {
	TargetType  string
	TargetID    int64
	Description string
}
