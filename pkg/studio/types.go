package studio

import (
	"encoding/json"
	"path"
	"strings"
	"time"
)

// FileType is the coarse classification stored on an asset record.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
	FileTypeText  FileType = "text"
	FileTypeOther FileType = "other"
)

// Asset item categories. Two categories map to dedicated folder names; any
// other category string is used verbatim as the folder.
const (
	CategoryPersona       = "persona"
	CategoryPersonaVisual = "persona_visual"
	CategoryBackground    = "background"
)

// OwnerKind identifies which side of the asset ownership union is set.
type OwnerKind string

const (
	OwnerKindItem OwnerKind = "item"
	OwnerKindShot OwnerKind = "shot"
	OwnerKindNone OwnerKind = "none"
)

// AssetOwner is a tagged ownership reference: an asset belongs to exactly one
// persistent item, exactly one shot, or nothing at all (manually registered
// paths). Never both.
type AssetOwner struct {
	Kind OwnerKind `json:"kind"`
	ID   int64     `json:"id,omitempty"`
}

// ItemOwner returns an ownership reference to a persistent asset item.
func ItemOwner(id int64) AssetOwner { return AssetOwner{Kind: OwnerKindItem, ID: id} }

// ShotOwner returns an ownership reference to a shot.
func ShotOwner(id int64) AssetOwner { return AssetOwner{Kind: OwnerKindShot, ID: id} }

// Unowned returns the empty ownership reference.
func Unowned() AssetOwner { return AssetOwner{Kind: OwnerKindNone} }

// Project is the top of the script hierarchy.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Episode belongs to a project and orders its scenes.
type Episode struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
}

// Scene belongs to an episode.
type Scene struct {
	ID             int64  `json:"id"`
	EpisodeID      int64  `json:"episode_id"`
	SequenceNumber int    `json:"sequence_number"`
	Title          string `json:"title"`
}

// Shot is the leaf of the script hierarchy and may own assets and a video.
type Shot struct {
	ID             int64  `json:"id"`
	SceneID        int64  `json:"scene_id"`
	SequenceNumber int    `json:"sequence_number"`
	Title          string `json:"title,omitempty"`
	ActionText     string `json:"action_text,omitempty"`
	Dialogue       string `json:"dialogue,omitempty"`
	Prompt         string `json:"prompt,omitempty"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	SelectedAssetID *int64 `json:"selected_asset_id,omitempty"`
	Status         string `json:"status"`
	VideoPath      string `json:"video_path,omitempty"`
}

// AssetItem is a persistent asset entry under a project: a persona sheet, a
// background reference, or any other categorized collection of files.
type AssetItem struct {
	ID             int64  `json:"id"`
	ProjectID      int64  `json:"project_id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	BasePrompt     string `json:"base_prompt,omitempty"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Category       string `json:"category"`
	AvatarAssetID  *int64 `json:"avatar_asset_id,omitempty"`
}

// Asset is a binary file record. FilePath is the root-relative,
// forward-slash-separated location of the bytes and is the sole source of
// truth for physical location once stored: nothing recomputes it from the
// owner, so owner renames never move files.
type Asset struct {
	ID         int64          `json:"id"`
	Owner      AssetOwner     `json:"owner"`
	FilePath   string         `json:"file_path"`
	FileType   FileType       `json:"file_type"`
	Metadata   map[string]any `json:"meta_data,omitempty"`
	IsFavorite bool           `json:"is_favorite"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Event is the overlay layer: a named narrative thread across the hierarchy.
type Event struct {
	ID          int64           `json:"id"`
	ProjectID   int64           `json:"project_id"`
	Name        string          `json:"name"`
	Color       string          `json:"color"`
	SortKey     int             `json:"sort_key"`
	Description string          `json:"description,omitempty"`
	GraphData   json.RawMessage `json:"graph_data,omitempty"`
}

// EventNode ties an event to a single hierarchy node by type and id.
type EventNode struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	TargetType  string `json:"target_type"`
	TargetID    int64  `json:"target_id"`
	Description string `json:"description,omitempty"`
}

// ShotChain is a shot together with its full ancestor chain, returned by a
// single repository lookup.
type ShotChain struct {
	Shot    *Shot
	Scene   *Scene
	Episode *Episode
	Project *Project
}

// CategoryFolder maps an item category to its storage folder name. The two
// persona spellings share the "characters" folder (the legacy alias is
// compared case-insensitively); backgrounds get their own folder; every other
// category is used verbatim.
func CategoryFolder(category string) string {
	switch {
	case category == CategoryPersona, strings.EqualFold(category, CategoryPersonaVisual):
		return "characters"
	case category == CategoryBackground:
		return "backgrounds"
	default:
		return category
	}
}

// extension fallback table used when the declared content type is not
// conclusive.
var extensionTypes = map[string]FileType{
	".jpg": FileTypeImage, ".jpeg": FileTypeImage, ".png": FileTypeImage,
	".webp": FileTypeImage, ".gif": FileTypeImage,
	".mp4": FileTypeVideo, ".mov": FileTypeVideo, ".avi": FileTypeVideo,
	".webm": FileTypeVideo,
	".txt": FileTypeText, ".md": FileTypeText, ".json": FileTypeText,
	".pdf": FileTypeText, ".doc": FileTypeText, ".docx": FileTypeText,
}

// ClassifyFileType determines the asset file type from the declared content
// type, falling back to the filename extension.
func ClassifyFileType(contentType, filename string) FileType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return FileTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return FileTypeVideo
	case strings.HasPrefix(contentType, "text/"):
		return FileTypeText
	}
	if t, ok := extensionTypes[strings.ToLower(path.Ext(filename))]; ok {
		return t
	}
	return FileTypeOther
}
