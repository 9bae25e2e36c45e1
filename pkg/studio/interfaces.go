package studio

import (
	"context"
	"io"
	"time"
)

// BlobStore defines the interface for physical asset storage. Keys are
// root-relative, forward-slash-separated paths; backends confine them to
// their configured root.
type BlobStore interface {
	// Upload writes the stream to the given key, creating missing
	// directories recursively. An existing file at the key is silently
	// overwritten.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download opens the file at the given key. Returns ErrFileNotFound
	// when it does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the file at the given key. Deleting a missing file is
	// a no-op, not an error.
	Delete(ctx context.Context, key string) error

	// DeleteTree removes every file under the given prefix. A missing
	// prefix is a no-op.
	DeleteTree(ctx context.Context, prefix string) error

	// Meta returns size and content-type information for a stored file.
	Meta(ctx context.Context, key string) (*FileInfo, error)
}

// FileInfo describes a stored file.
type FileInfo struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// Repository defines the relational record store the coordinator persists
// into. Implementations provide per-entity CRUD plus the parent-chain lookup
// the path resolver needs, and a single-transaction boundary for multi-row
// operations.
type Repository interface {
	// Project operations
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id int64) error

	// Episode operations
	CreateEpisode(ctx context.Context, episode *Episode) error
	GetEpisode(ctx context.Context, id int64) (*Episode, error)
	ListEpisodes(ctx context.Context, projectID int64) ([]*Episode, error)
	UpdateEpisode(ctx context.Context, episode *Episode) error
	DeleteEpisode(ctx context.Context, id int64) error

	// Scene operations
	CreateScene(ctx context.Context, scene *Scene) error
	GetScene(ctx context.Context, id int64) (*Scene, error)
	ListScenes(ctx context.Context, episodeID int64) ([]*Scene, error)
	UpdateScene(ctx context.Context, scene *Scene) error
	DeleteScene(ctx context.Context, id int64) error

	// Shot operations
	CreateShot(ctx context.Context, shot *Shot) error
	GetShot(ctx context.Context, id int64) (*Shot, error)
	ListShots(ctx context.Context, sceneID int64) ([]*Shot, error)
	UpdateShot(ctx context.Context, shot *Shot) error
	DeleteShot(ctx context.Context, id int64) error
	// GetShotChain resolves a shot together with its scene, episode and
	// project in one lookup.
	GetShotChain(ctx context.Context, shotID int64) (*ShotChain, error)

	// Asset item operations
	CreateItem(ctx context.Context, item *AssetItem) error
	GetItem(ctx context.Context, id int64) (*AssetItem, error)
	GetItemByName(ctx context.Context, projectID int64, name string) (*AssetItem, error)
	ListItems(ctx context.Context, projectID int64) ([]*AssetItem, error)
	UpdateItem(ctx context.Context, item *AssetItem) error
	DeleteItem(ctx context.Context, id int64) error

	// Asset operations
	CreateAsset(ctx context.Context, asset *Asset) error
	GetAsset(ctx context.Context, id int64) (*Asset, error)
	ListAssetsByOwner(ctx context.Context, owner AssetOwner) ([]*Asset, error)
	UpdateAsset(ctx context.Context, asset *Asset) error
	DeleteAsset(ctx context.Context, id int64) error

	// Event overlay operations
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, projectID int64) ([]*Event, error)
	UpdateEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, id int64) error
	// UpsertEventNode creates or replaces the node keyed by
	// (event_id, target_type, target_id).
	UpsertEventNode(ctx context.Context, node *EventNode) error
	ListEventNodes(ctx context.Context, eventID int64) ([]*EventNode, error)

	// InTx runs fn against a repository bound to a single transaction.
	InTx(ctx context.Context, fn func(Repository) error) error
}

// MetadataExtractor parses generation-tool metadata embedded in an uploaded
// image. Implementations never fail the caller: any failure degrades to an
// empty map.
type MetadataExtractor interface {
	Extract(reader io.Reader) map[string]any
}
