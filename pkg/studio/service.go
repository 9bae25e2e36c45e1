package studio

import "context"

// Service is the main interface for the studio library. It coordinates the
// resolve → write → extract → persist sequence on upload and the
// enumerate → delete files → delete rows sequence on removal, including
// cascades from ancestor deletion.
type Service interface {
	// Project operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	UpdateProject(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error)
	DeleteProject(ctx context.Context, id int64) (*CleanupReport, error)

	// Asset item operations
	CreateItem(ctx context.Context, projectID int64, req CreateItemRequest) (*AssetItem, error)
	GetItem(ctx context.Context, id int64) (*AssetItem, error)
	ListItems(ctx context.Context, projectID int64) ([]*ItemDetails, error)
	UpdateItem(ctx context.Context, id int64, req UpdateItemRequest) (*AssetItem, error)
	DeleteItem(ctx context.Context, id int64) (*CleanupReport, error)

	// Storyboard operations
	FullScript(ctx context.Context, projectID int64) ([]*EpisodeScript, error)
	CreateEpisode(ctx context.Context, projectID int64, req CreateEpisodeRequest) (*Episode, error)
	UpdateEpisode(ctx context.Context, id int64, req UpdateEpisodeRequest) (*Episode, error)
	DeleteEpisode(ctx context.Context, id int64) (*CleanupReport, error)
	CreateScene(ctx context.Context, episodeID int64, req CreateSceneRequest) (*Scene, error)
	UpdateScene(ctx context.Context, id int64, req UpdateSceneRequest) (*Scene, error)
	DeleteScene(ctx context.Context, id int64) (*CleanupReport, error)
	CreateShot(ctx context.Context, sceneID int64, req CreateShotRequest) (*Shot, error)
	UpdateShot(ctx context.Context, id int64, req UpdateShotRequest) (*Shot, error)
	DeleteShot(ctx context.Context, id int64) (*CleanupReport, error)

	// Asset lifecycle operations
	UploadItemAsset(ctx context.Context, itemID int64, req UploadRequest) (*Asset, error)
	UploadShotAsset(ctx context.Context, shotID int64, req UploadRequest) (*Asset, error)
	RegisterShotAsset(ctx context.Context, shotID int64, filePath string) (*Asset, error)
	UploadShotVideo(ctx context.Context, shotID int64, req UploadRequest) (*Shot, error)
	GetAsset(ctx context.Context, id int64) (*Asset, error)
	SetAssetFavorite(ctx context.Context, id int64, favorite bool) (*Asset, error)
	DeleteAsset(ctx context.Context, id int64) error

	// Event overlay operations
	CreateEvent(ctx context.Context, projectID int64, req CreateEventRequest) (*Event, error)
	ListEvents(ctx context.Context, projectID int64) ([]*Event, error)
	UpdateEvent(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	UpsertEventNode(ctx context.Context, eventID int64, req UpsertEventNodeRequest) (*EventNode, error)
	ListEventNodes(ctx context.Context, eventID int64) ([]*EventNode, error)
}

// ItemDetails is an asset item together with its owned asset records.
type ItemDetails struct {
	*AssetItem
	Assets []*Asset `json:"assets"`
}

// EpisodeScript is an episode with its nested scenes, shots and shot assets,
// as returned by FullScript.
type EpisodeScript struct {
	*Episode
	Scenes []*SceneScript `json:"scenes"`
}

// SceneScript is a scene with its nested shots.
type SceneScript struct {
	*Scene
	Shots []*ShotScript `json:"shots"`
}

// ShotScript is a shot with its owned assets.
type ShotScript struct {
	*Shot
	Assets []*Asset `json:"assets"`
}

// DeletePolicy controls how the coordinator reacts to physical delete
// failures during cleanup.
type DeletePolicy int

const (
	// DeleteContinueOnError logs the failure and proceeds with row
	// deletion. This is the default: the record disappearing matters more
	// than storage reclamation.
	DeleteContinueOnError DeletePolicy = iota

	// DeleteFailFast aborts the cleanup on the first physical delete
	// failure, rolling back row deletions.
	DeleteFailFast
)

// CleanupFailure records a physical delete that failed during cleanup.
type CleanupFailure struct {
	Key string
	Err error
}

// CleanupReport lists the file-delete outcomes of a removal cascade.
type CleanupReport struct {
	Deleted  []string
	Failures []CleanupFailure
}
