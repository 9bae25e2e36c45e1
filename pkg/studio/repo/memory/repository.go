package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/storyforge/studio/pkg/studio"
)

// Repository implements studio.Repository using in-memory storage. Intended
// for tests and local development.
type Repository struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	nextID int64

	projects   map[int64]*studio.Project
	episodes   map[int64]*studio.Episode
	scenes     map[int64]*studio.Scene
	shots      map[int64]*studio.Shot
	items      map[int64]*studio.AssetItem
	assets     map[int64]*studio.Asset
	events     map[int64]*studio.Event
	eventNodes map[int64]*studio.EventNode
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		projects:   make(map[int64]*studio.Project),
		episodes:   make(map[int64]*studio.Episode),
		scenes:     make(map[int64]*studio.Scene),
		shots:      make(map[int64]*studio.Shot),
		items:      make(map[int64]*studio.AssetItem),
		assets:     make(map[int64]*studio.Asset),
		events:     make(map[int64]*studio.Event),
		eventNodes: make(map[int64]*studio.EventNode),
	}
}

func (r *Repository) newID() int64 {
	return atomic.AddInt64(&r.nextID, 1)
}

// Project operations

func (r *Repository) CreateProject(ctx context.Context, project *studio.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project.ID = r.newID()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	projectCopy := *project
	r.projects[project.ID] = &projectCopy
	return nil
}

func (r *Repository) GetProject(ctx context.Context, id int64) (*studio.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, exists := r.projects[id]
	if !exists {
		return nil, studio.ErrProjectNotFound
	}
	projectCopy := *project
	return &projectCopy, nil
}

func (r *Repository) ListProjects(ctx context.Context) ([]*studio.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*studio.Project, 0, len(r.projects))
	for _, project := range r.projects {
		projectCopy := *project
		result = append(result, &projectCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *Repository) UpdateProject(ctx context.Context, project *studio.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[project.ID]; !exists {
		return studio.ErrProjectNotFound
	}
	projectCopy := *project
	r.projects[project.ID] = &projectCopy
	return nil
}

func (r *Repository) DeleteProject(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[id]; !exists {
		return studio.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

// Episode operations

func (r *Repository) CreateEpisode(ctx context.Context, episode *studio.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[episode.ProjectID]; !exists {
		return studio.ErrProjectNotFound
	}
	episode.ID = r.newID()
	episodeCopy := *episode
	r.episodes[episode.ID] = &episodeCopy
	return nil
}

func (r *Repository) GetEpisode(ctx context.Context, id int64) (*studio.Episode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	episode, exists := r.episodes[id]
	if !exists {
		return nil, studio.ErrEpisodeNotFound
	}
	episodeCopy := *episode
	return &episodeCopy, nil
}

func (r *Repository) ListEpisodes(ctx context.Context, projectID int64) ([]*studio.Episode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*studio.Episode
	for _, episode := range r.episodes {
		if episode.ProjectID == projectID {
			episodeCopy := *episode
			result = append(result, &episodeCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *Repository) UpdateEpisode(ctx context.Context, episode *studio.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.episodes[episode.ID]; !exists {
		return studio.ErrEpisodeNotFound
	}
	episodeCopy := *episode
	r.episodes[episode.ID] = &episodeCopy
	return nil
}

func (r *Repository) DeleteEpisode(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.episodes[id]; !exists {
		return studio.ErrEpisodeNotFound
	}
	delete(r.episodes, id)
	return nil
}

// Scene operations

func (r *Repository) CreateScene(ctx context.Context, scene *studio.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.episodes[scene.EpisodeID]; !exists {
		return studio.ErrEpisodeNotFound
	}
	scene.ID = r.newID()
	sceneCopy := *scene
	r.scenes[scene.ID] = &sceneCopy
	return nil
}

func (r *Repository) GetScene(ctx context.Context, id int64) (*studio.Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scene, exists := r.scenes[id]
	if !exists {
		return nil, studio.ErrSceneNotFound
	}
	sceneCopy := *scene
	return &sceneCopy, nil
}

func (r *Repository) ListScenes(ctx context.Context, episodeID int64) ([]*studio.Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*studio.Scene
	for _, scene := range r.scenes {
		if scene.EpisodeID == episodeID {
			sceneCopy := *scene
			result = append(result, &sceneCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SequenceNumber != result[j].SequenceNumber {
			return result[i].SequenceNumber < result[j].SequenceNumber
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *Repository) UpdateScene(ctx context.Context, scene *studio.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenes[scene.ID]; !exists {
		return studio.ErrSceneNotFound
	}
	sceneCopy := *scene
	r.scenes[scene.ID] = &sceneCopy
	return nil
}

func (r *Repository) DeleteScene(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenes[id]; !exists {
		return studio.ErrSceneNotFound
	}
	delete(r.scenes, id)
	return nil
}

// Shot operations

func (r *Repository) CreateShot(ctx context.Context, shot *studio.Shot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenes[shot.SceneID]; !exists {
		return studio.ErrSceneNotFound
	}
	shot.ID = r.newID()
	if shot.Status == "" {
		shot.Status = "draft"
	}
	shotCopy := *shot
	r.shots[shot.ID] = &shotCopy
	return nil
}

func (r *Repository) GetShot(ctx context.Context, id int64) (*studio.Shot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shot, exists := r.shots[id]
	if !exists {
		return nil, studio.ErrShotNotFound
	}
	shotCopy := *shot
	return &shotCopy, nil
}

func (r *Repository) ListShots(ctx context.Context, sceneID int64) ([]*studio.Shot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*studio.Shot
	for _, shot := range r.shots {
		if shot.SceneID == sceneID {
			shotCopy := *shot
			result = append(result, &shotCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SequenceNumber != result[j].SequenceNumber {
			return result[i].SequenceNumber < result[j].SequenceNumber
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *Repository) UpdateShot(ctx context.Context, shot *studio.Shot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shots[shot.ID]; !exists {
		return studio.ErrShotNotFound
	}
	shotCopy := *shot
	r.shots[shot.ID] = &shotCopy
	return nil
}

func (r *Repository) DeleteShot(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shots[id]; !exists {
		return studio.ErrShotNotFound
	}
	delete(r.shots, id)
	return nil
}

func (r *Repository) GetShotChain(ctx context.Context, shotID int64) (*studio.ShotChain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shot, exists := r.shots[shotID]
	if !exists {
		return nil, studio.ErrShotNotFound
	}
	scene, exists := r.scenes[shot.SceneID]
	if !exists {
		return nil, studio.ErrSceneNotFound
	}
	episode, exists := r.episodes[scene.EpisodeID]
	if !exists {
		return nil, studio.ErrEpisodeNotFound
	}
	project, exists := r.projects[episode.ProjectID]
	if !exists {
		return nil, studio.ErrProjectNotFound
	}

	shotCopy := *shot
	sceneCopy := *scene
	episodeCopy := *episode
	projectCopy := *project
	return &studio.ShotChain{
		Shot:    &shotCopy,
		Scene:   &sceneCopy,
		Episode: &episodeCopy,
		Project: &projectCopy,
	}, nil
}

// Asset item operations

func (r *Repository) CreateItem(ctx context.Context, item *studio.AssetItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[item.ProjectID]; !exists {
		return studio.ErrProjectNotFound
	}
	item.ID = r.newID()
	if item.Category == "" {
		item.Category = studio.CategoryPersonaVisual
	}
	itemCopy := *item
	r.items[item.ID] = &itemCopy
	return nil
}

func (r *Repository) GetItem(ctx context.Context, id int64) (*studio.AssetItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, studio.ErrItemNotFound
	}
	itemCopy := *item
	return &itemCopy, nil
}

func (r *Repository) GetItemByName(ctx context.Context, projectID int64, name string) (*studio.AssetItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ProjectID == projectID && strings.EqualFold(item.Name, name) {
			itemCopy := *item
			return &itemCopy, nil
		}
	}
	return nil, studio.ErrItemNotFound
}

func (r *Repository) ListItems(ctx context.Context, projectID int64) ([]*studio.AssetItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*studio.AssetItem
	for _, item := range r.items {
		if item.ProjectID == projectID {
			itemCopy := *item
			result = append(result, &itemCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *Repository) UpdateItem(ctx context.Context, item *studio.AssetItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return studio.ErrItemNotFound
	}
	itemCopy := *item
	r.items[item.ID] = &itemCopy
	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return studio.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// Asset operations

func (r *Repository) CreateAsset(ctx context.Context, asset *studio.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	asset.ID = r.newID()
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now().UTC()
	}
	assetCopy := *asset
	r.assets[asset.ID] = &assetCopy
	return nil
}

func (r *Repository) GetAsset(ctx context.Context, id int64) (*studio.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, exists := r.assets[id]
	if !exists {
		return nil, studio.ErrAssetNotFound
	}
	assetCopy := *asset
	return &assetCopy, nil
}

func (r *Repository) ListAssetsByOwner(ctx context.Context, owner studio.AssetOwner) ([]*studio.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*studio.Asset
	for _, asset := range r.assets {
		if asset.Owner == owner {
			assetCopy := *asset
			result = append(result, &assetCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *Repository) UpdateAsset(ctx context.Context, asset *studio.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[asset.ID]; !exists {
		return studio.ErrAssetNotFound
	}
	assetCopy := *asset
	r.assets[asset.ID] = &assetCopy
	return nil
}

func (r *Repository) DeleteAsset(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[id]; !exists {
		return studio.ErrAssetNotFound
	}
	delete(r.assets, id)
	return nil
}

// Event overlay operations

func (r *Repository) CreateEvent(ctx context.Context, event *studio.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[event.ProjectID]; !exists {
		return studio.ErrProjectNotFound
	}
	event.ID = r.newID()
	if event.Color == "" {
		event.Color = "#3B82F6"
	}
	eventCopy := *event
	r.events[event.ID] = &eventCopy
	return nil
}

func (r *Repository) GetEvent(ctx context.Context, id int64) (*studio.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.events[id]
	if !exists {
		return nil, studio.ErrEventNotFound
	}
	eventCopy := *event
	return &eventCopy, nil
}

func (r *Repository) ListEvents(ctx context.Context, projectID int64) ([]*studio.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*studio.Event
	for _, event := range r.events {
		if event.ProjectID == projectID {
			eventCopy := *event
			result = append(result, &eventCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortKey != result[j].SortKey {
			return result[i].SortKey < result[j].SortKey
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *Repository) UpdateEvent(ctx context.Context, event *studio.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.ID]; !exists {
		return studio.ErrEventNotFound
	}
	eventCopy := *event
	r.events[event.ID] = &eventCopy
	return nil
}

func (r *Repository) DeleteEvent(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[id]; !exists {
		return studio.ErrEventNotFound
	}
	delete(r.events, id)
	for nodeID, node := range r.eventNodes {
		if node.EventID == id {
			delete(r.eventNodes, nodeID)
		}
	}
	return nil
}

func (r *Repository) UpsertEventNode(ctx context.Context, node *studio.EventNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[node.EventID]; !exists {
		return studio.ErrEventNotFound
	}

	for _, existing := range r.eventNodes {
		if existing.EventID == node.EventID &&
			existing.TargetType == node.TargetType &&
			existing.TargetID == node.TargetID {
			node.ID = existing.ID
			nodeCopy := *node
			r.eventNodes[existing.ID] = &nodeCopy
			return nil
		}
	}

	node.ID = r.newID()
	nodeCopy := *node
	r.eventNodes[node.ID] = &nodeCopy
	return nil
}

func (r *Repository) ListEventNodes(ctx context.Context, eventID int64) ([]*studio.EventNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*studio.EventNode
	for _, node := range r.eventNodes {
		if node.EventID == eventID {
			nodeCopy := *node
			result = append(result, &nodeCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// InTx serializes multi-row operations under a dedicated lock. The in-memory
// implementation does not roll back on failure; transactional semantics are
// provided by the postgres repository.
func (r *Repository) InTx(ctx context.Context, fn func(studio.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}
