package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/storyforge/studio/pkg/studio/metadata"
)

// service implements the Service interface
type service struct {
	repository   Repository
	store        BlobStore
	extractor    MetadataExtractor
	logger       *slog.Logger
	deletePolicy DeletePolicy
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the physical storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithMetadataExtractor replaces the image metadata extractor. The default
// is the PNG parameters-block extractor.
func WithMetadataExtractor(extractor MetadataExtractor) Option {
	return func(s *service) {
		s.extractor = extractor
	}
}

// WithLogger sets the logger used for swallowed cleanup failures
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// WithDeletePolicy sets how physical delete failures are handled during
// cleanup. The default is DeleteContinueOnError.
func WithDeletePolicy(policy DeletePolicy) Option {
	return func(s *service) {
		s.deletePolicy = policy
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		extractor: metadata.New(),
		logger:    slog.Default(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.store == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

// Project operations

func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	if req.Name == "" {
		return nil, errors.New("project name is required")
	}

	project := &Project{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repository.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) GetProject(ctx context.Context, id int64) (*Project, error) {
	return s.repository.GetProject(ctx, id)
}

func (s *service) ListProjects(ctx context.Context) ([]*Project, error) {
	return s.repository.ListProjects(ctx)
}

func (s *service) UpdateProject(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error) {
	project, err := s.repository.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.repository.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes the project, cascading through episodes, scenes,
// shots, items and events. Each scene's storage subtree is wiped via the
// same routine used by DeleteScene, so the bulk cleanup propagates
// transitively. Row deletions run in a single transaction.
func (s *service) DeleteProject(ctx context.Context, id int64) (*CleanupReport, error) {
	project, err := s.repository.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{}
	err = s.repository.InTx(ctx, func(tx Repository) error {
		episodes, err := tx.ListEpisodes(ctx, id)
		if err != nil {
			return err
		}
		for _, episode := range episodes {
			if err := s.deleteEpisodeTx(ctx, tx, episode, project.Name, report); err != nil {
				return err
			}
		}

		items, err := tx.ListItems(ctx, id)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.deleteItemTx(ctx, tx, item.ID, report); err != nil {
				return err
			}
		}

		events, err := tx.ListEvents(ctx, id)
		if err != nil {
			return err
		}
		for _, event := range events {
			if err := tx.DeleteEvent(ctx, event.ID); err != nil {
				return err
			}
		}

		return tx.DeleteProject(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Asset item operations

func (s *service) CreateItem(ctx context.Context, projectID int64, req CreateItemRequest) (*AssetItem, error) {
	if req.Name == "" {
		return nil, errors.New("item name is required")
	}
	if _, err := s.repository.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.repository.GetItemByName(ctx, projectID, req.Name); err == nil {
		return nil, ErrDuplicateItemName
	}

	category := req.Category
	if category == "" {
		category = CategoryPersonaVisual
	}

	item := &AssetItem{
		ProjectID:      projectID,
		Name:           req.Name,
		Description:    req.Description,
		BasePrompt:     req.BasePrompt,
		NegativePrompt: req.NegativePrompt,
		Category:       category,
	}
	if err := s.repository.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) GetItem(ctx context.Context, id int64) (*AssetItem, error) {
	return s.repository.GetItem(ctx, id)
}

func (s *service) ListItems(ctx context.Context, projectID int64) ([]*ItemDetails, error) {
	items, err := s.repository.ListItems(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := make([]*ItemDetails, 0, len(items))
	for _, item := range items {
		assets, err := s.repository.ListAssetsByOwner(ctx, ItemOwner(item.ID))
		if err != nil {
			return nil, err
		}
		result = append(result, &ItemDetails{AssetItem: item, Assets: assets})
	}
	return result, nil
}

func (s *service) UpdateItem(ctx context.Context, id int64, req UpdateItemRequest) (*AssetItem, error) {
	item, err := s.repository.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != item.Name {
		if _, err := s.repository.GetItemByName(ctx, item.ProjectID, *req.Name); err == nil {
			return nil, ErrDuplicateItemName
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.BasePrompt != nil {
		item.BasePrompt = *req.BasePrompt
	}
	if req.NegativePrompt != nil {
		item.NegativePrompt = *req.NegativePrompt
	}
	if req.Category != nil {
		item.Category = *req.Category
	}

	err = s.repository.InTx(ctx, func(tx Repository) error {
		if req.AvatarPath != nil && *req.AvatarPath != "" {
			// The avatar reference is an unowned record pointing at an
			// already-stored path; no bytes are written here.
			avatar := &Asset{
				Owner:      Unowned(),
				FilePath:   *req.AvatarPath,
				FileType:   FileTypeImage,
				IsFavorite: true,
			}
			if err := tx.CreateAsset(ctx, avatar); err != nil {
				return err
			}
			item.AvatarAssetID = &avatar.ID
		}
		return tx.UpdateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id int64) (*CleanupReport, error) {
	if _, err := s.repository.GetItem(ctx, id); err != nil {
		return nil, err
	}

	report := &CleanupReport{}
	err := s.repository.InTx(ctx, func(tx Repository) error {
		return s.deleteItemTx(ctx, tx, id, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Storyboard operations

func (s *service) FullScript(ctx context.Context, projectID int64) ([]*EpisodeScript, error) {
	if _, err := s.repository.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	episodes, err := s.repository.ListEpisodes(ctx, projectID)
	if err != nil {
		return nil, err
	}

	script := make([]*EpisodeScript, 0, len(episodes))
	for _, episode := range episodes {
		scenes, err := s.repository.ListScenes(ctx, episode.ID)
		if err != nil {
			return nil, err
		}

		sceneScripts := make([]*SceneScript, 0, len(scenes))
		for _, scene := range scenes {
			shots, err := s.repository.ListShots(ctx, scene.ID)
			if err != nil {
				return nil, err
			}

			shotScripts := make([]*ShotScript, 0, len(shots))
			for _, shot := range shots {
				assets, err := s.repository.ListAssetsByOwner(ctx, ShotOwner(shot.ID))
				if err != nil {
					return nil, err
				}
				shotScripts = append(shotScripts, &ShotScript{Shot: shot, Assets: assets})
			}
			sceneScripts = append(sceneScripts, &SceneScript{Scene: scene, Shots: shotScripts})
		}
		script = append(script, &EpisodeScript{Episode: episode, Scenes: sceneScripts})
	}
	return script, nil
}

func (s *service) CreateEpisode(ctx context.Context, projectID int64, req CreateEpisodeRequest) (*Episode, error) {
	episode := &Episode{
		ProjectID: projectID,
		Title:     req.Title,
		Position:  req.Position,
	}
	if err := s.repository.CreateEpisode(ctx, episode); err != nil {
		return nil, err
	}
	return episode, nil
}

func (s *service) UpdateEpisode(ctx context.Context, id int64, req UpdateEpisodeRequest) (*Episode, error) {
	episode, err := s.repository.GetEpisode(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		episode.Title = *req.Title
	}
	if req.Position != nil {
		episode.Position = *req.Position
	}

	if err := s.repository.UpdateEpisode(ctx, episode); err != nil {
		return nil, err
	}
	return episode, nil
}

func (s *service) DeleteEpisode(ctx context.Context, id int64) (*CleanupReport, error) {
	episode, err := s.repository.GetEpisode(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := s.repository.GetProject(ctx, episode.ProjectID)
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{}
	err = s.repository.InTx(ctx, func(tx Repository) error {
		return s.deleteEpisodeTx(ctx, tx, episode, project.Name, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *service) CreateScene(ctx context.Context, episodeID int64, req CreateSceneRequest) (*Scene, error) {
	if _, err := s.repository.GetEpisode(ctx, episodeID); err != nil {
		return nil, err
	}

	seq := 0
	if req.SequenceNumber != nil {
		seq = *req.SequenceNumber
	} else {
		scenes, err := s.repository.ListScenes(ctx, episodeID)
		if err != nil {
			return nil, err
		}
		for _, scene := range scenes {
			if scene.SequenceNumber >= seq {
				seq = scene.SequenceNumber + 1
			}
		}
		if seq == 0 {
			seq = 1
		}
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Scene %d", seq)
	}

	scene := &Scene{
		EpisodeID:      episodeID,
		SequenceNumber: seq,
		Title:          title,
	}
	if err := s.repository.CreateScene(ctx, scene); err != nil {
		return nil, err
	}
	return scene, nil
}

func (s *service) UpdateScene(ctx context.Context, id int64, req UpdateSceneRequest) (*Scene, error) {
	scene, err := s.repository.GetScene(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		scene.Title = *req.Title
	}

	if err := s.repository.UpdateScene(ctx, scene); err != nil {
		return nil, err
	}
	return scene, nil
}

// DeleteScene removes the scene's shots and their assets, then wipes the
// entire scene storage subtree, catching files that never had an asset row.
// This is deliberately stronger than the row-driven cleanup used for shots
// and items.
func (s *service) DeleteScene(ctx context.Context, id int64) (*CleanupReport, error) {
	scene, err := s.repository.GetScene(ctx, id)
	if err != nil {
		return nil, err
	}
	episode, err := s.repository.GetEpisode(ctx, scene.EpisodeID)
	if err != nil {
		return nil, err
	}
	project, err := s.repository.GetProject(ctx, episode.ProjectID)
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{}
	err = s.repository.InTx(ctx, func(tx Repository) error {
		return s.deleteSceneTx(ctx, tx, scene, project.Name, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *service) CreateShot(ctx context.Context, sceneID int64, req CreateShotRequest) (*Shot, error) {
	status := req.Status
	if status == "" {
		status = "draft"
	}

	shot := &Shot{
		SceneID:        sceneID,
		SequenceNumber: req.SequenceNumber,
		Title:          req.Title,
		ActionText:     req.ActionText,
		Dialogue:       req.Dialogue,
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Status:         status,
	}
	if err := s.repository.CreateShot(ctx, shot); err != nil {
		return nil, err
	}
	return shot, nil
}

func (s *service) UpdateShot(ctx context.Context, id int64, req UpdateShotRequest) (*Shot, error) {
	shot, err := s.repository.GetShot(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SequenceNumber != nil {
		shot.SequenceNumber = *req.SequenceNumber
	}
	if req.Title != nil {
		shot.Title = *req.Title
	}
	if req.ActionText != nil {
		shot.ActionText = *req.ActionText
	}
	if req.Dialogue != nil {
		shot.Dialogue = *req.Dialogue
	}
	if req.Prompt != nil {
		shot.Prompt = *req.Prompt
	}
	if req.NegativePrompt != nil {
		shot.NegativePrompt = *req.NegativePrompt
	}
	if req.SelectedAssetID != nil {
		shot.SelectedAssetID = req.SelectedAssetID
	}
	if req.Status != nil {
		shot.Status = *req.Status
	}

	if err := s.repository.UpdateShot(ctx, shot); err != nil {
		return nil, err
	}
	return shot, nil
}

func (s *service) DeleteShot(ctx context.Context, id int64) (*CleanupReport, error) {
	shot, err := s.repository.GetShot(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{}
	err = s.repository.InTx(ctx, func(tx Repository) error {
		return s.deleteShotTx(ctx, tx, shot, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Asset lifecycle operations

// UploadItemAsset resolves the item's category folder, writes the stream,
// extracts metadata for images and persists the record. Item uploads are
// favorites by default.
func (s *service) UploadItemAsset(ctx context.Context, itemID int64, req UploadRequest) (*Asset, error) {
	item, err := s.repository.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	project, err := s.repository.GetProject(ctx, item.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := ValidateFilename(req.FileName); err != nil {
		return nil, err
	}

	key := path.Join(ItemDir(project.Name, item.Category), req.FileName)
	return s.storeAsset(ctx, key, ItemOwner(item.ID), req, true)
}

// UploadShotAsset writes a generic upload into the shot's assets directory.
// Shot uploads are not favorites by default.
func (s *service) UploadShotAsset(ctx context.Context, shotID int64, req UploadRequest) (*Asset, error) {
	chain, err := s.repository.GetShotChain(ctx, shotID)
	if err != nil {
		return nil, err
	}
	if err := ValidateFilename(req.FileName); err != nil {
		return nil, err
	}

	dir := ShotAssetsDir(chain.Project.Name, chain.Episode.ID, chain.Scene.ID, chain.Shot.ID)
	key := path.Join(dir, req.FileName)
	return s.storeAsset(ctx, key, ShotOwner(shotID), req, false)
}

// RegisterShotAsset records an already-stored path against a shot without
// writing any bytes. The record is tolerated even when no file exists at the
// path; extraction is best-effort.
func (s *service) RegisterShotAsset(ctx context.Context, shotID int64, filePath string) (*Asset, error) {
	if _, err := s.repository.GetShot(ctx, shotID); err != nil {
		return nil, err
	}

	asset := &Asset{
		Owner:    ShotOwner(shotID),
		FilePath: filePath,
		FileType: FileTypeImage,
		Metadata: s.extractMetadata(ctx, filePath),
	}

	err := s.repository.InTx(ctx, func(tx Repository) error {
		return tx.CreateAsset(ctx, asset)
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}

// UploadShotVideo writes the stream into the shot's video slot under a
// generated unique name and records the path on the shot. The previous video
// file, if any, is left in place.
func (s *service) UploadShotVideo(ctx context.Context, shotID int64, req UploadRequest) (*Shot, error) {
	chain, err := s.repository.GetShotChain(ctx, shotID)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(req.FileName)
	if ext == "" {
		ext = ".mp4"
	}
	dir := ShotVideoDir(chain.Project.Name, chain.Episode.ID, chain.Scene.ID, chain.Shot.ID)
	key := path.Join(dir, uuid.New().String()+ext)

	if err := s.store.Upload(ctx, key, req.Reader); err != nil {
		return nil, &StorageError{Key: key, Op: "upload", Err: err}
	}

	shot := chain.Shot
	shot.VideoPath = key
	if err := s.repository.UpdateShot(ctx, shot); err != nil {
		return nil, err
	}
	return shot, nil
}

func (s *service) GetAsset(ctx context.Context, id int64) (*Asset, error) {
	return s.repository.GetAsset(ctx, id)
}

func (s *service) SetAssetFavorite(ctx context.Context, id int64, favorite bool) (*Asset, error) {
	asset, err := s.repository.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	asset.IsFavorite = favorite
	if err := s.repository.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *service) DeleteAsset(ctx context.Context, id int64) error {
	asset, err := s.repository.GetAsset(ctx, id)
	if err != nil {
		return err
	}

	report := &CleanupReport{}
	return s.repository.InTx(ctx, func(tx Repository) error {
		if asset.FilePath != "" {
			if err := s.removeFile(ctx, asset.FilePath, report); err != nil {
				return err
			}
		}
		if err := tx.DeleteAsset(ctx, id); err != nil {
			return &AssetError{AssetID: id, Op: "delete", Err: err}
		}
		return nil
	})
}

// Event overlay operations

func (s *service) CreateEvent(ctx context.Context, projectID int64, req CreateEventRequest) (*Event, error) {
	event := &Event{
		ProjectID:   projectID,
		Name:        req.Name,
		Color:       req.Color,
		SortKey:     req.SortKey,
		Description: req.Description,
		GraphData:   req.GraphData,
	}
	if err := s.repository.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) ListEvents(ctx context.Context, projectID int64) ([]*Event, error) {
	return s.repository.ListEvents(ctx, projectID)
}

func (s *service) UpdateEvent(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error) {
	event, err := s.repository.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Color != nil {
		event.Color = *req.Color
	}
	if req.SortKey != nil {
		event.SortKey = *req.SortKey
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.GraphData != nil {
		event.GraphData = req.GraphData
	}

	if err := s.repository.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) DeleteEvent(ctx context.Context, id int64) error {
	return s.repository.DeleteEvent(ctx, id)
}

func (s *service) UpsertEventNode(ctx context.Context, eventID int64, req UpsertEventNodeRequest) (*EventNode, error) {
	node := &EventNode{
		EventID:     eventID,
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Description: req.Description,
	}
	if err := s.repository.UpsertEventNode(ctx, node); err != nil {
		return nil, err
	}
	return node, nil
}

func (s *service) ListEventNodes(ctx context.Context, eventID int64) ([]*EventNode, error) {
	return s.repository.ListEventNodes(ctx, eventID)
}

// storeAsset performs the shared write → classify → extract → persist
// sequence. The byte write is not transactional with the row insert: a
// repository failure after the write leaves an orphaned file behind.
func (s *service) storeAsset(ctx context.Context, key string, owner AssetOwner, req UploadRequest, favorite bool) (*Asset, error) {
	if err := s.store.Upload(ctx, key, req.Reader); err != nil {
		return nil, &StorageError{Key: key, Op: "upload", Err: err}
	}

	fileType := ClassifyFileType(req.ContentType, req.FileName)

	var meta map[string]any
	if fileType == FileTypeImage {
		meta = s.extractMetadata(ctx, key)
	}

	asset := &Asset{
		Owner:      owner,
		FilePath:   key,
		FileType:   fileType,
		Metadata:   meta,
		IsFavorite: favorite,
	}

	err := s.repository.InTx(ctx, func(tx Repository) error {
		return tx.CreateAsset(ctx, asset)
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}

// extractMetadata reads the stored file back and runs extraction. Failures
// degrade to an empty map and never fail the upload.
func (s *service) extractMetadata(ctx context.Context, key string) map[string]any {
	if s.extractor == nil {
		return map[string]any{}
	}

	reader, err := s.store.Download(ctx, key)
	if err != nil {
		return map[string]any{}
	}
	defer reader.Close()

	return s.extractor.Extract(reader)
}

// removeFile deletes a physical file according to the configured policy.
// Under the default log-and-continue policy a failure is recorded and
// swallowed so row deletion can proceed.
func (s *service) removeFile(ctx context.Context, key string, report *CleanupReport) error {
	if err := s.store.Delete(ctx, key); err != nil {
		report.Failures = append(report.Failures, CleanupFailure{Key: key, Err: err})
		s.logger.Warn("failed to delete asset file", "key", key, "error", err)
		if s.deletePolicy == DeleteFailFast {
			return &StorageError{Key: key, Op: "delete", Err: err}
		}
		return nil
	}
	report.Deleted = append(report.Deleted, key)
	return nil
}

// removeTree wipes a storage subtree according to the configured policy.
func (s *service) removeTree(ctx context.Context, prefix string, report *CleanupReport) error {
	if err := s.store.DeleteTree(ctx, prefix); err != nil {
		report.Failures = append(report.Failures, CleanupFailure{Key: prefix, Err: err})
		s.logger.Warn("failed to delete storage subtree", "prefix", prefix, "error", err)
		if s.deletePolicy == DeleteFailFast {
			return &StorageError{Key: prefix, Op: "delete_tree", Err: err}
		}
		return nil
	}
	report.Deleted = append(report.Deleted, prefix+"/")
	return nil
}

// deleteOwnedAssetsTx removes the files referenced by an owner's asset rows,
// then the rows themselves. Rows are removed regardless of whether the
// underlying file existed.
func (s *service) deleteOwnedAssetsTx(ctx context.Context, tx Repository, owner AssetOwner, report *CleanupReport) error {
	assets, err := tx.ListAssetsByOwner(ctx, owner)
	if err != nil {
		return err
	}

	for _, asset := range assets {
		if asset.FilePath != "" {
			if err := s.removeFile(ctx, asset.FilePath, report); err != nil {
				return err
			}
		}
		if err := tx.DeleteAsset(ctx, asset.ID); err != nil {
			return &AssetError{AssetID: asset.ID, Op: "delete", Err: err}
		}
	}
	return nil
}

func (s *service) deleteItemTx(ctx context.Context, tx Repository, itemID int64, report *CleanupReport) error {
	if err := s.deleteOwnedAssetsTx(ctx, tx, ItemOwner(itemID), report); err != nil {
		return err
	}
	return tx.DeleteItem(ctx, itemID)
}

func (s *service) deleteShotTx(ctx context.Context, tx Repository, shot *Shot, report *CleanupReport) error {
	if err := s.deleteOwnedAssetsTx(ctx, tx, ShotOwner(shot.ID), report); err != nil {
		return err
	}
	if shot.VideoPath != "" {
		if err := s.removeFile(ctx, shot.VideoPath, report); err != nil {
			return err
		}
	}
	return tx.DeleteShot(ctx, shot.ID)
}

func (s *service) deleteSceneTx(ctx context.Context, tx Repository, scene *Scene, projectName string, report *CleanupReport) error {
	shots, err := tx.ListShots(ctx, scene.ID)
	if err != nil {
		return err
	}
	for _, shot := range shots {
		if err := s.deleteShotTx(ctx, tx, shot, report); err != nil {
			return err
		}
	}

	if err := tx.DeleteScene(ctx, scene.ID); err != nil {
		return err
	}

	// Bulk subtree wipe: catches files under the scene directory that never
	// had an asset row.
	return s.removeTree(ctx, SceneDir(projectName, scene.EpisodeID, scene.ID), report)
}

func (s *service) deleteEpisodeTx(ctx context.Context, tx Repository, episode *Episode, projectName string, report *CleanupReport) error {
	scenes, err := tx.ListScenes(ctx, episode.ID)
	if err != nil {
		return err
	}
	for _, scene := range scenes {
		if err := s.deleteSceneTx(ctx, tx, scene, projectName, report); err != nil {
			return err
		}
	}
	return tx.DeleteEpisode(ctx, episode.ID)
}
