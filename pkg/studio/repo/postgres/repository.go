// Package postgres provides a PostgreSQL implementation of studio.Repository
// using pgx. The schema lives under migrations/postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storyforge/studio/pkg/studio"
)

// DBTX is an interface that allows us to use either a connection pool or a
// transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements studio.Repository using PostgreSQL
type Repository struct {
	db   DBTX
	pool *pgxpool.Pool
}

// NewWithPool creates a new PostgreSQL repository with a connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool, pool: pool}
}

func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "asset_items") {
				return studio.ErrDuplicateItemName
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// InTx runs fn against a repository bound to a single transaction. A nested
// call from inside a transaction reuses the ambient transaction.
func (r *Repository) InTx(ctx context.Context, fn func(studio.Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Repository{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Project operations

func (r *Repository) CreateProject(ctx context.Context, project *studio.Project) error {
	query := `
		INSERT INTO projects (name, description, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, project.Name, project.Description).
		Scan(&project.ID, &project.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create project", err)
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, id int64) (*studio.Project, error) {
	query := `
		SELECT id, name, description, created_at
		FROM projects WHERE id = $1`

	var project studio.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.Description, &project.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, studio.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *Repository) ListProjects(ctx context.Context) ([]*studio.Project, error) {
	query := `
		SELECT id, name, description, created_at
		FROM projects ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*studio.Project
	for rows.Next() {
		var project studio.Project
		if err := rows.Scan(&project.ID, &project.Name, &project.Description, &project.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, &project)
	}
	return projects, rows.Err()
}

func (r *Repository) UpdateProject(ctx context.Context, project *studio.Project) error {
	query := `UPDATE projects SET name = $2, description = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, project.ID, project.Name, project.Description)
	if err != nil {
		return r.handlePostgresError("update project", err)
	}
	if tag.RowsAffected() == 0 {
		return studio.ErrProjectNotFound
	}
	return nil
}

func (r *Repository) DeleteProject(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete project", err)
	}
	return nil
}

// Episode operations

func (r *Repository) CreateEpisode(ctx context.Context, episode *studio.Episode) error {
	query := `
		INSERT INTO episodes (project_id, title, position)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRow(ctx, query, episode.ProjectID, episode.Title, episode.Position).
		Scan(&episode.ID)
	if err != nil {
		return r.handlePostgresError("create episode", err)
	}
	return nil
}

func (r *Repository) GetEpisode(ctx context.Context, id int64) (*studio.Episode, error) {
	query := `
		SELECT id, project_id, title, position
		FROM episodes WHERE id = $1`

	var episode studio.Episode
	err := r.db.QueryRow(ctx, query, id).Scan(
		&episode.ID, &episode.ProjectID, &episode.Title, &episode.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, studio.ErrEpisodeNotFound
		}
		return nil, err
	}
	return &episode, nil
}

func (r *Repository) ListEpisodes(ctx context.Context, projectID int64) ([]*studio.Episode, error) {
	query := `
		SELECT id, project_id, title, position
		FROM episodes WHERE project_id = $1
		ORDER BY position, id`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []*studio.Episode
	for rows.Next() {
		var episode studio.Episode
		if err := rows.Scan(&episode.ID, &episode.ProjectID, &episode.Title, &episode.Position); err != nil {
			return nil, err
		}
		episodes = append(episodes, &episode)
	}
	return episodes, rows.Err()
}

func (r *Repository) UpdateEpisode(ctx context.Context, episode *studio.Episode) error {
	query := `UPDATE episodes SET title = $2, position = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, episode.ID, episode.Title, episode.Position)
	if err != nil {
		return r.handlePostgresError("update episode", err)
	}
	if tag.RowsAffected() == 0 {
		return studio.ErrEpisodeNotFound
	}
	return nil
}

func (r *Repository) DeleteEpisode(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM episodes WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete episode", err)
	}
	return nil
}

// Scene operations

func (r *Repository) CreateScene(ctx context.Context, scene *studio.Scene) error {
	query := `
		INSERT INTO scenes (episode_id, sequence_number, title)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRow(ctx, query, scene.EpisodeID, scene.SequenceNumber, scene.Title).
		Scan(&scene.ID)
	if err != nil {
		return r.handlePostgresError("create scene", err)
	}
	return nil
}

func (r *Repository) GetScene(ctx context.Context, id int64) (*studio.Scene, error) {
	query := `
		SELECT id, episode_id, sequence_number, title
		FROM scenes WHERE id = $1`

	var scene studio.Scene
	err := r.db.QueryRow(ctx, query, id).Scan(
		&scene.ID, &scene.EpisodeID, &scene.SequenceNumber, &scene.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, studio.ErrSceneNotFound
		}
		return nil, err
	}
	return &scene, nil
}

func (r *Repository) ListScenes(ctx context.Context, episodeID int64) ([]*studio.Scene, error) {
	query := `
		SELECT id, episode_id, sequence_number, title
		FROM scenes WHERE episode_id = $1
		ORDER BY sequence_number, id`

	rows, err := r.db.Query(ctx, query, episodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenes []*studio.Scene
	for rows.Next() {
		var scene studio.Scene
		if err := rows.Scan(&scene.ID, &scene.EpisodeID, &scene.SequenceNumber, &scene.Title); err != nil {
			return nil, err
		}
		scenes = append(scenes, &scene)
	}
	return scenes, rows.Err()
}

func (r *Repository) UpdateScene(ctx context.Context, scene *studio.Scene) error {
	query := `UPDATE scenes SET sequence_number = $2, title = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, scene.ID, scene.SequenceNumber, scene.Title)
	if err != nil {
		return r.handlePostgresError("update scene", err)
	}
	if tag.RowsAffected() == 0 {
		return studio.ErrSceneNotFound
	}
	return nil
}

func (r *Repository) DeleteScene(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM scenes WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete scene", err)
	}
	return nil
}

// Shot operations

func (r *Repository) CreateShot(ctx context.Context, shot *studio.Shot) error {
	query := `
		INSERT INTO shots (
			scene_id, sequence_number, title, action_text, dialogue,
			prompt, negative_prompt, selected_asset_id, status, video_path
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		shot.SceneID, shot.SequenceNumber, shot.Title, shot.ActionText,
		shot.Dialogue, shot.Prompt, shot.NegativePrompt, shot.SelectedAssetID,
		shot.Status, shot.VideoPath).
		Scan(&shot.ID)
	if err != nil {
		return r.handlePostgresError("create shot", err)
	}
	return nil
}

func (r *Repository) GetShot(ctx context.Context, id int64) (*studio.Shot, error) {
	query := `
		SELECT id, scene_id, sequence_number, title, action_text, dialogue,
		       prompt, negative_prompt, selected_asset_id, status, video_path
		FROM shots WHERE id = $1`

	var shot studio.Shot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&shot.ID, &shot.SceneID, &shot.SequenceNumber, &shot.Title,
		&shot.ActionText, &shot.Dialogue, &shot.Prompt, &shot.NegativePrompt,
		&shot.SelectedAssetID, &shot.Status, &shot.VideoPath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, studio.ErrShotNotFound
		}
		return nil, err
	}
	return &shot, nil
}

func (r *Repository) ListShots(ctx context.Context, sceneID int64) ([]*studio.Shot, error) {
	query := `
		SELECT id, scene_id, sequence_number, title, action_text, dialogue,
		       prompt, negative_prompt, selected_asset_id, status, video_path
		FROM shots WHERE scene_id = $1
		ORDER BY sequence_number, id`

	rows, err := r.db.Query(ctx, query, sceneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shots []*studio.Shot
	for rows.Next() {
		var shot studio.Shot
		if err := rows.Scan(
			&shot.ID, &shot.SceneID, &shot.SequenceNumber, &shot.Title,
			&shot.ActionText, &shot.Dialogue, &shot.Prompt, &shot.NegativePrompt,
			&shot.SelectedAssetID, &shot.Status, &shot.VideoPath); err != nil {
			return nil, err
		}
		shots = append(shots, &shot)
	}
	return shots, rows.Err()
}

func (r *Repository) UpdateShot(ctx context.Context, shot *studio.Shot) error {
	query := `
		UPDATE shots SET
			sequence_number = $2, title = $3, action_text = $4, dialogue = $5,
			prompt = $6, negative_prompt = $7, selected_asset_id = $8,
			status = $9, video_path = $10
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		shot.ID, shot.SequenceNumber, shot.Title, shot.ActionText, shot.Dialogue,
		shot.Prompt, shot.NegativePrompt, shot.SelectedAssetID, shot.Status,
		shot.VideoPath)
	if err != nil {
		return r.handlePostgresError("update shot", err)
	}
	if tag.RowsAffected() == 0 {
		return studio.ErrShotNotFound
	}
	return nil
}

func (r *Repository) DeleteShot(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM shots WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete shot", err)
	}
	return nil
}

// GetShotChain resolves the shot and its ancestors in a single joined query.
func (r *Repository) GetShotChain(ctx context.Context, shotID int64) (*studio.ShotChain, error) {
	query := `
		SELECT t.id, t.scene_id, t.sequence_number, t.title, t.action_text,
		       t.dialogue, t.prompt, t.negative_prompt, t.selected_asset_id,
		       t.status, t.video_path,
		       s.id, s.episode_id, s.sequence_number, s.title,
		       e.id, e.project_id, e.title, e.position,
		       p.id, p.name, p.description, p.created_at
		FROM shots t
		JOIN scenes s ON s.id = t.scene_id
		JOIN episodes e ON e.id = s.episode_id
		JOIN projects p ON p.id = e.project_id
		WHERE t.id = $1`

	var (
		shot    studio.Shot
		scene   studio.Scene
		episode studio.Episode
		project studio.Project
	)
	err := r.db.QueryRow(ctx, query, shotID).Scan(
		&shot.ID, &shot.SceneID, &shot.SequenceNumber, &shot.Title,
		&shot.ActionText, &shot.Dialogue, &shot.Prompt, &shot.NegativePrompt,
		&shot.SelectedAssetID, &shot.Status, &shot.VideoPath,
		&scene.ID, &scene.EpisodeID, &scene.SequenceNumber, &scene.Title,
		&episode.ID, &episode.ProjectID, &episode.Title, &episode.Position,
		&project.ID, &project.Name, &project.Description, &project.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, studio.ErrShotNotFound
		}
		return nil, err
	}

	return &studio.ShotChain{
		Shot:    &shot,
		Scene:   &scene,
		Episode: &episode,
		Project: &project,
	}, nil
}

// Asset item operations

func (r *Repository) CreateItem(ctx context.Context, item *studio.AssetItem) error {
	query := `
		INSERT INTO asset_items (
			project_id, name, description, base_prompt, negative_prompt,
			category, avatar_asset_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		item.ProjectID, item.Name, item.Description, item.BasePrompt,
		item.NegativePrompt, item.Category, item.AvatarAssetID).
		Scan(&item.ID)
	if err != nil {
		return r.handlePostgresError("create item", err)
	}
	return nil
}

func (r *Repository) GetItem(ctx context.Context, id int64) (*studio.AssetItem, error) {
	query := `
		SELECT id, project_id, name, description, base_prompt, negative_prompt,
		       category, avatar_asset_id
		FROM asset_items WHERE id = $1`

	var item studio.AssetItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.ProjectID, &item.Name, &item.Description,
		&item.BasePrompt, &item.NegativePrompt, &item.Category, &item.AvatarAssetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, studio.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *Repository) GetItemByName(ctx context.Context, projectID int64, name string) (*studio.AssetItem, error) {
	query := `
		SELECT id, project_id, name, description, base_prompt, negative_prompt,
		       category, avatar_asset_id
		FROM asset_items WHERE project_id = $1 AND LOWER(name) = LOWER($2)`

	var item studio.AssetItem
	err := r.db.QueryRow(ctx, query, projectID, name).Scan(
		&item.ID, &item.ProjectID, &item.Name, &item.Description,
		&item.BasePrompt, &item.NegativePrompt, &item.Category, &item.AvatarAssetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, studio.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *Repository) ListItems(ctx context.Context, projectID int64) ([]*studio.AssetItem, error) {
	query := `
		SELECT id, project_id, name, description, base_prompt, negative_prompt,
		       category, avatar_asset_id
		FROM asset_items WHERE project_id = $1
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*studio.AssetItem
	for rows.Next() {
		var item studio.AssetItem
		if err := rows.Scan(
			&item.ID, &item.ProjectID, &item.Name, &item.Description,
			&item.BasePrompt, &item.NegativePrompt, &item.Category,
			&item.AvatarAssetID); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *Repository) UpdateItem(ctx context.Context, item *studio.AssetItem) error {
	query := `
		UPDATE asset_items SET
			name = $2, description = $3, base_prompt = $4,
			negative_prompt = $5, category = $6, avatar_asset_id = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.BasePrompt,
		item.NegativePrompt, item.Category, item.AvatarAssetID)
	if err != nil {
		return r.handlePostgresError("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return studio.ErrItemNotFound
	}
	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM asset_items WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete item", err)
	}
	return nil
}

// Asset operations

func (r *Repository) CreateAsset(ctx context.Context, asset *studio.Asset) error {
	query := `
		INSERT INTO assets (
			owner_kind, owner_id, file_path, file_type, metadata,
			is_favorite, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		asset.Owner.Kind, ownerID(asset.Owner), asset.FilePath,
		asset.FileType, asset.Metadata, asset.IsFavorite).
		Scan(&asset.ID, &asset.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create asset", err)
	}
	return nil
}

func (r *Repository) GetAsset(ctx context.Context, id int64) (*studio.Asset, error) {
	query := `
		SELECT id, owner_kind, owner_id, file_path, file_type, metadata,
		       is_favorite, created_at
		FROM assets WHERE id = $1`

	asset, err := scanAsset(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, studio.ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (r *Repository) ListAssetsByOwner(ctx context.Context, owner studio.AssetOwner) ([]*studio.Asset, error) {
	query := `
		SELECT id, owner_kind, owner_id, file_path, file_type, metadata,
		       is_favorite, created_at
		FROM assets WHERE owner_kind = $1 AND owner_id IS NOT DISTINCT FROM $2
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, owner.Kind, ownerID(owner))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*studio.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *Repository) UpdateAsset(ctx context.Context, asset *studio.Asset) error {
	query := `
		UPDATE assets SET
			owner_kind = $2, owner_id = $3, file_path = $4, file_type = $5,
			metadata = $6, is_favorite = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		asset.ID, asset.Owner.Kind, ownerID(asset.Owner), asset.FilePath,
		asset.FileType, asset.Metadata, asset.IsFavorite)
	if err != nil {
		return r.handlePostgresError("update asset", err)
	}
	if tag.RowsAffected() == 0 {
		return studio.ErrAssetNotFound
	}
	return nil
}

func (r *Repository) DeleteAsset(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete asset", err)
	}
	return nil
}

// Event overlay operations

func (r *Repository) CreateEvent(ctx context.Context, event *studio.Event) error {
	query := `
		INSERT INTO events (project_id, name, color, sort_key, description, graph_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		event.ProjectID, event.Name, event.Color, event.SortKey,
		event.Description, event.GraphData).
		Scan(&event.ID)
	if err != nil {
		return r.handlePostgresError("create event", err)
	}
	return nil
}

func (r *Repository) GetEvent(ctx context.Context, id int64) (*studio.Event, error) {
	query := `
		SELECT id, project_id, name, color, sort_key, description, graph_data
		FROM events WHERE id = $1`

	var event studio.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID, &event.ProjectID, &event.Name, &event.Color,
		&event.SortKey, &event.Description, &event.GraphData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, studio.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *Repository) ListEvents(ctx context.Context, projectID int64) ([]*studio.Event, error) {
	query := `
		SELECT id, project_id, name, color, sort_key, description, graph_data
		FROM events WHERE project_id = $1
		ORDER BY sort_key, id`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*studio.Event
	for rows.Next() {
		var event studio.Event
		if err := rows.Scan(
			&event.ID, &event.ProjectID, &event.Name, &event.Color,
			&event.SortKey, &event.Description, &event.GraphData); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}

func (r *Repository) UpdateEvent(ctx context.Context, event *studio.Event) error {
	query := `
		UPDATE events SET
			name = $2, color = $3, sort_key = $4, description = $5,
			graph_data = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		event.ID, event.Name, event.Color, event.SortKey, event.Description,
		event.GraphData)
	if err != nil {
		return r.handlePostgresError("update event", err)
	}
	if tag.RowsAffected() == 0 {
		return studio.ErrEventNotFound
	}
	return nil
}

func (r *Repository) DeleteEvent(ctx context.Context, id int64) error {
	// event_nodes rows go with the event via ON DELETE CASCADE
	_, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete event", err)
	}
	return nil
}

func (r *Repository) UpsertEventNode(ctx context.Context, node *studio.EventNode) error {
	query := `
		INSERT INTO event_nodes (event_id, target_type, target_id, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, target_type, target_id) DO UPDATE SET
			description = EXCLUDED.description
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		node.EventID, node.TargetType, node.TargetID, node.Description).
		Scan(&node.ID)
	if err != nil {
		return r.handlePostgresError("upsert event node", err)
	}
	return nil
}

func (r *Repository) ListEventNodes(ctx context.Context, eventID int64) ([]*studio.EventNode, error) {
	query := `
		SELECT id, event_id, target_type, target_id, description
		FROM event_nodes WHERE event_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []*studio.EventNode
	for rows.Next() {
		var node studio.EventNode
		if err := rows.Scan(
			&node.ID, &node.EventID, &node.TargetType, &node.TargetID,
			&node.Description); err != nil {
			return nil, err
		}
		nodes = append(nodes, &node)
	}
	return nodes, rows.Err()
}

// ownerID maps the ownership union to a nullable column value.
func ownerID(owner studio.AssetOwner) *int64 {
	if owner.Kind == studio.OwnerKindNone {
		return nil
	}
	id := owner.ID
	return &id
}

func scanAsset(row pgx.Row) (*studio.Asset, error) {
	var (
		asset studio.Asset
		kind  string
		ownID *int64
	)
	err := row.Scan(
		&asset.ID, &kind, &ownID, &asset.FilePath, &asset.FileType,
		&asset.Metadata, &asset.IsFavorite, &asset.CreatedAt)
	if err != nil {
		return nil, err
	}

	asset.Owner = studio.AssetOwner{Kind: studio.OwnerKind(kind)}
	if ownID != nil {
		asset.Owner.ID = *ownID
	}
	return &asset, nil
}
