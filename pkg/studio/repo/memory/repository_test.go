package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyforge/studio/pkg/studio"
)

func seedChain(t *testing.T, repo *Repository) (*studio.Project, *studio.Episode, *studio.Scene, *studio.Shot) {
	t.Helper()
	ctx := context.Background()

	project := &studio.Project{Name: "Show"}
	require.NoError(t, repo.CreateProject(ctx, project))

	episode := &studio.Episode{ProjectID: project.ID, Title: "Ep 1"}
	require.NoError(t, repo.CreateEpisode(ctx, episode))

	scene := &studio.Scene{EpisodeID: episode.ID, SequenceNumber: 1, Title: "Scene 1"}
	require.NoError(t, repo.CreateScene(ctx, scene))

	shot := &studio.Shot{SceneID: scene.ID, SequenceNumber: 1}
	require.NoError(t, repo.CreateShot(ctx, shot))

	return project, episode, scene, shot
}

func TestProjectCRUD(t *testing.T) {
	repo := New()
	ctx := context.Background()

	project := &studio.Project{Name: "Show", Description: "desc"}
	require.NoError(t, repo.CreateProject(ctx, project))
	require.NotZero(t, project.ID)
	assert.False(t, project.CreatedAt.IsZero())

	got, err := repo.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Show", got.Name)

	// Mutating the returned copy must not leak into the store.
	got.Name = "Mutated"
	again, err := repo.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Show", again.Name)

	got.Name = "Renamed"
	require.NoError(t, repo.UpdateProject(ctx, got))
	again, err = repo.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)

	require.NoError(t, repo.DeleteProject(ctx, project.ID))
	_, err = repo.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, studio.ErrProjectNotFound)
}

func TestCreateChildRequiresParent(t *testing.T) {
	repo := New()
	ctx := context.Background()

	err := repo.CreateEpisode(ctx, &studio.Episode{ProjectID: 42})
	assert.ErrorIs(t, err, studio.ErrProjectNotFound)

	err = repo.CreateScene(ctx, &studio.Scene{EpisodeID: 42})
	assert.ErrorIs(t, err, studio.ErrEpisodeNotFound)

	err = repo.CreateShot(ctx, &studio.Shot{SceneID: 42})
	assert.ErrorIs(t, err, studio.ErrSceneNotFound)

	err = repo.CreateItem(ctx, &studio.AssetItem{ProjectID: 42, Name: "x"})
	assert.ErrorIs(t, err, studio.ErrProjectNotFound)
}

func TestCreateDefaults(t *testing.T) {
	repo := New()
	ctx := context.Background()
	project, _, scene, _ := seedChain(t, repo)

	shot := &studio.Shot{SceneID: scene.ID}
	require.NoError(t, repo.CreateShot(ctx, shot))
	assert.Equal(t, "draft", shot.Status)

	item := &studio.AssetItem{ProjectID: project.ID, Name: "Hero"}
	require.NoError(t, repo.CreateItem(ctx, item))
	assert.Equal(t, studio.CategoryPersonaVisual, item.Category)

	event := &studio.Event{ProjectID: project.ID, Name: "Arc"}
	require.NoError(t, repo.CreateEvent(ctx, event))
	assert.Equal(t, "#3B82F6", event.Color)
}

func TestListScenesOrdered(t *testing.T) {
	repo := New()
	ctx := context.Background()
	_, episode, _, _ := seedChain(t, repo)

	third := &studio.Scene{EpisodeID: episode.ID, SequenceNumber: 3}
	second := &studio.Scene{EpisodeID: episode.ID, SequenceNumber: 2}
	require.NoError(t, repo.CreateScene(ctx, third))
	require.NoError(t, repo.CreateScene(ctx, second))

	scenes, err := repo.ListScenes(ctx, episode.ID)
	require.NoError(t, err)
	require.Len(t, scenes, 3)
	assert.Equal(t, 1, scenes[0].SequenceNumber)
	assert.Equal(t, 2, scenes[1].SequenceNumber)
	assert.Equal(t, 3, scenes[2].SequenceNumber)
}

func TestGetItemByNameCaseInsensitive(t *testing.T) {
	repo := New()
	ctx := context.Background()
	project, _, _, _ := seedChain(t, repo)

	item := &studio.AssetItem{ProjectID: project.ID, Name: "Hero"}
	require.NoError(t, repo.CreateItem(ctx, item))

	got, err := repo.GetItemByName(ctx, project.ID, "hero")
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = repo.GetItemByName(ctx, project.ID, "villain")
	assert.ErrorIs(t, err, studio.ErrItemNotFound)
}

func TestGetShotChain(t *testing.T) {
	repo := New()
	ctx := context.Background()
	project, episode, scene, shot := seedChain(t, repo)

	chain, err := repo.GetShotChain(ctx, shot.ID)
	require.NoError(t, err)
	assert.Equal(t, shot.ID, chain.Shot.ID)
	assert.Equal(t, scene.ID, chain.Scene.ID)
	assert.Equal(t, episode.ID, chain.Episode.ID)
	assert.Equal(t, project.ID, chain.Project.ID)

	_, err = repo.GetShotChain(ctx, 999)
	assert.ErrorIs(t, err, studio.ErrShotNotFound)
}

func TestAssetsByOwner(t *testing.T) {
	repo := New()
	ctx := context.Background()
	project, _, _, shot := seedChain(t, repo)

	item := &studio.AssetItem{ProjectID: project.ID, Name: "Hero"}
	require.NoError(t, repo.CreateItem(ctx, item))

	itemAsset := &studio.Asset{Owner: studio.ItemOwner(item.ID), FilePath: "a.png", FileType: studio.FileTypeImage}
	shotAsset := &studio.Asset{Owner: studio.ShotOwner(shot.ID), FilePath: "b.png", FileType: studio.FileTypeImage}
	unowned := &studio.Asset{Owner: studio.Unowned(), FilePath: "c.png", FileType: studio.FileTypeImage}
	require.NoError(t, repo.CreateAsset(ctx, itemAsset))
	require.NoError(t, repo.CreateAsset(ctx, shotAsset))
	require.NoError(t, repo.CreateAsset(ctx, unowned))

	got, err := repo.ListAssetsByOwner(ctx, studio.ItemOwner(item.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, itemAsset.ID, got[0].ID)

	got, err = repo.ListAssetsByOwner(ctx, studio.ShotOwner(shot.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, shotAsset.ID, got[0].ID)
}

func TestUpsertEventNode(t *testing.T) {
	repo := New()
	ctx := context.Background()
	project, _, scene, _ := seedChain(t, repo)

	event := &studio.Event{ProjectID: project.ID, Name: "Arc"}
	require.NoError(t, repo.CreateEvent(ctx, event))

	first := &studio.EventNode{EventID: event.ID, TargetType: "scene", TargetID: scene.ID, Description: "setup"}
	require.NoError(t, repo.UpsertEventNode(ctx, first))

	second := &studio.EventNode{EventID: event.ID, TargetType: "scene", TargetID: scene.ID, Description: "payoff"}
	require.NoError(t, repo.UpsertEventNode(ctx, second))
	assert.Equal(t, first.ID, second.ID, "upsert reuses the existing node")

	nodes, err := repo.ListEventNodes(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "payoff", nodes[0].Description)

	// Deleting the event removes its nodes.
	require.NoError(t, repo.DeleteEvent(ctx, event.ID))
	nodes, err = repo.ListEventNodes(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestInTx(t *testing.T) {
	repo := New()
	ctx := context.Background()
	project, _, _, _ := seedChain(t, repo)

	err := repo.InTx(ctx, func(tx studio.Repository) error {
		item := &studio.AssetItem{ProjectID: project.ID, Name: "Hero"}
		if err := tx.CreateItem(ctx, item); err != nil {
			return err
		}
		return tx.CreateAsset(ctx, &studio.Asset{Owner: studio.ItemOwner(item.ID), FilePath: "a.png"})
	})
	require.NoError(t, err)

	items, err := repo.ListItems(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	wantErr := errors.New("boom")
	err = repo.InTx(ctx, func(tx studio.Repository) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
