package studio

import (
	"fmt"
	"path"
	"strings"
)

// Path resolution is pure: directories are derived from immutable ids plus
// the owner's category and project name at resolution time. A later project
// rename does not move files; the relative path stored on the asset record
// stays authoritative. All emitted separators are forward slashes regardless
// of host filesystem.

// ItemDir returns the storage directory for a persistent item's assets:
// {project}/{characters|backgrounds|<category>}.
func ItemDir(projectName, category string) string {
	return path.Join(projectName, CategoryFolder(category))
}

// ShotAssetsDir returns the directory for a shot's generic uploads:
// {project}/storyboard/episode_{eid}/scene_{sid}/shot_{tid}/assets.
func ShotAssetsDir(projectName string, episodeID, sceneID, shotID int64) string {
	return path.Join(shotDir(projectName, episodeID, sceneID, shotID), "assets")
}

// ShotVideoDir returns the directory for a shot's designated video slot.
func ShotVideoDir(projectName string, episodeID, sceneID, shotID int64) string {
	return path.Join(shotDir(projectName, episodeID, sceneID, shotID), "video")
}

// SceneDir returns the root of a scene's storage subtree. Deleting a scene
// wipes everything under this directory, whether or not an asset row exists.
func SceneDir(projectName string, episodeID, sceneID int64) string {
	return path.Join(projectName, "storyboard",
		fmt.Sprintf("episode_%d", episodeID),
		fmt.Sprintf("scene_%d", sceneID))
}

func shotDir(projectName string, episodeID, sceneID, shotID int64) string {
	return path.Join(SceneDir(projectName, episodeID, sceneID), fmt.Sprintf("shot_%d", shotID))
}

// LegacyShotVideoPath returns the pre-storyboard-layout video location,
// {project}/videos/shot_{tid}_video{ext}. No current operation writes or
// resolves this layout: records from it carry the full relative path, which
// delete and serve use verbatim. The function documents the old scheme for
// migration tooling.
func LegacyShotVideoPath(projectName string, shotID int64, ext string) string {
	return path.Join(projectName, "videos", fmt.Sprintf("shot_%d_video%s", shotID, ext))
}

// ValidateFilename rejects names that could escape the resolved directory.
// Upload filenames are otherwise taken verbatim.
func ValidateFilename(name string) error {
	if name == "" ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) {
		return ErrInvalidFilename
	}
	return nil
}
