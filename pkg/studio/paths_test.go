package studio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemDir(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
	}{
		{"persona", CategoryPersona, "MyShow/characters"},
		{"persona visual", CategoryPersonaVisual, "MyShow/characters"},
		{"persona visual mixed case", "Persona_Visual", "MyShow/characters"},
		{"background", CategoryBackground, "MyShow/backgrounds"},
		{"custom category verbatim", "props", "MyShow/props"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemDir("MyShow", tt.category))
		})
	}
}

func TestItemDirDeterministic(t *testing.T) {
	first := ItemDir("Show", CategoryPersona)
	second := ItemDir("Show", CategoryPersona)
	assert.Equal(t, first, second)
}

func TestShotDirs(t *testing.T) {
	assets := ShotAssetsDir("Show", 2, 5, 9)
	video := ShotVideoDir("Show", 2, 5, 9)

	assert.Equal(t, "Show/storyboard/episode_2/scene_5/shot_9/assets", assets)
	assert.Equal(t, "Show/storyboard/episode_2/scene_5/shot_9/video", video)
}

func TestShotDirsNestUnderSceneDir(t *testing.T) {
	scene := SceneDir("Show", 2, 5)
	require.Equal(t, "Show/storyboard/episode_2/scene_5", scene)

	// Deleting the scene directory must take the shot directories with it.
	assert.True(t, strings.HasPrefix(ShotAssetsDir("Show", 2, 5, 9), scene+"/"))
	assert.True(t, strings.HasPrefix(ShotVideoDir("Show", 2, 5, 9), scene+"/"))
}

func TestLegacyShotVideoPath(t *testing.T) {
	assert.Equal(t, "Show/videos/shot_9_video.mp4", LegacyShotVideoPath("Show", 9, ".mp4"))
}

func TestValidateFilename(t *testing.T) {
	valid := []string{"image.png", "scene final.webp", "clip-01.mp4", "notes.txt"}
	for _, name := range valid {
		assert.NoError(t, ValidateFilename(name), name)
	}

	invalid := []string{"", "..", "../escape.png", "a/b.png", `a\b.png`, "..\\up.png"}
	for _, name := range invalid {
		err := ValidateFilename(name)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrInvalidFilename, name)
	}
}

func TestClassifyFileType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        FileType
	}{
		{"image content type", "image/png", "whatever.bin", FileTypeImage},
		{"video content type", "video/mp4", "clip", FileTypeVideo},
		{"text content type", "text/plain", "readme", FileTypeText},
		{"extension fallback image", "application/octet-stream", "frame.WEBP", FileTypeImage},
		{"extension fallback video", "", "clip.mov", FileTypeVideo},
		{"extension fallback text", "", "notes.md", FileTypeText},
		{"unknown", "application/octet-stream", "blob.bin", FileTypeOther},
		{"no extension no type", "", "blob", FileTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFileType(tt.contentType, tt.filename))
		})
	}
}
