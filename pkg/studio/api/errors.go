package api

import (
	"errors"
	"net/http"

	"github.com/storyforge/studio/pkg/studio"
)

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, studio.ErrProjectNotFound),
		errors.Is(err, studio.ErrEpisodeNotFound),
		errors.Is(err, studio.ErrSceneNotFound),
		errors.Is(err, studio.ErrShotNotFound),
		errors.Is(err, studio.ErrItemNotFound),
		errors.Is(err, studio.ErrAssetNotFound),
		errors.Is(err, studio.ErrEventNotFound),
		errors.Is(err, studio.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, studio.ErrDuplicateItemName):
		return http.StatusConflict
	case errors.Is(err, studio.ErrInvalidFilename):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusForError(err))
}
