package studio

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrProjectNotFound indicates a project was not found
	ErrProjectNotFound = errors.New("project not found")

	// ErrEpisodeNotFound indicates an episode was not found
	ErrEpisodeNotFound = errors.New("episode not found")

	// ErrSceneNotFound indicates a scene was not found
	ErrSceneNotFound = errors.New("scene not found")

	// ErrShotNotFound indicates a shot was not found
	ErrShotNotFound = errors.New("shot not found")

	// ErrItemNotFound indicates an asset item was not found
	ErrItemNotFound = errors.New("asset item not found")

	// ErrAssetNotFound indicates an asset record was not found
	ErrAssetNotFound = errors.New("asset not found")

	// ErrEventNotFound indicates an event was not found
	ErrEventNotFound = errors.New("event not found")

	// ErrFileNotFound indicates the physical file was not found in storage
	ErrFileNotFound = errors.New("file not found")

	// ErrDuplicateItemName indicates an item with the same name already exists in the project
	ErrDuplicateItemName = errors.New("asset item name already exists in project")

	// ErrInvalidFilename indicates an upload filename failed traversal checks
	ErrInvalidFilename = errors.New("invalid filename")
)

// AssetError represents an error related to asset lifecycle operations
type AssetError struct {
	AssetID int64
	Op      string
	Err     error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset operation %s failed for asset %d: %v", e.Op, e.AssetID, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to physical storage operations
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
