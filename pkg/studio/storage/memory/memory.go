package memory

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/storyforge/studio/pkg/studio"
)

// Store is an in-memory implementation of the studio.BlobStore interface,
// used in tests and development.
type Store struct {
	mu    sync.RWMutex
	files map[string][]byte
	times map[string]time.Time
}

// New creates a new in-memory storage backend
func New() *Store {
	return &Store{
		files: make(map[string][]byte),
		times: make(map[string]time.Time),
	}
}

func (s *Store) Upload(ctx context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	s.times[key] = time.Now()
	return nil
}

func (s *Store) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.files[key]
	if !exists {
		return nil, studio.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, key)
	delete(s.times, key)
	return nil
}

func (s *Store) DeleteTree(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := strings.TrimSuffix(prefix, "/") + "/"
	for key := range s.files {
		if strings.HasPrefix(key, p) {
			delete(s.files, key)
			delete(s.times, key)
		}
	}
	return nil
}

func (s *Store) Meta(ctx context.Context, key string) (*studio.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.files[key]
	if !exists {
		return nil, studio.ErrFileNotFound
	}

	return &studio.FileInfo{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: http.DetectContentType(data),
		UpdatedAt:   s.times[key],
	}, nil
}

// Keys returns all stored keys in sorted order. Test support.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.files))
	for key := range s.files {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
