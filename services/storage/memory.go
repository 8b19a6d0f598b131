package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryPhotoStore keeps uploads in process. It backs memory mode and tests.
type MemoryPhotoStore struct {
	mu      sync.Mutex
	baseURL string
	objects map[string][]byte
	order   []string

	// FailAfter makes every upload beyond the first N fail. Negative disables it.
	FailAfter int
}

func NewMemoryPhotoStore(baseURL string) *MemoryPhotoStore {
	return &MemoryPhotoStore{baseURL: baseURL, objects: make(map[string][]byte), FailAfter: -1}
}

func (s *MemoryPhotoStore) Upload(_ context.Context, objectPath, _ string, data io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAfter >= 0 && len(s.order) >= s.FailAfter {
		return "", fmt.Errorf("MemoryPhotoStore: upload of %s refused", objectPath)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", fmt.Errorf("MemoryPhotoStore: failed to read %s: %w", objectPath, err)
	}
	s.objects[objectPath] = buf.Bytes()
	s.order = append(s.order, objectPath)
	return s.baseURL + "/" + objectPath, nil
}

// Paths returns stored object paths in upload order.
func (s *MemoryPhotoStore) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}
