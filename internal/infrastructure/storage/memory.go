package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	listingapp "github.com/erp/storefront/internal/application/listing"
)

// MemoryObjectStorage keeps blobs in memory. Used for tests and local
// development without an S3 backend.
type MemoryObjectStorage struct {
	// BaseURL is the base for generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectStorage creates an empty in-memory store.
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure MemoryObjectStorage implements the listing service's storage port
var _ listingapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// Upload stores image bytes under the given key.
func (s *MemoryObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	blob := make([]byte, len(data))
	copy(blob, data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = blob
	return nil
}

// Download fetches the bytes stored under the given key.
func (s *MemoryObjectStorage) Download(_ context.Context, storageKey string) ([]byte, error) {
	if storageKey == "" {
		return nil, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.objects[storageKey]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", storageKey)
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// DeleteObject deletes an object. Deleting a missing key succeeds.
func (s *MemoryObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists checks if an object exists.
func (s *MemoryObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// GenerateDownloadURL generates a fake time-limited URL.
func (s *MemoryObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// Len returns the number of stored objects.
func (s *MemoryObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
