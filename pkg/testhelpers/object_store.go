package testhelpers

import (
	"context"
	"fmt"
	"net/url"
	"sync"
)

// MemoryObjectStore signs fake URLs and tracks which objects exist.
type MemoryObjectStore struct {
	BaseURL     string
	UploadErr   error
	DownloadErr error
	ExistsErr   error

	mu      sync.Mutex
	objects map[string]bool
	signed  int
}

// NewMemoryObjectStore returns a store signing URLs under baseURL.
func NewMemoryObjectStore(baseURL string) *MemoryObjectStore {
	return &MemoryObjectStore{BaseURL: baseURL, objects: map[string]bool{}}
}

// Put marks the object as uploaded.
func (s *MemoryObjectStore) Put(storagePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storagePath] = true
}

// DownloadsSigned returns how many download URLs were signed.
func (s *MemoryObjectStore) DownloadsSigned() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signed
}

func (s *MemoryObjectStore) PresignUpload(_ context.Context, storagePath, contentType string) (string, error) {
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	return fmt.Sprintf("%s/upload/%s?content-type=%s", s.BaseURL, storagePath, url.QueryEscape(contentType)), nil
}

func (s *MemoryObjectStore) PresignDownload(_ context.Context, storagePath string) (string, error) {
	if s.DownloadErr != nil {
		return "", s.DownloadErr
	}
	s.mu.Lock()
	s.signed++
	s.mu.Unlock()
	return fmt.Sprintf("%s/object/%s?signature=test", s.BaseURL, storagePath), nil
}

func (s *MemoryObjectStore) Exists(_ context.Context, storagePath string) (bool, error) {
	if s.ExistsErr != nil {
		return false, s.ExistsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[storagePath], nil
}
