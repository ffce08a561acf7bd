package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
)

var _ ledgerapp.StatementArchive = (*MemoryStatementArchive)(nil)

// MemoryStatementArchive keeps statements in process memory. It backs the
// statement endpoint when object storage is disabled.
type MemoryStatementArchive struct {
	// BaseURL prefixes generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string]storedObject
}

type storedObject struct {
	data        []byte
	contentType string
}

// NewMemoryStatementArchive creates an empty archive
func NewMemoryStatementArchive(baseURL string) *MemoryStatementArchive {
	if baseURL == "" {
		baseURL = "memory://statements"
	}
	return &MemoryStatementArchive{
		BaseURL: baseURL,
		objects: make(map[string]storedObject),
	}
}

// Upload stores a copy of data under key
func (m *MemoryStatementArchive) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[key] = storedObject{data: buf, contentType: contentType}
	m.mu.Unlock()
	return nil
}

// GenerateDownloadURL returns a pseudo URL for a stored key
func (m *MemoryStatementArchive) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return "", time.Time{}, errors.New("statement not found: " + key)
	}

	expiresAt := time.Now().Add(expiresIn)
	return m.BaseURL + "/" + key + "?expires=" + expiresAt.UTC().Format(time.RFC3339), expiresAt, nil
}

// Get returns a stored object
func (m *MemoryStatementArchive) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.data, obj.contentType, ok
}
