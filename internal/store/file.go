package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chatterpal/internal/domain"
)

// FileStore keeps the collection as one JSON array in a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store: path must not be empty")
	}
	return &FileStore{path: path}, nil
}

// Load reads the slot. A missing file, unreadable file, or a value that is
// not a conversation array all yield an empty collection and no error; the
// slot is unversioned and untrusted.
func (s *FileStore) Load(_ context.Context) ([]domain.Conversation, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}
	var convos []domain.Conversation
	if err := json.Unmarshal(b, &convos); err != nil {
		return nil, nil
	}
	return convos, nil
}

// Save serializes the full collection and replaces the slot contents.
func (s *FileStore) Save(_ context.Context, convos []domain.Conversation) error {
	if convos == nil {
		convos = []domain.Conversation{}
	}
	b, err := json.MarshalIndent(convos, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal collection: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: create slot directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("store: write slot: %w", err)
	}
	return nil
}
