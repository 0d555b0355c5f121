// Package storage persists pipeline artifacts (the processed table and the
// portfolio summary) onto the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactStore writes run artifacts under a single output directory. Keys
// are relative paths and are cleaned so artifacts cannot escape the root.
type ArtifactStore struct {
	root string
}

// NewArtifactStore initializes a store rooted at dir, creating it if needed.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure output directory: %w", err)
	}
	return &ArtifactStore{root: dir}, nil
}

// Root returns the configured output directory.
func (s *ArtifactStore) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// Write persists data at the given relative key and returns the full path of
// the written artifact.
func (s *ArtifactStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.root, filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write artifact: %w", err)
	}
	return fullPath, nil
}

// sanitizeKey normalizes a key and prevents escaping the output root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: artifact key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("storage: invalid artifact key %q", key)
	}
	return clean, nil
}
