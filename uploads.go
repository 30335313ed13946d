package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CoverStorage persists uploaded book cover images and returns the
// public url where the stored image is served from.
type CoverStorage interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// DiskCoverStorage implements CoverStorage on the local filesystem.
type DiskCoverStorage struct {
	dir     string
	baseURL string
}

// NewDiskCoverStorage provides a covers storage rooted at dir.
func NewDiskCoverStorage(config UploadsConfig) *DiskCoverStorage {
	return &DiskCoverStorage{dir: config.Dir, baseURL: strings.TrimSuffix(config.BaseURL, "/")}
}

// Upload writes the image bytes under the covers directory. The name
// is flattened to its base so a crafted value cannot escape the folder.
func (s *DiskCoverStorage) Upload(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create covers folder: %w", err)
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid cover file name %q", name)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("failed to store cover file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
