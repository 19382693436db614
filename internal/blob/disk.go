package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
)

// DiskStore keeps blobs under a local directory. Files are served by the API
// under BaseURL.
type DiskStore struct {
	Dir     string
	BaseURL string
}

// NewDiskStore creates dir if needed.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes data to Dir/key.
func (s *DiskStore) Upload(ctx context.Context, key, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		observability.BlobUploads.WithLabelValues("disk", "failure").Inc()
		return "", fmt.Errorf("failed to create blob folder: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		observability.BlobUploads.WithLabelValues("disk", "failure").Inc()
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	observability.BlobUploads.WithLabelValues("disk", "success").Inc()
	return s.BaseURL + "/" + key, nil
}
