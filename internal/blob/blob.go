// Package blob stores uploaded files and returns URLs they can be fetched from.
package blob

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Store uploads bytes under a key and returns the public URL.
type Store interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Upload folders
const (
	FolderProfilePhotos   = "profile-photos"
	FolderCustomTemplates = "custom-templates"
)

// NewKey builds a collision-free object key inside folder, keeping the
// extension of the original file name.
func NewKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}

// cleanKey rejects keys that could escape the store root.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != key {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return cleaned, nil
}
