package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const IDPhotoDir = "customers/id_photos"

// PhotoStore writes uploaded images below Root.
type PhotoStore struct {
	Root string
}

func NewPhotoStore(root string) *PhotoStore {
	if root == "" {
		root = "uploads"
	}
	return &PhotoStore{Root: root}
}

// SaveBase64Image accepts raw base64 or a data URI ("data:image/png;base64,...")
// and returns the stored path relative to Root, e.g. "customers/id_photos/<uuid>.png".
func (p *PhotoStore) SaveBase64Image(b64 string, subdir string) (string, error) {
	b64 = strings.TrimSpace(b64)
	if b64 == "" {
		return "", fmt.Errorf("empty image data")
	}

	ext := ".jpg"
	if strings.HasPrefix(b64, "data:") {
		meta, payload, ok := strings.Cut(b64, ";base64,")
		if !ok {
			return "", fmt.Errorf("invalid image data uri")
		}
		b64 = payload
		if _, sub, found := strings.Cut(strings.TrimPrefix(meta, "data:"), "/"); found && sub != "" {
			switch strings.ToLower(sub) {
			case "png":
				ext = ".png"
			case "gif":
				ext = ".gif"
			case "webp":
				ext = ".webp"
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	dir := filepath.Join(p.Root, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	// stored in DB as "customers/id_photos/xxx.jpg"
	return filepath.ToSlash(filepath.Join(subdir, filename)), nil
}

// Remove deletes a file previously returned by SaveBase64Image. Missing files are ignored.
func (p *PhotoStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(p.Root, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
