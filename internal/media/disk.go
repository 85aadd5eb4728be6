package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes images under <root>/images with random names and
// serves them back through the /static route. The preview is a plain
// copy of the original under a _preview suffix; proper thumbnailing is
// a concern of a real media service behind the same interface.
type DiskStore struct {
	root string
}

// NewDiskStore ensures the images directory exists and returns a store
// rooted at the given directory.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "images"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Save stores the uploaded bytes and a preview copy, returning their
// public URLs. The original filename only contributes its extension;
// the stored name is a random uuid so uploads can never collide or
// traverse paths.
func (s *DiskStore) Save(_ context.Context, filename string, r io.Reader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	id := uuid.New()
	originalName := fmt.Sprintf("%x%s", id[:], ext)
	previewName := fmt.Sprintf("%x_preview%s", id[:], ext)

	originalPath := filepath.Join(s.root, "images", originalName)
	f, err := os.Create(originalPath)
	if err != nil {
		return "", "", fmt.Errorf("store image: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", "", fmt.Errorf("store image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("store image: %w", err)
	}

	src, err := os.Open(originalPath)
	if err != nil {
		return "", "", fmt.Errorf("store preview: %w", err)
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(s.root, "images", previewName))
	if err != nil {
		return "", "", fmt.Errorf("store preview: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", "", fmt.Errorf("store preview: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", "", fmt.Errorf("store preview: %w", err)
	}

	return "/static/images/" + originalName, "/static/images/" + previewName, nil
}
