// Package media is the boundary to image storage. The HTTP layer hands
// uploaded bytes to a Store and persists the returned URLs verbatim;
// where the bytes actually live is the store's concern.
package media

import (
	"context"
	"io"
)

// Store accepts uploaded image bytes and returns retrievable URLs for
// the full image and its preview.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (imageURL, previewURL string, err error)
}
