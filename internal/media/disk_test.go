package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSave(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root)
	require.NoError(t, err)

	imageURL, previewURL, err := store.Save(context.Background(), "Photo.PNG", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	// URLs point at the /static route and keep the (lowercased) extension.
	assert.True(t, strings.HasPrefix(imageURL, "/static/images/"))
	assert.True(t, strings.HasSuffix(imageURL, ".png"))
	assert.True(t, strings.HasSuffix(previewURL, "_preview.png"))

	original := filepath.Join(root, "images", filepath.Base(imageURL))
	preview := filepath.Join(root, "images", filepath.Base(previewURL))
	data, err := os.ReadFile(original)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
	previewData, err := os.ReadFile(preview)
	require.NoError(t, err)
	assert.Equal(t, data, previewData)
}

func TestDiskStoreSaveUniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	first, _, err := store.Save(context.Background(), "a.png", strings.NewReader("x"))
	require.NoError(t, err)
	second, _, err := store.Save(context.Background(), "a.png", strings.NewReader("x"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
