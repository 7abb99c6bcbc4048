package httpcache

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/storyshare/storyshare/internal/config"
	"github.com/storyshare/storyshare/internal/logger"
)

func newTestStore(t *testing.T, version string) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := OpenStore(config.ClientCache{Path: path, Version: version}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, path
}

func TestStore_PutGetOverwrite(t *testing.T) {
	store, _ := newTestStore(t, "storyshare-v1")

	_, err := store.Get("GET https://example.com/stories")
	require.ErrorIs(t, err, ErrCacheMiss)

	first := &Entry{Status: http.StatusOK, Body: []byte("first"), StoredAt: time.Now().UTC()}
	require.NoError(t, store.Put("GET https://example.com/stories", first))

	got, err := store.Get("GET https://example.com/stories")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got.Body)

	second := &Entry{Status: http.StatusOK, Body: []byte("second"), StoredAt: time.Now().UTC()}
	require.NoError(t, store.Put("GET https://example.com/stories", second))

	got, err = store.Get("GET https://example.com/stories")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got.Body, "newer response overwrites the prior entry")
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	cfg := config.ClientCache{Path: path, Version: "storyshare-v1"}

	store, err := OpenStore(cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Put("GET https://example.com/app.js", &Entry{Status: 200, Body: []byte("bundle")}))
	require.NoError(t, store.Close())

	store, err = OpenStore(cfg, logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get("GET https://example.com/app.js")
	require.NoError(t, err)
	assert.Equal(t, []byte("bundle"), got.Body)
}

func TestStore_GenerationRolloverDeletesOldCaches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	v1, err := OpenStore(config.ClientCache{Path: path, Version: "storyshare-v1"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, v1.Put("GET https://example.com/stories", &Entry{Status: 200, Body: []byte("old")}))
	require.NoError(t, v1.Close())

	v2, err := OpenStore(config.ClientCache{Path: path, Version: "storyshare-v2"}, logger.Nop())
	require.NoError(t, err)
	defer v2.Close()

	assert.Equal(t, "storyshare-v2", v2.Generation())

	_, err = v2.Get("GET https://example.com/stories")
	require.ErrorIs(t, err, ErrCacheMiss, "entries of a superseded generation are gone")

	// the old bucket itself must be deleted, not merely ignored
	require.NoError(t, v2.db.View(func(tx *bolt.Tx) error {
		assert.Nil(t, tx.Bucket([]byte("storyshare-v1")))
		assert.NotNil(t, tx.Bucket([]byte("storyshare-v2")))
		return nil
	}))
}
