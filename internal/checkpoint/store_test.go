package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "checkpoints", "latest_checkpoint.json"))
	require.NoError(t, err)
	return store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newStore(t)

	saved := Checkpoint{
		NextIndex: 42,
		LastSource: source.Source{
			YoutubeURL: "https://www.youtube.com/@bbcnews",
			BrandName:  "BBC",
			Rating:     "high",
		},
		Stats: Stats{
			ChannelsProcessed:   42,
			ChannelsSucceeded:   40,
			ChannelsFailed:      2,
			VideosCollected:     1234,
			CommentsCollected:   56789,
			QuotaSession:        800,
			QuotaCumulative:     5300,
			ConsecutiveFailures: 2,
			StartTime:           time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, store.Save(saved))

	loaded, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, saved.NextIndex, loaded.NextIndex)
	assert.Equal(t, saved.LastSource, loaded.LastSource)
	assert.Equal(t, saved.Stats, loaded.Stats)
	assert.False(t, loaded.SavedAt.IsZero())
}

func TestLoadWithoutCheckpoint(t *testing.T) {
	store := newStore(t)

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveOverwritesPrevious(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Save(Checkpoint{NextIndex: 5}))
	require.NoError(t, store.Save(Checkpoint{NextIndex: 9}))

	loaded, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 9, loaded.NextIndex)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(Checkpoint{NextIndex: 1}))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "latest_checkpoint.json", entries[0].Name())
}

func TestClear(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(Checkpoint{NextIndex: 3}))
	require.True(t, store.Exists())

	require.NoError(t, store.Clear())
	assert.False(t, store.Exists())

	// Clearing an already-clear store is fine
	assert.NoError(t, store.Clear())
}

func TestLoadCorruptCheckpoint(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	_, _, err := store.Load()
	assert.Error(t, err)
}
