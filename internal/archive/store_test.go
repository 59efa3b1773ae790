package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStore creates an in-memory archive for testing
func createTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func play(name, artist string, unix int64) lastfm.Track {
	return lastfm.Track{
		Name:     name,
		Artist:   lastfm.NamedArtist(artist),
		Album:    lastfm.Album{Name: name + " (album)"},
		PlayedAt: time.Unix(unix, 0).UTC(),
	}
}

func TestOpen(t *testing.T) {
	t.Run("in-memory database", func(t *testing.T) {
		store, err := Open(":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		assert.NotNil(t, store.db)
	})

	t.Run("file-based database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "archive.db")

		store, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		// Reopening keeps the schema and data
		store, err = Open(path)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		count, err := store.Count(context.Background(), "rj")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestStoreSave(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	tracks := []lastfm.Track{
		{Name: "Playing", Artist: lastfm.NamedArtist("Cher"), NowPlaying: true},
		play("Believe", "Cher", 1700000300),
		play("Strong Enough", "Cher", 1700000000),
	}

	added, err := store.Save(ctx, "rj", tracks)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	count, err := store.Count(ctx, "rj")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStoreSave_Deduplicates(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	first := []lastfm.Track{play("Believe", "Cher", 1700000300), play("Strong Enough", "Cher", 1700000000)}
	added, err := store.Save(ctx, "rj", first)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	loved := play("Believe", "Cher", 1700000300)
	loved.Loved = true
	second := []lastfm.Track{play("Runaway", "Cher", 1700000600), loved}

	added, err = store.Save(ctx, "rj", second)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	plays, err := store.Recent(ctx, "rj", 0)
	require.NoError(t, err)
	require.Len(t, plays, 3)
	assert.Equal(t, "Runaway", plays[0].Track)
	assert.Equal(t, "Believe", plays[1].Track)
	assert.True(t, plays[1].Loved)
}

func TestStoreSave_SeparatesUsers(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	tracks := []lastfm.Track{play("Believe", "Cher", 1700000000)}

	_, err := store.Save(ctx, "rj", tracks)
	require.NoError(t, err)
	added, err := store.Save(ctx, "julia", tracks)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	count, err := store.Count(ctx, "julia")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStoreSave_Empty(t *testing.T) {
	store := createTestStore(t)

	added, err := store.Save(context.Background(), "rj", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestStoreLatest(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Latest(ctx, "rj")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Save(ctx, "rj", []lastfm.Track{
		play("Old", "Cher", 1600000000),
		play("New", "Cher", 1700000000),
	})
	require.NoError(t, err)

	latest, ok, err := store.Latest(ctx, "rj")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), latest)
}

func TestStoreRecent(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "rj", []lastfm.Track{
		play("One", "Cher", 1700000100),
		play("Two", "Madonna", 1700000200),
		play("Three", "Cher", 1700000300),
	})
	require.NoError(t, err)

	plays, err := store.Recent(ctx, "rj", 2)
	require.NoError(t, err)
	require.Len(t, plays, 2)
	assert.Equal(t, "Three", plays[0].Track)
	assert.Equal(t, "Two", plays[1].Track)
	assert.Equal(t, "Madonna", plays[1].Artist)
	assert.Equal(t, "Two (album)", plays[1].Album)
	assert.Equal(t, time.Unix(1700000200, 0).UTC(), plays[1].PlayedAt)
	assert.Equal(t, "rj", plays[1].User)
}

func TestStoreTopArtists(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "rj", []lastfm.Track{
		play("One", "Cher", 1),
		play("Two", "Madonna", 2),
		play("Three", "Cher", 3),
		play("Four", "ABBA", 4),
	})
	require.NoError(t, err)

	artists, err := store.TopArtists(ctx, "rj", 2)
	require.NoError(t, err)
	assert.Equal(t, []ArtistCount{{Artist: "Cher", Plays: 2}, {Artist: "ABBA", Plays: 1}}, artists)
}

func TestStorePrune(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "rj", []lastfm.Track{
		play("Old", "Cher", 1000),
		play("New", "Cher", 2000),
	})
	require.NoError(t, err)

	deleted, err := store.Prune(ctx, "rj", time.Unix(1500, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	plays, err := store.Recent(ctx, "rj", 0)
	require.NoError(t, err)
	require.Len(t, plays, 1)
	assert.Equal(t, "New", plays[0].Track)
}

func TestStoreGap(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Gap(ctx, "rj")
	require.NoError(t, err)
	assert.False(t, ok)

	to := time.Unix(1700000000, 0).UTC()
	require.NoError(t, store.SetGap(ctx, "rj", Gap{To: to}))

	gap, ok, err := store.Gap(ctx, "rj")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, gap.From.IsZero())
	assert.Equal(t, to, gap.To)

	// A second gap replaces the first
	from := time.Unix(1600000000, 0).UTC()
	require.NoError(t, store.SetGap(ctx, "rj", Gap{From: from, To: to}))
	gap, _, err = store.Gap(ctx, "rj")
	require.NoError(t, err)
	assert.Equal(t, from, gap.From)

	_, ok, err = store.Gap(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.ClearGap(ctx, "rj"))
	_, ok, err = store.Gap(ctx, "rj")
	require.NoError(t, err)
	assert.False(t, ok)
}
