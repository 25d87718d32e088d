package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popcornbot/movienight/internal/model"
)

func TestJSONFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is an empty list", func(t *testing.T) {
		store, err := NewJSONFileStore(filepath.Join(t.TempDir(), "movies.json"))
		require.NoError(t, err)

		movies, err := store.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("mutations survive a reload in order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movies.json")
		store, err := NewJSONFileStore(path)
		require.NoError(t, err)

		first := model.NewMovie("Heat", 1995, "https://example.com/heat.jpg", 170)
		second := model.NewMovie("Dune", 2021, "", 155)
		require.NoError(t, store.Add(ctx, first))
		require.NoError(t, store.Add(ctx, second))
		require.NoError(t, store.SetEventID(ctx, second.ID, "evt-7"))

		reloaded, err := NewJSONFileStore(path)
		require.NoError(t, err)
		movies, err := reloaded.All(ctx)
		require.NoError(t, err)

		require.Len(t, movies, 2)
		assert.Equal(t, "Heat", movies[0].Title)
		assert.Equal(t, 1995, movies[0].Year)
		assert.Equal(t, "https://example.com/heat.jpg", movies[0].PosterURL)
		assert.Equal(t, 170, movies[0].RuntimeMinutes)
		assert.Empty(t, movies[0].ScheduledEventID)
		assert.Equal(t, "Dune", movies[1].Title)
		assert.Equal(t, "evt-7", movies[1].ScheduledEventID)
	})

	t.Run("file uses the documented field names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movies.json")
		store, err := NewJSONFileStore(path)
		require.NoError(t, err)

		movie := model.NewMovie("Heat", 1995, "https://example.com/heat.jpg", 170)
		require.NoError(t, store.Add(ctx, movie))
		require.NoError(t, store.SetEventID(ctx, movie.ID, "evt-7"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var raw []map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Len(t, raw, 1)
		assert.Equal(t, "Heat", raw[0]["title"])
		assert.Equal(t, float64(1995), raw[0]["year"])
		assert.Equal(t, "https://example.com/heat.jpg", raw[0]["posterURL"])
		assert.Equal(t, float64(170), raw[0]["runtimeMinutes"])
		assert.Equal(t, "evt-7", raw[0]["scheduledEventId"])
		assert.NotContains(t, raw[0], "id")
	})

	t.Run("remove keeps the remaining order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movies.json")
		store, err := NewJSONFileStore(path)
		require.NoError(t, err)

		first := model.NewMovie("Heat", 1995, "", 170)
		second := model.NewMovie("Dune", 2021, "", 155)
		third := model.NewMovie("Alien", 1979, "", 117)
		for _, m := range []*model.Movie{first, second, third} {
			require.NoError(t, store.Add(ctx, m))
		}

		require.NoError(t, store.Remove(ctx, second.ID))

		movies, err := store.All(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.Equal(t, "Heat", movies[0].Title)
		assert.Equal(t, "Alien", movies[1].Title)
	})

	t.Run("unknown ids are reported", func(t *testing.T) {
		store, err := NewJSONFileStore(filepath.Join(t.TempDir(), "movies.json"))
		require.NoError(t, err)

		assert.ErrorIs(t, store.Remove(ctx, uuid.New()), ErrNotFound)
		assert.ErrorIs(t, store.SetEventID(ctx, uuid.New(), "evt-1"), ErrNotFound)
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movies.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := NewJSONFileStore(path)
		assert.Error(t, err)
	})
}
