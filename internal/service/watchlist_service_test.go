package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/popcornbot/movienight/internal/repository"
	"github.com/popcornbot/movienight/internal/schedule"
	"github.com/popcornbot/movienight/internal/tmdb"
)

type fakeGuild struct {
	channels  []schedule.VoiceChannel
	events    []schedule.Event
	created   []schedule.CreateEventParams
	createErr error
	deleted   []string
	deleteErr error
}

func (f *fakeGuild) VoiceChannels(ctx context.Context) ([]schedule.VoiceChannel, error) {
	return f.channels, nil
}

func (f *fakeGuild) ScheduledEvents(ctx context.Context) ([]schedule.Event, error) {
	return f.events, nil
}

func (f *fakeGuild) CreateScheduledEvent(ctx context.Context, params schedule.CreateEventParams) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, params)
	return "evt-42", nil
}

func (f *fakeGuild) DeleteScheduledEvent(ctx context.Context, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

type fakeMetadata struct {
	results []tmdb.SearchResult
	details map[int64]*tmdb.Details
}

func (f *fakeMetadata) Search(ctx context.Context, query string, year int) ([]tmdb.SearchResult, error) {
	return f.results, nil
}

func (f *fakeMetadata) Details(ctx context.Context, id int64) (*tmdb.Details, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return d, nil
}

type fixture struct {
	svc   *WatchlistService
	store repository.Watchlist
	guild *fakeGuild
	zone  *time.Location
}

func newFixture(t *testing.T, guild *fakeGuild, metadata *fakeMetadata) *fixture {
	t.Helper()

	zone, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	store, err := repository.NewJSONFileStore(filepath.Join(t.TempDir(), "movies.json"))
	require.NoError(t, err)

	logger := zap.NewNop()
	// Monday 2024-01-01 10:00 local.
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, zone)
	scheduler := schedule.NewScheduler(guild, schedule.Config{
		Zone: zone,
		Now:  func() time.Time { return now },
	}, logger)
	publisher := schedule.NewPublisher(guild, "", logger)

	return &fixture{
		svc:   NewWatchlistService(store, metadata, scheduler, publisher, logger),
		store: store,
		guild: guild,
		zone:  zone,
	}
}

func theatre() *fakeGuild {
	return &fakeGuild{
		channels: []schedule.VoiceChannel{
			{ID: "100", Name: "general"},
			{ID: "200", Name: schedule.DefaultChannelName},
		},
	}
}

func heatMetadata() *fakeMetadata {
	return &fakeMetadata{
		details: map[int64]*tmdb.Details{
			949: {ID: 949, Title: "Heat", Year: 1995, PosterURL: "https://example.com/heat.jpg", RuntimeMinutes: 110},
		},
	}
}

func TestAddByTMDBID(t *testing.T) {
	ctx := context.Background()

	t.Run("adds, schedules and persists the event id", func(t *testing.T) {
		f := newFixture(t, theatre(), heatMetadata())

		movie, err := f.svc.AddByTMDBID(ctx, 949)
		require.NoError(t, err)
		assert.Equal(t, "Heat", movie.Title)
		assert.Equal(t, "evt-42", movie.ScheduledEventID)

		require.Len(t, f.guild.created, 1)
		created := f.guild.created[0]
		assert.Equal(t, "Movie Night - Heat", created.Name)
		assert.Equal(t, time.Date(2024, 1, 2, 19, 45, 0, 0, f.zone), created.Start)
		// Reserved interval is runtime plus the 15 minute buffer.
		assert.Equal(t, 125*time.Minute, created.End.Sub(created.Start))

		stored, err := f.store.All(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "evt-42", stored[0].ScheduledEventID)
	})

	t.Run("unknown id adds nothing", func(t *testing.T) {
		f := newFixture(t, theatre(), heatMetadata())

		movie, err := f.svc.AddByTMDBID(ctx, 1)
		assert.Nil(t, movie)
		assert.ErrorIs(t, err, tmdb.ErrNotFound)
	})

	t.Run("no slot keeps the movie on the list", func(t *testing.T) {
		guild := &fakeGuild{channels: []schedule.VoiceChannel{{ID: "100", Name: "general"}}}
		f := newFixture(t, guild, heatMetadata())

		movie, err := f.svc.AddByTMDBID(ctx, 949)
		require.NotNil(t, movie)
		assert.ErrorIs(t, err, schedule.ErrNoSlotFound)
		assert.Empty(t, movie.ScheduledEventID)

		stored, storeErr := f.store.All(ctx)
		require.NoError(t, storeErr)
		assert.Len(t, stored, 1)
	})

	t.Run("event creation failure keeps the movie on the list", func(t *testing.T) {
		guild := theatre()
		guild.createErr = errors.New("rate limited")
		f := newFixture(t, guild, heatMetadata())

		movie, err := f.svc.AddByTMDBID(ctx, 949)
		require.NotNil(t, movie)
		require.Error(t, err)
		assert.Empty(t, movie.ScheduledEventID)

		stored, storeErr := f.store.All(ctx)
		require.NoError(t, storeErr)
		assert.Len(t, stored, 1)
	})
}

func TestMatches(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, theatre(), &fakeMetadata{
		details: map[int64]*tmdb.Details{
			1: {ID: 1, Title: "Dune", Year: 2021, RuntimeMinutes: 155},
			2: {ID: 2, Title: "Dune: Part Two", Year: 2024, RuntimeMinutes: 166},
			3: {ID: 3, Title: "Heat", Year: 1995, RuntimeMinutes: 170},
		},
	})

	for _, id := range []int64{1, 2, 3} {
		_, err := f.svc.AddByTMDBID(ctx, id)
		require.NoError(t, err)
	}

	matches, err := f.svc.Matches(ctx, "dune")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Dune", matches[0].Title)
	assert.Equal(t, "Dune: Part Two", matches[1].Title)

	matches, err = f.svc.Matches(ctx, "alien")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels the event and removes the entry", func(t *testing.T) {
		f := newFixture(t, theatre(), heatMetadata())
		movie, err := f.svc.AddByTMDBID(ctx, 949)
		require.NoError(t, err)

		removed, err := f.svc.Remove(ctx, movie.ID)
		require.NoError(t, err)
		assert.Equal(t, "Heat", removed.Title)
		assert.Equal(t, []string{"evt-42"}, f.guild.deleted)

		stored, err := f.store.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("event deletion failure does not block removal", func(t *testing.T) {
		f := newFixture(t, theatre(), heatMetadata())
		movie, err := f.svc.AddByTMDBID(ctx, 949)
		require.NoError(t, err)

		f.guild.deleteErr = errors.New("gone")

		_, err = f.svc.Remove(ctx, movie.ID)
		require.NoError(t, err)

		stored, err := f.store.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("unknown id is reported", func(t *testing.T) {
		f := newFixture(t, theatre(), heatMetadata())

		_, err := f.svc.Remove(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
