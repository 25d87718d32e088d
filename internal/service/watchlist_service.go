package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popcornbot/movienight/internal/model"
	"github.com/popcornbot/movienight/internal/repository"
	"github.com/popcornbot/movienight/internal/schedule"
	"github.com/popcornbot/movienight/internal/tmdb"
)

// WatchlistService ties the metadata lookup, the watchlist store and the
// scheduling engine together. All command handlers go through it.
type WatchlistService struct {
	store     repository.Watchlist
	metadata  tmdb.Client
	scheduler *schedule.Scheduler
	publisher *schedule.Publisher
	logger    *zap.Logger

	// Serializes slot search + event creation so two concurrent adds cannot
	// pick the same slot. The Discord side is still unlocked; see the
	// staleness note on Scheduler.
	scheduleMu sync.Mutex
}

// NewWatchlistService wires the service.
func NewWatchlistService(
	store repository.Watchlist,
	metadata tmdb.Client,
	scheduler *schedule.Scheduler,
	publisher *schedule.Publisher,
	logger *zap.Logger,
) *WatchlistService {
	return &WatchlistService{
		store:     store,
		metadata:  metadata,
		scheduler: scheduler,
		publisher: publisher,
		logger:    logger,
	}
}

// Search looks up title candidates on TMDb. year <= 0 means no year filter.
func (s *WatchlistService) Search(ctx context.Context, title string, year int) ([]tmdb.SearchResult, error) {
	results, err := s.metadata.Search(ctx, title, year)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return results, nil
}

// AddByTMDBID resolves a TMDb id to a full movie record, appends it to the
// watchlist and schedules its movie night.
//
// The watchlist add is the primary effect: when scheduling or event creation
// fails the movie is still on the list and a non-nil error describes what
// went wrong, alongside the added movie. Only metadata and store failures
// return a nil movie.
func (s *WatchlistService) AddByTMDBID(ctx context.Context, tmdbID int64) (*model.Movie, error) {
	details, err := s.metadata.Details(ctx, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("movie details: %w", err)
	}

	movie := model.NewMovie(details.Title, details.Year, details.PosterURL, details.RuntimeMinutes)
	if err := s.store.Add(ctx, movie); err != nil {
		return nil, fmt.Errorf("add to watchlist: %w", err)
	}

	s.logger.Info("movie added to watchlist",
		zap.String("title", movie.Title),
		zap.Int("year", movie.Year),
		zap.Int("runtime_minutes", movie.RuntimeMinutes))

	if err := s.scheduleMovieNight(ctx, movie); err != nil {
		return movie, err
	}
	return movie, nil
}

func (s *WatchlistService) scheduleMovieNight(ctx context.Context, movie *model.Movie) error {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	start, err := s.scheduler.FindNextAvailableSlot(ctx, movie.RuntimeMinutes, movie)
	if err != nil {
		return fmt.Errorf("find slot: %w", err)
	}

	end := start.Add(time.Duration(movie.RuntimeMinutes+schedule.BufferMinutes) * time.Minute)
	if err := s.publisher.CreateEvent(ctx, movie, start, end); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	if err := s.store.SetEventID(ctx, movie.ID, movie.ScheduledEventID); err != nil {
		s.logger.Error("persist scheduled event id",
			zap.String("title", movie.Title),
			zap.Error(err))
		return fmt.Errorf("persist event id: %w", err)
	}
	return nil
}

// Movies returns the watchlist in order.
func (s *WatchlistService) Movies(ctx context.Context) ([]*model.Movie, error) {
	return s.store.All(ctx)
}

// Matches returns the watchlist entries whose title contains the query,
// case-insensitively, in watchlist order.
func (s *WatchlistService) Matches(ctx context.Context, query string) ([]*model.Movie, error) {
	movies, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []*model.Movie
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), needle) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// Remove cancels the movie's scheduled event (when it has one) and then
// deletes the entry. Event deletion failure is logged but never blocks the
// removal.
func (s *WatchlistService) Remove(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	movies, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	var movie *model.Movie
	for _, m := range movies {
		if m.ID == id {
			movie = m
			break
		}
	}
	if movie == nil {
		return nil, repository.ErrNotFound
	}

	if err := s.publisher.DeleteEvent(ctx, movie); err != nil {
		s.logger.Warn("scheduled event not cancelled, removing movie anyway",
			zap.String("title", movie.Title),
			zap.Error(err))
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return nil, fmt.Errorf("remove from watchlist: %w", err)
	}

	s.logger.Info("movie removed from watchlist", zap.String("title", movie.Title))
	return movie, nil
}
