package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/popcornbot/movienight/internal/model"
)

// JSONFileStore keeps the watchlist in memory and mirrors every mutation to a
// pretty-printed JSON file, so the list survives restarts. A missing file is
// an empty list.
//
// The file holds only the persisted movie fields; in-process ids are
// regenerated on load.
type JSONFileStore struct {
	mu     sync.Mutex
	path   string
	movies []*model.Movie
}

// NewJSONFileStore opens the store at path, loading any existing list.
func NewJSONFileStore(path string) (*JSONFileStore, error) {
	s := &JSONFileStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// All returns a copy of the list in watchlist order.
func (s *JSONFileStore) All(ctx context.Context) ([]*model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Movie, len(s.movies))
	copy(out, s.movies)
	return out, nil
}

// Add appends the movie and saves.
func (s *JSONFileStore) Add(ctx context.Context, movie *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.movies = append(s.movies, movie)
	return s.save()
}

// Remove deletes the movie with the given id and saves.
func (s *JSONFileStore) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.movies {
		if m.ID == id {
			s.movies = append(s.movies[:i], s.movies[i+1:]...)
			return s.save()
		}
	}
	return ErrNotFound
}

// SetEventID records the scheduled event id on a movie and saves.
func (s *JSONFileStore) SetEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.movies {
		if m.ID == id {
			m.ScheduledEventID = eventID
			return s.save()
		}
	}
	return ErrNotFound
}

func (s *JSONFileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read watchlist file: %w", err)
	}

	var movies []*model.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return fmt.Errorf("parse watchlist file: %w", err)
	}

	for _, m := range movies {
		m.ID = uuid.New()
	}
	s.movies = movies
	return nil
}

func (s *JSONFileStore) save() error {
	movies := s.movies
	if movies == nil {
		movies = []*model.Movie{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write watchlist file: %w", err)
	}
	return nil
}
