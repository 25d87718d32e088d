package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/popcornbot/movienight/internal/model"
)

// ErrNotFound is returned when a watchlist entry does not exist.
var ErrNotFound = errors.New("repository: movie not found")

// Watchlist stores the ordered movie list. Order is user visible ("next up"
// is the first entry), so implementations must preserve insertion order.
type Watchlist interface {
	// All returns the movies in watchlist order.
	All(ctx context.Context) ([]*model.Movie, error)

	// Add appends a movie to the end of the list and persists the change.
	Add(ctx context.Context, movie *model.Movie) error

	// Remove deletes the movie with the given id and persists the change.
	Remove(ctx context.Context, id uuid.UUID) error

	// SetEventID records the scheduled event id on a movie and persists the
	// change. Called after the Discord event is created.
	SetEventID(ctx context.Context, id uuid.UUID, eventID string) error
}
