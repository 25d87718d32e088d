package model

import "github.com/google/uuid"

// Movie is a single watchlist entry. ScheduledEventID is set only after the
// bot successfully created a Discord scheduled event for it and is used later
// to cancel that event when the movie is removed.
type Movie struct {
	ID               uuid.UUID `json:"-"`
	Title            string    `json:"title"`
	Year             int       `json:"year"`
	PosterURL        string    `json:"posterURL,omitempty"`
	RuntimeMinutes   int       `json:"runtimeMinutes"`
	ScheduledEventID string    `json:"scheduledEventId,omitempty"`
}

// NewMovie builds a watchlist entry with a fresh in-process identity.
// A runtime of 0 means the runtime is unknown; such movies are still
// schedulable.
func NewMovie(title string, year int, posterURL string, runtimeMinutes int) *Movie {
	return &Movie{
		ID:             uuid.New(),
		Title:          title,
		Year:           year,
		PosterURL:      posterURL,
		RuntimeMinutes: runtimeMinutes,
	}
}
