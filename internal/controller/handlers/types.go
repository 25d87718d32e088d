package handlers

import (
	"go.uber.org/zap"

	"github.com/popcornbot/movienight/internal/service"
)

// Component custom ids routed by the controller.
const (
	// MovieSelectID is the TMDb disambiguation menu; values are TMDb ids.
	MovieSelectID = "movie_select"

	// RemoveSelectID is the removal menu; values are "remove:<movie id>".
	RemoveSelectID = "remove-movie-select"

	// PageButtonPrefix starts the movie list pagination button ids, e.g.
	// "movie_page_next_2".
	PageButtonPrefix = "movie_page_"
)

// pageSize is the number of movies per list page after the "Next Up" page.
const pageSize = 5

// maxSelectOptions is Discord's cap on select menu options.
const maxSelectOptions = 25

// Handlers implements the bot's slash command and component handlers.
type Handlers struct {
	watchlist *service.WatchlistService
	logger    *zap.Logger
}

// New creates the handler set.
func New(watchlist *service.WatchlistService, logger *zap.Logger) *Handlers {
	return &Handlers{watchlist: watchlist, logger: logger}
}
