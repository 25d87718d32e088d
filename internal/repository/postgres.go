package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/popcornbot/movienight/internal/model"
)

// PostgresStore keeps the watchlist in Postgres. Used instead of the JSON
// file when WATCHLIST_DSN is configured; the position column preserves the
// user-visible order.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// All returns the movies in watchlist order.
func (s *PostgresStore) All(ctx context.Context) ([]*model.Movie, error) {
	query := `
		SELECT id, title, year, poster_url, runtime_minutes, scheduled_event_id
		FROM watchlist
		ORDER BY position
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	var movies []*model.Movie
	for rows.Next() {
		var (
			movie     model.Movie
			posterURL *string
			eventID   *string
		)
		err := rows.Scan(&movie.ID, &movie.Title, &movie.Year, &posterURL, &movie.RuntimeMinutes, &eventID)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		if posterURL != nil {
			movie.PosterURL = *posterURL
		}
		if eventID != nil {
			movie.ScheduledEventID = *eventID
		}
		movies = append(movies, &movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist: %w", err)
	}

	return movies, nil
}

// Add appends the movie at the end of the list.
func (s *PostgresStore) Add(ctx context.Context, movie *model.Movie) error {
	query := `
		INSERT INTO watchlist (id, title, year, poster_url, runtime_minutes, scheduled_event_id, position)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''),
			(SELECT COALESCE(MAX(position), 0) + 1 FROM watchlist))
	`

	_, err := s.pool.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Year,
		movie.PosterURL,
		movie.RuntimeMinutes,
		movie.ScheduledEventID,
	)
	if err != nil {
		return fmt.Errorf("add movie: %w", err)
	}
	return nil
}

// Remove deletes the movie with the given id.
func (s *PostgresStore) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM watchlist WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetEventID records the scheduled event id on a movie.
func (s *PostgresStore) SetEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	query := `
		UPDATE watchlist
		SET scheduled_event_id = NULLIF($1, '')
		WHERE id = $2
	`

	tag, err := s.pool.Exec(ctx, query, eventID, id)
	if err != nil {
		return fmt.Errorf("set event id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
