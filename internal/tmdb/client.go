package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the TMDb v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// posterBaseURL prefixes TMDb poster paths to a fetchable image URL.
const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// ErrNotFound is returned when TMDb has no movie for the given id.
var ErrNotFound = errors.New("tmdb: movie not found")

// SearchResult is one candidate from a title search. Year is 0 when TMDb has
// no release date.
type SearchResult struct {
	ID        int64
	Title     string
	Year      int
	PosterURL string
}

// Details is a fully resolved movie. RuntimeMinutes is 0 when TMDb does not
// know the runtime.
type Details struct {
	ID             int64
	Title          string
	Year           int
	PosterURL      string
	RuntimeMinutes int
}

// Client is the metadata lookup contract the watchlist service depends on.
type Client interface {
	Search(ctx context.Context, query string, year int) ([]SearchResult, error)
	Details(ctx context.Context, id int64) (*Details, error)
}

// HTTPClient implements Client against the TMDb HTTP API.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient constructs a TMDb client. baseURL may be empty to use the
// public API.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) (*HTTPClient, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}

	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

type searchResponse struct {
	Results []moviePayload `json:"results"`
}

type moviePayload struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
	Runtime     int     `json:"runtime"`
}

// Search queries TMDb by title, optionally narrowed to a release year
// (year <= 0 means no year filter).
func (c *HTTPClient) Search(ctx context.Context, query string, year int) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", query)
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}

	var payload searchResponse
	if err := c.get(ctx, "/search/movie", q, &payload); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(payload.Results))
	for _, m := range payload.Results {
		results = append(results, SearchResult{
			ID:        m.ID,
			Title:     m.Title,
			Year:      releaseYear(m.ReleaseDate),
			PosterURL: posterURL(m.PosterPath),
		})
	}
	return results, nil
}

// Details fetches the full record for a movie id, including its runtime.
func (c *HTTPClient) Details(ctx context.Context, id int64) (*Details, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)

	var m moviePayload
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), q, &m); err != nil {
		return nil, err
	}

	return &Details{
		ID:             m.ID,
		Title:          m.Title,
		Year:           releaseYear(m.ReleaseDate),
		PosterURL:      posterURL(m.PosterPath),
		RuntimeMinutes: m.Runtime,
	}, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: c.baseURL.Path + path})
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode tmdb response: %w", err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		c.logger.Warn("tmdb returned unexpected status",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path))
		return fmt.Errorf("tmdb: upstream returned %d", resp.StatusCode)
	}
}

// releaseYear extracts the year from a TMDb release date ("2024-03-01");
// empty or malformed dates map to 0.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func posterURL(path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return posterBaseURL + *path
}
