package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the bot reads from its environment. Scheduling
// knobs have compiled-in defaults matching the reference setup; only the
// Discord and TMDb credentials are mandatory.
type Config struct {
	DiscordToken string
	GuildID      string
	TMDBAPIKey   string
	TMDBBaseURL  string
	Environment  string

	WatchlistFile  string
	WatchlistDSN   string
	MigrationsPath string

	MeetingChannelName string
	SchedulingZone     string
	MaxSearchWeeks     int
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("DISCORD_GUILD_ID"),
		TMDBAPIKey:   os.Getenv("TMDB_API_KEY"),
		TMDBBaseURL:  os.Getenv("TMDB_BASE_URL"),
		Environment:  getEnv("ENV", "development"),

		WatchlistFile:  getEnv("WATCHLIST_FILE", "movies.json"),
		WatchlistDSN:   os.Getenv("WATCHLIST_DSN"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		MeetingChannelName: os.Getenv("MEETING_CHANNEL_NAME"),
		SchedulingZone:     os.Getenv("SCHEDULING_ZONE"),
		MaxSearchWeeks:     getEnvInt("MAX_SEARCH_WEEKS", 0),
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required but not set")
	}
	if cfg.GuildID == "" {
		return nil, fmt.Errorf("DISCORD_GUILD_ID is required but not set")
	}
	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required but not set")
	}
	if cfg.MaxSearchWeeks < 0 {
		return nil, fmt.Errorf("MAX_SEARCH_WEEKS must not be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return parsed
}
