package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/popcornbot/movienight/internal/app"
	"github.com/popcornbot/movienight/internal/config"
	"github.com/popcornbot/movienight/internal/controller"
	"github.com/popcornbot/movienight/internal/discord"
	"github.com/popcornbot/movienight/internal/repository"
	"github.com/popcornbot/movienight/internal/schedule"
	"github.com/popcornbot/movienight/internal/service"
	"github.com/popcornbot/movienight/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zoneName := cfg.SchedulingZone
	if zoneName == "" {
		zoneName = schedule.DefaultZone
	}
	zone, err := time.LoadLocation(zoneName)
	if err != nil {
		logger.Fatal("load scheduling zone", zap.String("zone", zoneName), zap.Error(err))
	}

	store, cleanup, err := openWatchlist(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open watchlist store", zap.Error(err))
	}
	defer cleanup()

	metadata, err := tmdb.NewHTTPClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, 10*time.Second, logger)
	if err != nil {
		logger.Fatal("create tmdb client", zap.Error(err))
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logger.Fatal("create discord session", zap.Error(err))
	}

	guild := discord.NewGuild(session, cfg.GuildID)
	scheduler := schedule.NewScheduler(guild, schedule.Config{
		Zone:        zone,
		ChannelName: cfg.MeetingChannelName,
		MaxWeeks:    cfg.MaxSearchWeeks,
	}, logger)
	publisher := schedule.NewPublisher(guild, cfg.MeetingChannelName, logger)

	watchlist := service.NewWatchlistService(store, metadata, scheduler, publisher, logger)
	bot := controller.NewBotController(session, cfg.GuildID, watchlist, logger)

	if err := bot.Start(); err != nil {
		logger.Fatal("start bot", zap.Error(err))
	}

	logger.Info("movie night bot is running",
		zap.String("environment", cfg.Environment),
		zap.String("zone", zoneName))

	<-ctx.Done()

	logger.Info("shutting down")
	if err := bot.Stop(); err != nil {
		logger.Error("close discord session", zap.Error(err))
	}
}

// openWatchlist picks the store backend: Postgres when WATCHLIST_DSN is set
// (running migrations first), the JSON file otherwise.
func openWatchlist(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Watchlist, func(), error) {
	if cfg.WatchlistDSN == "" {
		store, err := repository.NewJSONFileStore(cfg.WatchlistFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using JSON file watchlist", zap.String("path", cfg.WatchlistFile))
		return store, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.WatchlistDSN)
	if err != nil {
		return nil, nil, err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		pool.Close()
		return nil, nil, err
	}
	migrator.Close()

	logger.Info("using Postgres watchlist")
	return repository.NewPostgresStore(pool), pool.Close, nil
}
