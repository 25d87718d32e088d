package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/popcornbot/movienight/internal/model"
)

// Publisher creates and deletes the Discord scheduled events backing
// watchlist entries.
type Publisher struct {
	guild       GuildClient
	channelName string
	logger      *zap.Logger
}

// NewPublisher creates a publisher for the given guild. An empty channelName
// falls back to the default meeting channel.
func NewPublisher(guild GuildClient, channelName string, logger *zap.Logger) *Publisher {
	if channelName == "" {
		channelName = DefaultChannelName
	}
	return &Publisher{guild: guild, channelName: channelName, logger: logger}
}

// CreateEvent publishes a scheduled event for the movie and writes the
// resulting event id back into the record. Failures are logged and returned
// but must not fail the watchlist add: the entry simply stays without an
// event id, and a later removal has nothing to cancel.
func (p *Publisher) CreateEvent(ctx context.Context, movie *model.Movie, start, end time.Time) error {
	channels, err := p.guild.VoiceChannels(ctx)
	if err != nil {
		p.logger.Error("list voice channels", zap.Error(err))
		return fmt.Errorf("list voice channels: %w", err)
	}

	channel, ok := findChannel(channels, p.channelName)
	if !ok {
		p.logger.Error("meeting channel not found, event not created",
			zap.String("channel", p.channelName),
			zap.String("movie", movie.Title))
		return ErrMeetingChannelNotFound
	}

	eventID, err := p.guild.CreateScheduledEvent(ctx, CreateEventParams{
		Name:        EventTitlePrefix + movie.Title,
		Description: fmt.Sprintf("Movie Night: %s (%d)", movie.Title, movie.Year),
		ChannelID:   channel.ID,
		Start:       start,
		End:         end,
	})
	if err != nil {
		p.logger.Error("create scheduled event",
			zap.String("movie", movie.Title),
			zap.Error(err))
		return fmt.Errorf("create scheduled event: %w", err)
	}

	movie.ScheduledEventID = eventID
	p.logger.Info("created scheduled event",
		zap.String("movie", movie.Title),
		zap.String("event_id", eventID),
		zap.Time("start", start))
	return nil
}

// DeleteEvent cancels the movie's scheduled event, if it has one. Called
// before the movie is removed from the watchlist. Failure to delete is logged
// and returned but must not block the removal.
func (p *Publisher) DeleteEvent(ctx context.Context, movie *model.Movie) error {
	if movie.ScheduledEventID == "" {
		return nil
	}

	if err := p.guild.DeleteScheduledEvent(ctx, movie.ScheduledEventID); err != nil {
		p.logger.Error("delete scheduled event",
			zap.String("movie", movie.Title),
			zap.String("event_id", movie.ScheduledEventID),
			zap.Error(err))
		return fmt.Errorf("delete scheduled event: %w", err)
	}

	p.logger.Info("deleted scheduled event",
		zap.String("movie", movie.Title),
		zap.String("event_id", movie.ScheduledEventID))
	return nil
}
