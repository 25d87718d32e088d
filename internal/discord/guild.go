package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/popcornbot/movienight/internal/schedule"
)

// Guild adapts a discordgo session bound to a single guild to the
// schedule.GuildClient interface.
type Guild struct {
	session *discordgo.Session
	guildID string
}

// NewGuild wraps the session for the given guild.
func NewGuild(session *discordgo.Session, guildID string) *Guild {
	return &Guild{session: session, guildID: guildID}
}

// GuildID returns the bound guild's id.
func (g *Guild) GuildID() string {
	return g.guildID
}

// VoiceChannels lists the guild's voice channels.
func (g *Guild) VoiceChannels(ctx context.Context) ([]schedule.VoiceChannel, error) {
	channels, err := g.session.GuildChannels(g.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("guild channels: %w", err)
	}

	var voice []schedule.VoiceChannel
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildVoice {
			continue
		}
		voice = append(voice, schedule.VoiceChannel{ID: ch.ID, Name: ch.Name})
	}
	return voice, nil
}

// ScheduledEvents snapshots the guild's scheduled events.
func (g *Guild) ScheduledEvents(ctx context.Context) ([]schedule.Event, error) {
	events, err := g.session.GuildScheduledEvents(g.guildID, false, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("guild scheduled events: %w", err)
	}

	snapshot := make([]schedule.Event, 0, len(events))
	for _, e := range events {
		snapshot = append(snapshot, schedule.Event{
			ID:        e.ID,
			Name:      e.Name,
			ChannelID: e.ChannelID,
			Start:     e.ScheduledStartTime,
			End:       e.ScheduledEndTime,
		})
	}
	return snapshot, nil
}

// CreateScheduledEvent creates a voice scheduled event and returns its id.
func (g *Guild) CreateScheduledEvent(ctx context.Context, params schedule.CreateEventParams) (string, error) {
	start := params.Start
	end := params.End

	event, err := g.session.GuildScheduledEventCreate(g.guildID, &discordgo.GuildScheduledEventParams{
		Name:               params.Name,
		Description:        params.Description,
		ChannelID:          params.ChannelID,
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
		EntityType:         discordgo.GuildScheduledEventEntityTypeVoice,
		PrivacyLevel:       discordgo.GuildScheduledEventPrivacyLevelGuildOnly,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("create guild scheduled event: %w", err)
	}
	return event.ID, nil
}

// DeleteScheduledEvent deletes a scheduled event by id.
func (g *Guild) DeleteScheduledEvent(ctx context.Context, eventID string) error {
	if err := g.session.GuildScheduledEventDelete(g.guildID, eventID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete guild scheduled event: %w", err)
	}
	return nil
}
