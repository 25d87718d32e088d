package schedule

import (
	"context"
	"time"
)

// VoiceChannel is the slice of a guild voice channel the scheduler needs.
type VoiceChannel struct {
	ID   string
	Name string
}

// Event is a snapshot of an existing guild scheduled event. ChannelID is
// empty for events that are not bound to a channel. End is nil when Discord
// has no end time for the event.
type Event struct {
	ID        string
	Name      string
	ChannelID string
	Start     time.Time
	End       *time.Time
}

// CreateEventParams describes the scheduled event to publish.
type CreateEventParams struct {
	Name        string
	Description string
	ChannelID   string
	Start       time.Time
	End         time.Time
}

// GuildClient is the scheduler's only view of the chat platform: list the
// guild's voice channels and scheduled events, and create or delete events.
type GuildClient interface {
	VoiceChannels(ctx context.Context) ([]VoiceChannel, error)
	ScheduledEvents(ctx context.Context) ([]Event, error)
	CreateScheduledEvent(ctx context.Context, params CreateEventParams) (string, error)
	DeleteScheduledEvent(ctx context.Context, eventID string) error
}

// findChannel locates a voice channel by exact name, emoji prefix included.
func findChannel(channels []VoiceChannel, name string) (VoiceChannel, bool) {
	for _, ch := range channels {
		if ch.Name == name {
			return ch, true
		}
	}
	return VoiceChannel{}, false
}
