package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/popcornbot/movienight/internal/model"
)

// ErrNoSlotFound is returned when the forward search exhausts its week cap
// without finding a usable slot. With a healthy guild this effectively only
// happens when the meeting channel is missing.
var ErrNoSlotFound = errors.New("schedule: no available slot found")

// ErrMeetingChannelNotFound is returned by the publisher when the meeting
// channel is absent from the guild.
var ErrMeetingChannelNotFound = errors.New("schedule: meeting channel not found")

// Config tunes a Scheduler. Zero values fall back to the compiled-in
// defaults; Now exists so tests can pin the clock.
type Config struct {
	Zone        *time.Location
	ChannelName string
	Template    []WeeklySlot
	MaxWeeks    int
	Now         func() time.Time
}

// Scheduler finds the next free weekly slot for a movie by scanning the slot
// template forward against a single snapshot of the guild's scheduled events.
type Scheduler struct {
	guild       GuildClient
	zone        *time.Location
	channelName string
	template    []WeeklySlot
	maxWeeks    int
	now         func() time.Time
	logger      *zap.Logger
}

// NewScheduler creates a scheduler over the given guild.
func NewScheduler(guild GuildClient, cfg Config, logger *zap.Logger) *Scheduler {
	if cfg.Zone == nil {
		cfg.Zone = time.Local
	}
	if cfg.ChannelName == "" {
		cfg.ChannelName = DefaultChannelName
	}
	if len(cfg.Template) == 0 {
		cfg.Template = DefaultTemplate()
	}
	if cfg.MaxWeeks <= 0 {
		cfg.MaxWeeks = DefaultMaxWeeks
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Scheduler{
		guild:       guild,
		zone:        cfg.Zone,
		channelName: cfg.ChannelName,
		template:    cfg.Template,
		maxWeeks:    cfg.MaxWeeks,
		now:         cfg.Now,
		logger:      logger,
	}
}

// FindNextAvailableSlot returns the start of the next usable slot for a movie
// with the given runtime. The reserved interval is runtime plus the buffer.
//
// Channels and events are fetched once; the whole search runs against that
// snapshot, so all candidates are relative to a single clock reading,
// re-anchored only by whole weeks.
func (s *Scheduler) FindNextAvailableSlot(ctx context.Context, runtimeMinutes int, movie *model.Movie) (time.Time, error) {
	channels, err := s.guild.VoiceChannels(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("list voice channels: %w", err)
	}

	events, err := s.guild.ScheduledEvents(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("list scheduled events: %w", err)
	}

	searchBase := s.now().In(s.zone)
	reserved := time.Duration(runtimeMinutes+BufferMinutes) * time.Minute

	for week := 0; week < s.maxWeeks; week++ {
		weekEnd := searchBase.AddDate(0, 0, 7)

		for _, c := range s.weekCandidates(searchBase, weekEnd, runtimeMinutes, reserved) {
			if !slotBlocked(channels, events, s.channelName, movie.Title, c, s.logger) {
				s.logger.Info("slot selected",
					zap.String("movie", movie.Title),
					zap.Time("start", c.start),
					zap.Time("end", c.end))
				return c.start, nil
			}
		}

		searchBase = weekEnd
	}

	s.logger.Error("no slot found within search cap",
		zap.String("movie", movie.Title),
		zap.Int("max_weeks", s.maxWeeks))
	return time.Time{}, ErrNoSlotFound
}

// weekCandidates expands the template against one search base, dropping slots
// a long movie is not allowed in, ordered by start time. Template order only
// breaks exact ties, so within a week the earliest usable occurrence wins
// while long movies still land exclusively on the main Sunday slot.
func (s *Scheduler) weekCandidates(base, weekEnd time.Time, runtimeMinutes int, reserved time.Duration) []candidate {
	candidates := make([]candidate, 0, len(s.template))
	for _, slot := range s.template {
		if runtimeMinutes > MaxWeekdayRuntimeMinutes && !slot.LongAllowed {
			continue
		}
		start := NextOccurrence(slot.Day, slot.Hour, slot.Minute, base)
		candidates = append(candidates, candidate{
			start:     start,
			end:       start.Add(reserved),
			weekStart: base,
			weekEnd:   weekEnd,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].start.Before(candidates[j].start)
	})
	return candidates
}
