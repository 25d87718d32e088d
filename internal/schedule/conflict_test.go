package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestOverlaps(t *testing.T) {
	loc := toronto(t)
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 1, 2, hour, minute, 0, 0, loc)
	}

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint before", at(10, 0), at(11, 0), at(12, 0), at(13, 0), false},
		{"disjoint after", at(14, 0), at(15, 0), at(12, 0), at(13, 0), false},
		{"contained", at(12, 15), at(12, 45), at(12, 0), at(13, 0), true},
		{"containing", at(11, 0), at(14, 0), at(12, 0), at(13, 0), true},
		{"partial overlap", at(12, 30), at(13, 30), at(12, 0), at(13, 0), true},
		{"touching end to start blocks", at(11, 0), at(12, 0), at(12, 0), at(13, 0), true},
		{"touching start to end blocks", at(13, 0), at(14, 0), at(12, 0), at(13, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestSlotBlocked(t *testing.T) {
	loc := toronto(t)
	logger := zap.NewNop()

	channels := []VoiceChannel{
		{ID: "100", Name: "general"},
		{ID: "200", Name: DefaultChannelName},
	}

	weekStart := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)
	weekEnd := weekStart.AddDate(0, 0, 7)
	cand := candidate{
		start:     time.Date(2024, 1, 2, 19, 45, 0, 0, loc),
		end:       time.Date(2024, 1, 2, 21, 40, 0, 0, loc),
		weekStart: weekStart,
		weekEnd:   weekEnd,
	}

	t.Run("missing meeting channel blocks everything", func(t *testing.T) {
		others := []VoiceChannel{{ID: "100", Name: "general"}}
		assert.True(t, slotBlocked(others, nil, DefaultChannelName, "Dune", cand, logger))
	})

	t.Run("free calendar is not blocked", func(t *testing.T) {
		assert.False(t, slotBlocked(channels, nil, DefaultChannelName, "Dune", cand, logger))
	})

	t.Run("overlapping event blocks", func(t *testing.T) {
		events := []Event{{
			Name:      "Movie Night - Heat",
			ChannelID: "200",
			Start:     time.Date(2024, 1, 2, 19, 0, 0, 0, loc),
			End:       endAt(time.Date(2024, 1, 2, 21, 30, 0, 0, loc)),
		}}
		assert.True(t, slotBlocked(channels, events, DefaultChannelName, "Dune", cand, logger))
	})

	t.Run("event in another channel is ignored", func(t *testing.T) {
		events := []Event{{
			Name:      "Movie Night - Heat",
			ChannelID: "100",
			Start:     time.Date(2024, 1, 2, 19, 0, 0, 0, loc),
			End:       endAt(time.Date(2024, 1, 2, 21, 30, 0, 0, loc)),
		}}
		assert.False(t, slotBlocked(channels, events, DefaultChannelName, "Dune", cand, logger))
	})

	t.Run("event without channel is ignored", func(t *testing.T) {
		events := []Event{{
			Name:  "Movie Night - Heat",
			Start: time.Date(2024, 1, 2, 19, 0, 0, 0, loc),
		}}
		assert.False(t, slotBlocked(channels, events, DefaultChannelName, "Dune", cand, logger))
	})

	t.Run("missing end defaults to three hours", func(t *testing.T) {
		// 17:00 start with no end reaches 20:00, past the 19:45 candidate.
		events := []Event{{
			Name:      "Movie Night - Heat",
			ChannelID: "200",
			Start:     time.Date(2024, 1, 2, 17, 0, 0, 0, loc),
		}}
		assert.True(t, slotBlocked(channels, events, DefaultChannelName, "Dune", cand, logger))

		// 14:00 start with no end finishes 17:00, clear of the candidate.
		events[0].Start = time.Date(2024, 1, 2, 14, 0, 0, 0, loc)
		assert.False(t, slotBlocked(channels, events, DefaultChannelName, "Dune", cand, logger))
	})

	t.Run("duplicate name in search week blocks", func(t *testing.T) {
		events := []Event{{
			Name:      EventTitlePrefix + "Dune",
			ChannelID: "200",
			Start:     time.Date(2024, 1, 7, 18, 30, 0, 0, loc),
			End:       endAt(time.Date(2024, 1, 7, 21, 30, 0, 0, loc)),
		}}
		assert.True(t, slotBlocked(channels, events, DefaultChannelName, "Dune", cand, logger))
	})

	t.Run("duplicate name outside search week does not block", func(t *testing.T) {
		events := []Event{{
			Name:      EventTitlePrefix + "Dune",
			ChannelID: "200",
			Start:     time.Date(2024, 1, 14, 18, 30, 0, 0, loc),
			End:       endAt(time.Date(2024, 1, 14, 21, 30, 0, 0, loc)),
		}}
		assert.False(t, slotBlocked(channels, events, DefaultChannelName, "Dune", cand, logger))
	})

	t.Run("different title with same prefix does not match", func(t *testing.T) {
		events := []Event{{
			Name:      EventTitlePrefix + "Dune: Part Two",
			ChannelID: "200",
			Start:     time.Date(2024, 1, 7, 18, 30, 0, 0, loc),
			End:       endAt(time.Date(2024, 1, 7, 21, 30, 0, 0, loc)),
		}}
		assert.False(t, slotBlocked(channels, events, DefaultChannelName, "Dune", cand, logger))
	})
}
