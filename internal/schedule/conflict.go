package schedule

import (
	"time"

	"go.uber.org/zap"
)

// candidate is one concrete slot under consideration: the reserved interval
// plus the 7-day search window of the pass that produced it.
type candidate struct {
	start     time.Time
	end       time.Time
	weekStart time.Time
	weekEnd   time.Time
}

// slotBlocked reports whether the candidate cannot be used. It is deliberately
// conservative: if the meeting channel cannot be found, every slot is treated
// as blocked rather than risking an event in the wrong channel.
//
// An existing event in the meeting channel blocks the candidate when either
// its name equals EventTitlePrefix+title and it starts inside the candidate's
// search week (the same movie is already booked that week), or its interval
// overlaps the candidate's. Overlap is closed-interval: touching endpoints
// block, so back-to-back bookings are not allowed.
func slotBlocked(channels []VoiceChannel, events []Event, channelName, title string, c candidate, logger *zap.Logger) bool {
	channel, ok := findChannel(channels, channelName)
	if !ok {
		logger.Error("meeting channel not found, refusing to schedule",
			zap.String("channel", channelName))
		return true
	}

	for _, e := range events {
		if e.ChannelID == "" || e.ChannelID != channel.ID {
			continue
		}

		if e.Name == EventTitlePrefix+title && !e.Start.Before(c.weekStart) && e.Start.Before(c.weekEnd) {
			logger.Info("duplicate movie event in search week",
				zap.String("event", e.Name),
				zap.Time("event_start", e.Start))
			return true
		}

		eStart := e.Start
		eEnd := eStart.Add(DefaultEventDuration)
		if e.End != nil {
			eEnd = *e.End
		}

		if overlaps(c.start, c.end, eStart, eEnd) {
			logger.Info("slot blocked by existing event",
				zap.String("event", e.Name),
				zap.Time("start", c.start))
			return true
		}
	}

	return false
}

// overlaps reports whether [aStart, aEnd] and [bStart, bEnd] intersect,
// endpoints included.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(aEnd.Before(bStart) || aStart.After(bEnd))
}
