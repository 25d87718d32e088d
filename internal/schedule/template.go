package schedule

import "time"

const (
	// BufferMinutes is the fixed tail appended to a movie's runtime when
	// reserving a slot, so people can trickle out before the next booking.
	BufferMinutes = 15

	// MaxWeekdayRuntimeMinutes is the longest movie allowed in a slot that is
	// not flagged LongAllowed. Anything above it only fits the main Sunday slot.
	MaxWeekdayRuntimeMinutes = 150

	// DefaultEventDuration is assumed for existing events Discord reports
	// without an end time.
	DefaultEventDuration = 3 * time.Hour

	// EventTitlePrefix is prepended to the movie title in the scheduled event
	// name. Duplicate detection matches on the full prefixed name.
	EventTitlePrefix = "Movie Night - "

	// DefaultChannelName is the voice channel all movie-night events live in,
	// matched exactly against guild channel names, emoji included.
	DefaultChannelName = "🍿movie-theatre"

	// DefaultZone is the zone all slot times are defined in.
	DefaultZone = "America/Toronto"

	// DefaultMaxWeeks caps the forward search; beyond it the scheduler gives
	// up with ErrNoSlotFound instead of scanning forever.
	DefaultMaxWeeks = 52
)

// WeeklySlot is one entry of the weekly template: a wall-clock time on a
// weekday, plus whether long movies are admitted.
type WeeklySlot struct {
	Day         time.Weekday
	Hour        int
	Minute      int
	LongAllowed bool
}

// DefaultTemplate returns the weekly slot template in priority order. The
// early Sunday slot comes first on purpose: it is the only slot long movies
// are allowed in.
func DefaultTemplate() []WeeklySlot {
	return []WeeklySlot{
		{Day: time.Sunday, Hour: 18, Minute: 30, LongAllowed: true},
		{Day: time.Sunday, Hour: 21, Minute: 0, LongAllowed: false},
		{Day: time.Tuesday, Hour: 19, Minute: 45, LongAllowed: false},
		{Day: time.Thursday, Hour: 19, Minute: 45, LongAllowed: false},
	}
}
