package schedule

import "time"

// NextOccurrence returns the earliest instant whose wall clock in base's
// location reads hour:minute on the given weekday and which is not before
// base. Equality with base is accepted.
//
// On a spring-forward day where the wall-clock time does not exist, the
// result is whatever time.Date resolves it to for the zone, which is
// deterministic.
func NextOccurrence(day time.Weekday, hour, minute int, base time.Time) time.Time {
	loc := base.Location()

	date := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, loc)
	for date.Weekday() != day {
		date = date.AddDate(0, 0, 1)
	}

	candidate := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)

	// This week's occurrence already passed, take next week's.
	if candidate.Before(base) {
		candidate = candidate.AddDate(0, 0, 7)
	}

	return candidate
}
