package domain

import "time"

// DateRange is an inclusive range of calendar days. Both endpoints are
// normalized to UTC midnight so date arithmetic is exact.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days is the rental duration: end minus start in whole days.
// A booking from Monday to Tuesday is one rental day.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Overlaps reports whether two inclusive ranges intersect:
// a.start <= b.end AND a.end >= b.start.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

func (r DateRange) Contains(day time.Time) bool {
	d := Day(day)
	return !r.Start.After(d) && !r.End.Before(d)
}

// Validate checks the range against the booking rules: both dates set,
// start not in the past, end not before start.
func (r DateRange) Validate(today time.Time) error {
	if r.Start.IsZero() || r.End.IsZero() {
		return &InvalidRangeError{Reason: "start and end dates are required"}
	}
	if r.Start.Before(Day(today)) {
		return &InvalidRangeError{Reason: "start date cannot be in the past"}
	}
	if r.End.Before(r.Start) {
		return &InvalidRangeError{Reason: "end date cannot be before start date"}
	}
	return nil
}
