package academic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Interval is a half-open time range [Start, End) in minutes from midnight.
// Slots that merely touch at an endpoint do not overlap.
type Interval struct {
	Start int
	End   int
}

// ParseSlotTime converts an "HH:MM" string to minutes from midnight
func ParseSlotTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return hour*60 + minute, nil
}

// NewInterval builds an Interval from "HH:MM" boundaries, rejecting
// zero-length and inverted ranges.
func NewInterval(startTime, endTime string) (Interval, error) {
	start, err := ParseSlotTime(startTime)
	if err != nil {
		return Interval{}, err
	}

	end, err := ParseSlotTime(endTime)
	if err != nil {
		return Interval{}, err
	}

	if end <= start {
		return Interval{}, fmt.Errorf("end time %q must be after start time %q", endTime, startTime)
	}

	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any minute
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// TermFor maps a calendar date to its academic term. August through
// December is FALL, January through May is SPRING, June and July SUMMER.
func TermFor(t time.Time) (string, int) {
	switch {
	case t.Month() >= time.August:
		return "FALL", t.Year()
	case t.Month() <= time.May:
		return "SPRING", t.Year()
	default:
		return "SUMMER", t.Year()
	}
}

// WeekdayOf returns the uppercase weekday name used by timetable slots
func WeekdayOf(t time.Time) string {
	return strings.ToUpper(t.Weekday().String())
}
