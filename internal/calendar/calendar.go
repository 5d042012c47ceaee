package calendar

import (
	"fmt"
	"strings"
	"time"
)

// HoursPerDay is the length of one crew working day.
const HoursPerDay = 8

// DateLayout is the wire and storage format for date-only values.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight of its calendar day. The calendar day is
// read in t's own location and the result is expressed in UTC so that
// date-only values compare and format identically on every host.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWorkday reports whether t falls on Monday through Friday.
// There is no holiday calendar.
func IsWorkday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// AddDays returns the date-only value n calendar days after t.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// NextWorkday returns the first workday strictly after t.
func NextWorkday(t time.Time) time.Time {
	d := AddDays(t, 1)
	for !IsWorkday(d) {
		d = AddDays(d, 1)
	}
	return d
}

// AddWorkDuration consumes durationDays*HoursPerDay labor hours starting on
// start, at most HoursPerDay per workday, skipping weekends. It returns the
// last workday touched. A one-day duration therefore ends on start itself
// when start is a workday. Non-positive durations return DateOnly(start).
func AddWorkDuration(start time.Time, durationDays float64) time.Time {
	current := DateOnly(start)
	if durationDays <= 0 {
		return current
	}

	remaining := durationDays * HoursPerDay
	end := current
	for {
		if IsWorkday(current) {
			remaining -= min(HoursPerDay, remaining)
			end = current
		}
		if remaining <= 0 {
			return end
		}
		current = AddDays(current, 1)
	}
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return DateOnly(t).Format(DateLayout)
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns the
// date-only value.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return DateOnly(t), nil
}

// DaysBetween returns the whole calendar days from a to b (negative when b
// precedes a).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
