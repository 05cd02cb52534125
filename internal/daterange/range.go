// Package daterange produces the calendar-date windows used to fetch commit
// activity, and converts between local calendar dates and the UTC instants
// the GitHub API expects.
package daterange

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used throughout the system.
const DateLayout = "2006-01-02"

// Range is an inclusive window of local calendar dates.
type Range struct {
	Start string // YYYY-MM-DD
	End   string // YYYY-MM-DD
}

// DateString formats t as a local calendar date.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the single-day range covering now.
func Today(now time.Time) Range {
	d := DateString(now)
	return Range{Start: d, End: d}
}

// Yesterday returns the single-day range covering the day before now.
func Yesterday(now time.Time) Range {
	d := DateString(now.AddDate(0, 0, -1))
	return Range{Start: d, End: d}
}

// ThisWeek returns Monday of the current ISO week through today.
func ThisWeek(now time.Time) Range {
	return Range{Start: DateString(startOfISOWeek(now)), End: DateString(now)}
}

// LastWeek returns Monday through Sunday of the previous ISO week.
func LastWeek(now time.Time) Range {
	start := startOfISOWeek(now.AddDate(0, 0, -7))
	return Range{Start: DateString(start), End: DateString(start.AddDate(0, 0, 6))}
}

// LastFriday returns the most recent Friday before today, through today.
// A Friday never resolves to itself: on Fridays the window starts seven
// days back, at the previous occurrence. Callers wanting today use Today.
func LastFriday(now time.Time) Range {
	var back int
	switch wd := now.Weekday(); {
	case wd == time.Sunday:
		back = 2
	case wd <= time.Friday:
		back = int(wd) + 2 // Monday 3 ... Friday 7
	default: // Saturday
		back = 1
	}
	return Range{Start: DateString(now.AddDate(0, 0, -back)), End: DateString(now)}
}

// startOfISOWeek returns the Monday of the week containing t.
func startOfISOWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started six days earlier
	}
	return t.AddDate(0, 0, -(wd - 1))
}

// StartOfDayUTC converts a local calendar date to the UTC instant at which
// that day begins in loc. The bare date is deliberately parsed together with
// a midnight clock time in the caller's zone: parsing "YYYY-MM-DD" alone as
// UTC shifts the displayed day backward in negative-offset zones.
func StartOfDayUTC(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+"T15:04:05", date+"T00:00:00", loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.UTC(), nil
}

// EndOfDayUTC converts a local calendar date to the UTC instant 23:59:59 of
// that day in loc.
func EndOfDayUTC(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+"T15:04:05", date+"T23:59:59", loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.UTC(), nil
}

// Contains reports whether ts falls within r when interpreted as a calendar
// date in loc.
func (r Range) Contains(ts time.Time, loc *time.Location) bool {
	d := DateString(ts.In(loc))
	return d >= r.Start && d <= r.End
}
