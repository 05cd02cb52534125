package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// localDate builds a time at noon on the given date in loc, so the tests
// never sit on a day boundary by accident.
func localDate(t *testing.T, date string, loc *time.Location) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(DateLayout, date, loc)
	require.NoError(t, err)
	return ts.Add(12 * time.Hour)
}

func TestToday(t *testing.T) {
	now := localDate(t, "2026-02-03", time.UTC)
	r := Today(now)
	assert.Equal(t, Range{Start: "2026-02-03", End: "2026-02-03"}, r)
}

func TestYesterday(t *testing.T) {
	now := localDate(t, "2026-02-03", time.UTC)
	r := Yesterday(now)
	assert.Equal(t, Range{Start: "2026-02-02", End: "2026-02-02"}, r)

	// Across a month boundary.
	r = Yesterday(localDate(t, "2026-03-01", time.UTC))
	assert.Equal(t, Range{Start: "2026-02-28", End: "2026-02-28"}, r)
}

func TestThisWeek(t *testing.T) {
	// 2026-02-03 is a Tuesday; the ISO week starts Monday 2026-02-02.
	r := ThisWeek(localDate(t, "2026-02-03", time.UTC))
	assert.Equal(t, Range{Start: "2026-02-02", End: "2026-02-03"}, r)

	// On a Monday the range is a single day.
	r = ThisWeek(localDate(t, "2026-02-02", time.UTC))
	assert.Equal(t, Range{Start: "2026-02-02", End: "2026-02-02"}, r)

	// Sunday still belongs to the week that started the previous Monday.
	r = ThisWeek(localDate(t, "2026-02-08", time.UTC))
	assert.Equal(t, Range{Start: "2026-02-02", End: "2026-02-08"}, r)
}

func TestLastWeek(t *testing.T) {
	r := LastWeek(localDate(t, "2026-02-03", time.UTC))
	assert.Equal(t, Range{Start: "2026-01-26", End: "2026-02-01"}, r)

	// From a Sunday, last week is still the full previous Monday-Sunday span.
	r = LastWeek(localDate(t, "2026-02-08", time.UTC))
	assert.Equal(t, Range{Start: "2026-01-26", End: "2026-02-01"}, r)
}

func TestLastFriday(t *testing.T) {
	cases := []struct {
		name  string
		now   string
		start string
	}{
		{"sunday goes back two days", "2026-02-08", "2026-02-06"},
		{"monday goes back three days", "2026-02-02", "2026-01-30"},
		{"tuesday goes back four days", "2026-02-03", "2026-01-30"},
		{"wednesday goes back five days", "2026-02-04", "2026-01-30"},
		{"thursday goes back six days", "2026-02-05", "2026-01-30"},
		{"friday resolves to the previous friday", "2026-02-06", "2026-01-30"},
		{"saturday goes back one day", "2026-02-07", "2026-02-06"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := localDate(t, tc.now, time.UTC)
			r := LastFriday(now)
			assert.Equal(t, tc.start, r.Start)
			assert.Equal(t, tc.now, r.End)

			start, err := time.Parse(DateLayout, r.Start)
			require.NoError(t, err)
			assert.Equal(t, time.Friday, start.Weekday())
			assert.LessOrEqual(t, r.Start, r.End)
		})
	}
}

func TestStartOfDayUTC_InterpretsDateInLocalZone(t *testing.T) {
	// A negative-offset zone is where naive UTC parsing shifts the day back.
	pst := time.FixedZone("PST", -8*3600)

	start, err := StartOfDayUTC("2026-02-03", pst)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC), start)

	// Converted back to local time the boundary is midnight of the same day,
	// not 16:00 of the previous one.
	local := start.In(pst)
	assert.Equal(t, 0, local.Hour())
	assert.Equal(t, "2026-02-03", DateString(local))
}

func TestEndOfDayUTC_InterpretsDateInLocalZone(t *testing.T) {
	pst := time.FixedZone("PST", -8*3600)

	end, err := EndOfDayUTC("2026-02-03", pst)
	require.NoError(t, err)

	local := end.In(pst)
	assert.Equal(t, 23, local.Hour())
	assert.Equal(t, 59, local.Minute())
	assert.Equal(t, "2026-02-03", DateString(local))
}

func TestDayBoundaries_MalformedDate(t *testing.T) {
	_, err := StartOfDayUTC("02/03/2026", time.UTC)
	assert.Error(t, err)

	_, err = EndOfDayUTC("not-a-date", time.UTC)
	assert.Error(t, err)
}

func TestRangeContains(t *testing.T) {
	pst := time.FixedZone("PST", -8*3600)
	r := Range{Start: "2026-02-02", End: "2026-02-03"}

	// 2026-02-03 02:00 UTC is still 2026-02-02 in PST: inside.
	assert.True(t, r.Contains(time.Date(2026, 2, 3, 2, 0, 0, 0, time.UTC), pst))

	// 2026-02-04 02:00 UTC is 2026-02-03 in PST: inside even though the UTC
	// date is past the end of the range.
	assert.True(t, r.Contains(time.Date(2026, 2, 4, 2, 0, 0, 0, time.UTC), pst))

	// 2026-02-02 02:00 UTC is 2026-02-01 in PST: outside.
	assert.False(t, r.Contains(time.Date(2026, 2, 2, 2, 0, 0, 0, time.UTC), pst))
}
