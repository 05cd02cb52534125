package compose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standup-tracker/internal/daterange"
	"standup-tracker/internal/domain/entity"
)

func commitAt(sha string, ts time.Time) entity.Commit {
	return entity.Commit{SHA: sha, Message: "commit " + sha, AuthorDate: &ts}
}

func TestFilterByRange(t *testing.T) {
	pst := time.FixedZone("PST", -8*3600)
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, pst)
	r := daterange.Range{Start: "2026-02-02", End: "2026-02-03"}

	inside := commitAt("aaa1111", time.Date(2026, 2, 2, 15, 0, 0, 0, time.UTC))
	// 2026-02-04 02:00 UTC is still 2026-02-03 locally: must be kept.
	utcLeaked := commitAt("bbb2222", time.Date(2026, 2, 4, 2, 0, 0, 0, time.UTC))
	// 2026-02-02 02:00 UTC is 2026-02-01 locally: must be dropped even though
	// the upstream UTC filter returned it.
	outside := commitAt("ccc3333", time.Date(2026, 2, 2, 2, 0, 0, 0, time.UTC))
	noDate := entity.Commit{SHA: "ddd4444", Message: "merge commit"}

	got := FilterByRange([]entity.Commit{inside, utcLeaked, outside, noDate}, r, pst, now)

	require.Len(t, got, 3)
	assert.Equal(t, "aaa1111", got[0].SHA)
	assert.Equal(t, "bbb2222", got[1].SHA)
	// Missing author metadata is treated as "now", which is inside the range.
	assert.Equal(t, "ddd4444", got[2].SHA)
}

func TestFilterByRange_MissingDateOutsideRange(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, loc)
	r := daterange.Range{Start: "2026-02-02", End: "2026-02-03"}

	// When "now" is outside the window, a dateless commit is excluded too.
	got := FilterByRange([]entity.Commit{{SHA: "eee5555"}}, r, loc, now)
	assert.Empty(t, got)
}

func TestGroupByDay(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, loc)

	fri1 := commitAt("fff0001", time.Date(2026, 1, 30, 9, 0, 0, 0, loc))
	fri2 := commitAt("fff0002", time.Date(2026, 1, 30, 17, 30, 0, 0, loc))
	mon := commitAt("aaa0003", time.Date(2026, 2, 2, 8, 0, 0, 0, loc))

	groups := GroupByDay([]entity.Commit{mon, fri2, fri1}, loc, OldestFirst, now)

	require.Len(t, groups, 2)
	// Buckets ascend by date.
	assert.Equal(t, "2026-01-30", groups[0].Date)
	assert.Equal(t, "2026-02-02", groups[1].Date)
	// Default order inside a bucket is oldest first.
	require.Len(t, groups[0].Commits, 2)
	assert.Equal(t, "fff0001", groups[0].Commits[0].SHA)
	assert.Equal(t, "fff0002", groups[0].Commits[1].SHA)

	newest := GroupByDay([]entity.Commit{mon, fri2, fri1}, loc, NewestFirst, now)
	assert.Equal(t, "fff0002", newest[0].Commits[0].SHA)
	assert.Equal(t, "fff0001", newest[0].Commits[1].SHA)
}

// The end-to-end shape of the "Last Friday on a Tuesday" flow: the range
// starts on the Friday four days back, the Saturday commit is filtered out
// and both Friday commits land in a single default-selected bucket.
func TestLastFridayComposition(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, loc) // Tuesday

	r := daterange.LastFriday(now)
	assert.Equal(t, "2026-01-30", r.Start)
	assert.Equal(t, "2026-02-03", r.End)

	friA := commitAt("aaaa111", time.Date(2026, 1, 30, 10, 0, 0, 0, loc))
	friB := commitAt("bbbb222", time.Date(2026, 1, 30, 16, 0, 0, 0, loc))
	sat := commitAt("cccc333", time.Date(2026, 1, 24, 11, 0, 0, 0, loc)) // previous Saturday, outside

	filtered := FilterByRange([]entity.Commit{friB, sat, friA}, r, loc, now)
	require.Len(t, filtered, 2)

	groups := GroupByDay(filtered, loc, OldestFirst, now)
	require.Len(t, groups, 1)
	assert.Equal(t, "2026-01-30", groups[0].Date)
	require.Len(t, groups[0].Commits, 2)
	assert.Equal(t, "aaaa111", groups[0].Commits[0].SHA)

	sel := NewSelection(filtered)
	assert.Equal(t, 2, sel.Count())
}
