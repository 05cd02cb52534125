// Package compose organizes fetched commits for standup review: it corrects
// the upstream UTC date filter against the user's local calendar, groups
// commits by day and tracks which of them the user wants to attach.
package compose

import (
	"sort"
	"time"

	"standup-tracker/internal/daterange"
	"standup-tracker/internal/domain/entity"
)

// SortOrder selects the chronological ordering of commits within a day.
type SortOrder string

const (
	// OldestFirst matches narrative reading order for a standup. Default.
	OldestFirst SortOrder = "oldest"
	NewestFirst SortOrder = "newest"
)

// DayGroup is one local calendar day of commits.
type DayGroup struct {
	Date    string // YYYY-MM-DD
	Commits []entity.Commit
}

// FilterByRange keeps the commits whose author timestamp falls within r when
// interpreted as a calendar date in loc. The upstream since/until filter runs
// in UTC, so commits near midnight can leak across the local day boundary in
// either direction; this re-filter is what the user actually sees.
//
// A commit without an author timestamp is treated as authored now and kept.
func FilterByRange(commits []entity.Commit, r daterange.Range, loc *time.Location, now time.Time) []entity.Commit {
	out := make([]entity.Commit, 0, len(commits))
	for _, c := range commits {
		ts := now
		if c.AuthorDate != nil {
			ts = *c.AuthorDate
		}
		if r.Contains(ts, loc) {
			out = append(out, c)
		}
	}
	return out
}

// GroupByDay buckets commits by local calendar date and sorts each bucket by
// author timestamp in the requested order. Buckets come back ascending by
// date. Commits without an author timestamp bucket under now's date.
func GroupByDay(commits []entity.Commit, loc *time.Location, order SortOrder, now time.Time) []DayGroup {
	buckets := make(map[string][]entity.Commit)
	for _, c := range commits {
		ts := now
		if c.AuthorDate != nil {
			ts = *c.AuthorDate
		}
		date := daterange.DateString(ts.In(loc))
		buckets[date] = append(buckets[date], c)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	groups := make([]DayGroup, 0, len(dates))
	for _, date := range dates {
		bucket := buckets[date]
		sort.SliceStable(bucket, func(i, j int) bool {
			ti, tj := authorTime(bucket[i], now), authorTime(bucket[j], now)
			if order == NewestFirst {
				return ti.After(tj)
			}
			return ti.Before(tj)
		})
		groups = append(groups, DayGroup{Date: date, Commits: bucket})
	}
	return groups
}

func authorTime(c entity.Commit, now time.Time) time.Time {
	if c.AuthorDate != nil {
		return *c.AuthorDate
	}
	return now
}
