package compose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standup-tracker/internal/domain/entity"
)

func testCommits() []entity.Commit {
	base := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	c := make([]entity.Commit, 0, 3)
	for i, sha := range []string{"sha-a", "sha-b", "sha-c"} {
		ts := base.Add(time.Duration(i) * time.Hour)
		c = append(c, entity.Commit{SHA: sha, Message: "m", AuthorDate: &ts})
	}
	return c
}

func TestSelection_DefaultsToAll(t *testing.T) {
	sel := NewSelection(testCommits())
	assert.Equal(t, 3, sel.Count())
	assert.True(t, sel.IsSelected("sha-b"))
}

func TestSelection_Toggle(t *testing.T) {
	sel := NewSelection(testCommits())

	sel.Toggle("sha-b")
	assert.False(t, sel.IsSelected("sha-b"))
	assert.Equal(t, 2, sel.Count())

	sel.Toggle("sha-b")
	assert.True(t, sel.IsSelected("sha-b"))

	// Unknown shas are ignored rather than added.
	sel.Toggle("not-fetched")
	assert.Equal(t, 3, sel.Count())
	assert.False(t, sel.IsSelected("not-fetched"))
}

func TestSelection_SetDayAndSetAll(t *testing.T) {
	commits := testCommits()
	sel := NewSelection(commits)

	day := DayGroup{Date: "2026-02-02", Commits: commits[:2]}
	sel.SetDay(day, false)
	assert.Equal(t, 1, sel.Count())
	assert.True(t, sel.IsSelected("sha-c"))

	sel.SetDay(day, true)
	assert.Equal(t, 3, sel.Count())

	sel.SetAll(false)
	assert.Equal(t, 0, sel.Count())
	sel.SetAll(true)
	assert.Equal(t, 3, sel.Count())
}

func TestSelection_ResetDiscardsPriorState(t *testing.T) {
	sel := NewSelection(testCommits())
	sel.Toggle("sha-a")
	require.Equal(t, 2, sel.Count())

	// A re-fetch replaces the scope and re-applies select-all.
	ts := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	sel.Reset([]entity.Commit{{SHA: "sha-z", AuthorDate: &ts}})
	assert.Equal(t, 1, sel.Count())
	assert.True(t, sel.IsSelected("sha-z"))
	assert.False(t, sel.IsSelected("sha-a"))
}

func TestSelection_Snapshot(t *testing.T) {
	commits := testCommits()
	sel := NewSelection(commits)
	sel.Toggle("sha-b")

	snap := sel.Snapshot("main")
	require.Len(t, snap, 2)
	assert.Equal(t, "sha-a", snap[0].SHA)
	assert.Equal(t, "sha-c", snap[1].SHA)
	assert.Equal(t, "main", snap[0].Branch)

	// The snapshot is a value copy: mutating it must not leak back into the
	// live fetch list.
	snap[0].Message = "rewritten"
	assert.Equal(t, "m", commits[0].Message)
	assert.Empty(t, commits[0].Branch)
}
