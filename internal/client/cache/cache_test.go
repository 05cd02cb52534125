package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standup-tracker/internal/domain/entity"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "standups.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func entryFor(date string) entity.StandupEntry {
	ts := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	return entity.StandupEntry{
		ID:            uuid.New(),
		UserID:        "42",
		Date:          date,
		WorkCompleted: "shipped things",
		WorkPlanned:   "ship more things",
		Blockers:      "None",
		TaskIDs:       []string{},
		Commits:       []entity.Commit{{SHA: "abc1234", Message: "fix", AuthorDate: &ts, Branch: "main"}},
		RepoFullName:  "octocat/widgets",
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

func TestCache_EmptyList(t *testing.T) {
	c := newTestCache(t)
	entries, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCache_ReplaceAllPreservesOrder(t *testing.T) {
	c := newTestCache(t)

	want := []entity.StandupEntry{entryFor("2026-02-03"), entryFor("2026-02-02"), entryFor("2026-02-01")}
	require.NoError(t, c.ReplaceAll(want))

	got, err := c.List()
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Date, got[i].Date)
	}
	// Commit snapshots round-trip intact.
	require.Len(t, got[0].Commits, 1)
	assert.Equal(t, "abc1234", got[0].Commits[0].SHA)
	assert.Equal(t, "main", got[0].Commits[0].Branch)
}

func TestCache_ReplaceAllOverwrites(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.ReplaceAll([]entity.StandupEntry{entryFor("2026-02-01"), entryFor("2026-02-02")}))

	replacement := entryFor("2026-02-05")
	require.NoError(t, c.ReplaceAll([]entity.StandupEntry{replacement}))

	got, err := c.List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, replacement.ID, got[0].ID)
}

func TestCache_ReplaceAllEmptyClears(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.ReplaceAll([]entity.StandupEntry{entryFor("2026-02-01")}))
	require.NoError(t, c.ReplaceAll(nil))

	got, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standups.db")

	c, err := Open(path)
	require.NoError(t, err)
	entry := entryFor("2026-02-02")
	require.NoError(t, c.ReplaceAll([]entity.StandupEntry{entry}))
	require.NoError(t, c.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entry.ID, got[0].ID)
}
