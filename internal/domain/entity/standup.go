package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Commit is a snapshot of a source-control commit attached to a standup entry.
// It is read-only data sourced from the GitHub API; Branch is annotated locally
// after fetch since the list-commits endpoint does not return it.
type Commit struct {
	SHA        string     `json:"sha"`
	Message    string     `json:"message"`
	AuthorName string     `json:"authorName,omitempty"`
	AuthorDate *time.Time `json:"authorDate,omitempty"` // nil for merge/synthetic commits
	Branch     string     `json:"branch,omitempty"`
}

// Summary returns the first line of the commit message.
func (c *Commit) Summary() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}

// ShortSHA returns the abbreviated commit identifier used for display.
func (c *Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// DefaultBlockers is persisted when the user leaves the blockers field blank.
const DefaultBlockers = "None"

// StandupEntry represents a single daily work-log entry.
type StandupEntry struct {
	ID     uuid.UUID
	UserID string // GitHub user ID

	// The calendar day the entry is for, YYYY-MM-DD. Distinct from CreatedAt.
	Date string

	WorkCompleted string
	WorkPlanned   string
	Blockers      string

	TaskIDs      []string
	Commits      []Commit // immutable snapshot taken at creation time
	RepoFullName string   // "owner/repo" the commits came from

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StandupUpdate carries a partial update of the editable standup fields.
// Nil means "leave unchanged".
type StandupUpdate struct {
	Date          *string
	WorkCompleted *string
	WorkPlanned   *string
	Blockers      *string
	TaskIDs       []string
}

// CloneCommits returns a value copy of the commit snapshot so that later
// mutation of a live commit list cannot alter a saved entry.
func CloneCommits(commits []Commit) []Commit {
	if commits == nil {
		return []Commit{}
	}
	out := make([]Commit, len(commits))
	copy(out, commits)
	return out
}
