package compose

import (
	"standup-tracker/internal/domain/entity"
)

// Selection tracks which fetched commits the user wants to attach to the
// entry being composed. It is keyed by sha and scoped to one fetch: Reset
// discards any prior state and re-applies the select-all default.
type Selection struct {
	commits  []entity.Commit // the current fetch, in display order
	selected map[string]bool
}

// NewSelection returns a selection over the given fetch with every commit
// selected, matching the auto-select-all default applied after each fetch.
func NewSelection(commits []entity.Commit) *Selection {
	s := &Selection{}
	s.Reset(commits)
	return s
}

// Reset replaces the underlying fetch and selects everything.
func (s *Selection) Reset(commits []entity.Commit) {
	s.commits = commits
	s.selected = make(map[string]bool, len(commits))
	for _, c := range commits {
		s.selected[c.SHA] = true
	}
}

// Toggle flips one commit. Unknown shas are ignored.
func (s *Selection) Toggle(sha string) {
	if _, ok := s.selected[sha]; ok {
		s.selected[sha] = !s.selected[sha]
	}
}

// IsSelected reports whether the commit is currently selected.
func (s *Selection) IsSelected(sha string) bool {
	return s.selected[sha]
}

// SetDay selects or deselects every commit in one day bucket.
func (s *Selection) SetDay(group DayGroup, selected bool) {
	for _, c := range group.Commits {
		if _, ok := s.selected[c.SHA]; ok {
			s.selected[c.SHA] = selected
		}
	}
}

// SetAll selects or deselects every fetched commit.
func (s *Selection) SetAll(selected bool) {
	for sha := range s.selected {
		s.selected[sha] = selected
	}
}

// Count returns how many commits are currently selected.
func (s *Selection) Count() int {
	n := 0
	for _, sel := range s.selected {
		if sel {
			n++
		}
	}
	return n
}

// Snapshot returns a value copy of the selected commits in fetch order, each
// annotated with the branch they were pulled from. This is the exact commit
// list attached to a new standup entry at submit time.
func (s *Selection) Snapshot(branch string) []entity.Commit {
	out := make([]entity.Commit, 0, len(s.commits))
	for _, c := range s.commits {
		if s.selected[c.SHA] {
			c.Branch = branch
			out = append(out, c)
		}
	}
	return out
}
