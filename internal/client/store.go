package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
)

// EntryCache is the slice of the local cache the Store depends on.
type EntryCache interface {
	List() ([]entity.StandupEntry, error)
	ReplaceAll(entries []entity.StandupEntry) error
}

// Notifier surfaces mutation outcomes to the user without blocking the flow.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Store owns the in-memory standup list for the signed-in user. Load
// reconciles the local cache with the server; Create/Update/Delete apply
// mutations optimistically and reconcile with the server response.
//
// The Store is meant to be driven from a single goroutine, mirroring the
// event-loop ownership of the original client. It does no locking.
type Store struct {
	api    API
	cache  EntryCache
	notify Notifier
	logger *slog.Logger

	entries []entity.StandupEntry
}

// NewStore creates a store over the given API and cache.
func NewStore(api API, cache EntryCache, notify Notifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{api: api, cache: cache, notify: notify, logger: logger}
}

// Entries returns a copy of the current in-memory list.
func (s *Store) Entries() []entity.StandupEntry {
	out := make([]entity.StandupEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Load establishes the authoritative in-memory list for this session.
//
// Server records, once any exist, win unconditionally: the local cache is
// neither merged nor replayed. Only the exact combination "server empty AND
// cache non-empty" triggers the one-time upward migration, so a user who
// legitimately has zero standups never causes spurious create calls.
func (s *Store) Load(ctx context.Context) error {
	serverEntries, err := s.api.ListStandups(ctx)
	if err != nil {
		// Leave whatever the cache holds as the visible state; a retry
		// requires a fresh Load.
		cached, cacheErr := s.cache.List()
		if cacheErr != nil {
			s.logger.Warn("local cache unreadable during failed load", "error", cacheErr)
		} else {
			s.entries = cached
		}
		return fmt.Errorf("failed to load standups: %w", err)
	}

	if len(serverEntries) > 0 {
		s.adopt(serverEntries)
		return nil
	}

	cached, err := s.cache.List()
	if err != nil {
		s.logger.Warn("local cache unreadable, starting empty", "error", err)
		cached = nil
	}

	if len(cached) == 0 {
		s.adopt([]entity.StandupEntry{})
		return nil
	}

	s.migrate(ctx, cached)

	// Adopt whatever the server now holds, server-assigned ids included.
	migrated, err := s.api.ListStandups(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload standups after migration: %w", err)
	}
	s.adopt(migrated)
	return nil
}

// migrate submits cached entries to the server one at a time, in original
// order. Individual failures are logged and skipped; they never abort the
// rest of the batch.
func (s *Store) migrate(ctx context.Context, cached []entity.StandupEntry) {
	s.logger.Info("migrating local standups to server", "count", len(cached))
	for _, entry := range cached {
		if _, err := s.api.CreateStandup(ctx, entry); err != nil {
			s.logger.Warn("failed to migrate standup", "id", entry.ID, "date", entry.Date, "error", err)
		}
	}
}

// Create applies the new entry locally, then persists it. On success the
// temporary id is swapped for the server-assigned one in place. On failure
// the entry stays in the list for the user to retry or discard; create is
// deliberately not rolled back.
func (s *Store) Create(ctx context.Context, entry entity.StandupEntry) error {
	entry.ID = uuid.New()
	if strings.TrimSpace(entry.Blockers) == "" {
		entry.Blockers = entity.DefaultBlockers
	}
	if entry.TaskIDs == nil {
		entry.TaskIDs = []string{}
	}
	entry.Commits = entity.CloneCommits(entry.Commits)
	entry.CreatedAt = time.Now()

	s.entries = append([]entity.StandupEntry{entry}, s.entries...)
	s.persist()

	created, err := s.api.CreateStandup(ctx, entry)
	if err != nil {
		s.notify.Error("Failed to create standup")
		return err
	}

	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries[i] = *created
			break
		}
	}
	s.persist()
	s.notify.Success("Standup created!")
	return nil
}

// Update applies the changes locally, then persists them. On failure the
// entry is restored from its pre-mutation snapshot.
func (s *Store) Update(ctx context.Context, id uuid.UUID, upd entity.StandupUpdate) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("standup %s: %w", id, entity.ErrNotFound)
	}

	snapshot := s.entries[idx]
	applyUpdate(&s.entries[idx], upd)
	s.persist()

	updated, err := s.api.UpdateStandup(ctx, id, upd)
	if err != nil {
		s.entries[idx] = snapshot
		s.persist()
		s.notify.Error("Failed to update standup")
		return err
	}

	s.entries[idx] = *updated
	s.persist()
	s.notify.Success("Standup updated!")
	return nil
}

// Delete removes the entry locally, then persists the removal. On failure
// the entry reappears at its original position.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("standup %s: %w", id, entity.ErrNotFound)
	}

	snapshot := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.persist()

	if err := s.api.DeleteStandup(ctx, id); err != nil {
		rest := s.entries[idx:]
		s.entries = append(s.entries[:idx:idx], snapshot)
		s.entries = append(s.entries, rest...)
		s.persist()
		s.notify.Error("Failed to delete standup")
		return err
	}

	s.notify.Success("Standup deleted!")
	return nil
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) adopt(entries []entity.StandupEntry) {
	s.entries = entries
	s.persist()
}

// persist writes the in-memory list through to the local cache. Cache write
// failures degrade to a log line; the in-memory state stays authoritative.
func (s *Store) persist() {
	if err := s.cache.ReplaceAll(s.entries); err != nil {
		s.logger.Warn("failed to persist standups to local cache", "error", err)
	}
}

func applyUpdate(entry *entity.StandupEntry, upd entity.StandupUpdate) {
	if upd.Date != nil {
		entry.Date = *upd.Date
	}
	if upd.WorkCompleted != nil {
		entry.WorkCompleted = *upd.WorkCompleted
	}
	if upd.WorkPlanned != nil {
		entry.WorkPlanned = *upd.WorkPlanned
	}
	if upd.Blockers != nil {
		entry.Blockers = *upd.Blockers
	}
	if upd.TaskIDs != nil {
		entry.TaskIDs = upd.TaskIDs
	}
	entry.UpdatedAt = time.Now()
}
