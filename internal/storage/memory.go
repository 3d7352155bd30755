// Package storage provides action journal implementations.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

// Compile-time interface check.
var _ domain.Journal = (*MemoryJournal)(nil)

// MemoryJournal is an in-memory action journal. Safe for concurrent access.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries []domain.JournalEntry
	log     *logger.Logger
}

// NewMemoryJournal creates an empty in-memory journal.
func NewMemoryJournal(log *logger.Logger) *MemoryJournal {
	return &MemoryJournal{log: log}
}

// Append records an entry. Sequence numbers must increase.
func (j *MemoryJournal) Append(ctx context.Context, entry domain.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if n := len(j.entries); n > 0 && entry.Seq <= j.entries[n-1].Seq {
		return fmt.Errorf("journal entry %d after %d: out of order", entry.Seq, j.entries[n-1].Seq)
	}
	j.log.Debug("journal #%d round=%d %s: %s", entry.Seq, entry.Round, entry.Player, entry.Action)
	j.entries = append(j.entries, entry)
	return nil
}

// Entries returns every entry in the order it was appended.
func (j *MemoryJournal) Entries(ctx context.Context) ([]domain.JournalEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return append([]domain.JournalEntry(nil), j.entries...), nil
}

// Last returns the most recent entry.
func (j *MemoryJournal) Last(ctx context.Context) (domain.JournalEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if len(j.entries) == 0 {
		return domain.JournalEntry{}, domain.ErrNotFound
	}
	return j.entries[len(j.entries)-1], nil
}

// Len returns the number of entries.
func (j *MemoryJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Reset drops every entry.
func (j *MemoryJournal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
	j.log.Debug("journal reset")
}
