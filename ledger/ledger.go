package ledger

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tskauto/dealership-api/models"
	"github.com/tskauto/dealership-api/storage"
)

// MaxRecords caps the ledger: appending beyond it drops the oldest
// records by insertion order.
const MaxRecords = 200

// Ledger owns the invoice history: an ordered record sequence, newest
// first, persisted as one JSON blob after every mutation. A single Ledger
// is constructed at startup and shared by all handlers, so mutations are
// serialized with a mutex.
type Ledger struct {
	mu      sync.RWMutex
	records []models.InvoiceRecord
	store   storage.Store
	log     zerolog.Logger

	// Now is swapped out in tests that exercise date-range filtering.
	Now func() time.Time
}

// New loads the persisted history once. A missing blob starts empty; a
// blob that fails to parse degrades to an empty ledger with a logged
// diagnostic rather than an error.
func New(store storage.Store, log zerolog.Logger) *Ledger {
	l := &Ledger{
		store: store,
		log:   log.With().Str("component", "ledger").Logger(),
		Now:   time.Now,
	}

	data, err := store.Load()
	if err != nil {
		l.log.Warn().Err(err).Msg("failed to load invoice history, starting empty")
		return l
	}
	if data == nil {
		return l
	}
	if err := json.Unmarshal(data, &l.records); err != nil {
		l.log.Warn().Err(err).Msg("invoice history blob is corrupt, starting empty")
		l.records = nil
	}
	return l
}

// Append adds rec at the front and truncates the tail to MaxRecords, then
// persists the full history. The in-memory history only changes when the
// persist succeeds.
func (l *Ledger) Append(rec models.InvoiceRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.records
	l.records = append([]models.InvoiceRecord{rec}, l.records...)
	if len(l.records) > MaxRecords {
		l.records = l.records[:MaxRecords]
	}
	if err := l.persist(); err != nil {
		l.records = prev
		return err
	}
	return nil
}

// Remove deletes the record with the given id. A missing id is a silent
// no-op, not an error. As with Append, a failed persist leaves the
// history unchanged.
func (l *Ledger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, rec := range l.records {
		if rec.ID != id {
			continue
		}
		next := make([]models.InvoiceRecord, 0, len(l.records)-1)
		next = append(next, l.records[:i]...)
		next = append(next, l.records[i+1:]...)

		prev := l.records
		l.records = next
		if err := l.persist(); err != nil {
			l.records = prev
			return err
		}
		return nil
	}
	return nil
}

// Clear empties the ledger and deletes the persisted blob. The in-memory
// history survives a failed delete.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Delete(); err != nil {
		return fmt.Errorf("failed to clear invoice history: %w", err)
	}
	l.records = nil
	return nil
}

// Find returns the record with the given id.
func (l *Ledger) Find(id string) (models.InvoiceRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, rec := range l.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.InvoiceRecord{}, false
}

// Len reports the number of stored records.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

func (l *Ledger) persist() error {
	data, err := json.Marshal(l.records)
	if err != nil {
		return fmt.Errorf("failed to encode invoice history: %w", err)
	}
	if err := l.store.Save(data); err != nil {
		return fmt.Errorf("failed to persist invoice history: %w", err)
	}
	return nil
}
