package memory

import (
	"fmt"
	"sync"

	"github.com/scendash/scendash/pkg/dataset"
	"github.com/scendash/scendash/pkg/store"
)

// Store keeps the session's dataset in memory. Data is lost on restart,
// which is the intended lifetime of a dataset session.
type Store struct {
	mu          sync.RWMutex
	records     []dataset.Record
	fingerprint uint64
	loaded      bool
	loadErr     error
}

// New creates an empty in-memory session store.
func New() *Store {
	return &Store{}
}

// Replace swaps in a new record set wholesale.
func (s *Store) Replace(records []dataset.Record) {
	fp := dataset.Fingerprint(records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.fingerprint = fp
	s.loaded = true
	s.loadErr = nil
}

// Fail records a terminal load failure and discards any prior dataset.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.fingerprint = 0
	s.loaded = false
	s.loadErr = err
}

// Records returns the loaded record set. The slice is shared, not copied —
// records are immutable after parse, and callers only ever read.
func (s *Store) Records() ([]dataset.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		return nil, fmt.Errorf("store: last load failed: %w", s.loadErr)
	}
	if !s.loaded {
		return nil, store.ErrNotLoaded
	}
	return s.records, nil
}

// Fingerprint returns the hash of the loaded dataset, zero when none.
func (s *Store) Fingerprint() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fingerprint
}

// Len reports the number of loaded records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
