package store

import (
	"errors"

	"github.com/scendash/scendash/pkg/dataset"
)

// ErrNotLoaded is returned by Records before any load has been attempted.
// A failed load returns the recorded load error instead, so callers can tell
// "still loading" apart from "load failed".
var ErrNotLoaded = errors.New("store: dataset not loaded")

// Store holds the records for one dataset session.
// Implementations: memory (the dataset is replaced wholesale on reload and
// is never persisted across restarts).
type Store interface {
	// Replace swaps in a freshly parsed record set, clearing any prior
	// load error.
	Replace(records []dataset.Record)

	// Fail records a terminal load failure. The previous dataset, if any,
	// is discarded: a failed reload must not silently serve stale rows.
	Fail(err error)

	// Records returns the current record set, ErrNotLoaded, or the
	// recorded load error.
	Records() ([]dataset.Record, error)

	// Fingerprint identifies the loaded record set; zero when not loaded.
	Fingerprint() uint64

	// Len reports the number of loaded records.
	Len() int
}
