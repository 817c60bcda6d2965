// Package filter narrows a record set by per-dimension constraints.
package filter

import (
	"github.com/scendash/scendash/pkg/dataset"
	"github.com/scendash/scendash/pkg/dimensions"
)

// Set holds the active selection: at most one value per dimension. Setting a
// dimension that already has a filter replaces it rather than stacking. A
// value of dimensions.All marks the dimension unconstrained, and an absent
// dimension is treated the same way.
type Set map[dataset.Dimension]string

// Unconstrained reports whether the set places no constraint on d.
func (s Set) Unconstrained(d dataset.Dimension) bool {
	v, ok := s[d]
	return !ok || v == dimensions.All
}

// Engine applies filter sets to records. Exclusions carries the
// dimension-keyed exclusion lists: values dropped when their dimension is
// explicitly filtered to "All". This exists for exactly one legacy case — the
// Region dropdown set to "All" still hides Canada-wide aggregate rows — and
// is configuration, not general filter semantics. No other dimension has an
// exclusion by default.
type Engine struct {
	Exclusions map[dataset.Dimension][]string
}

// DefaultExclusions preserves behavioral parity with the legacy pipeline.
func DefaultExclusions() map[dataset.Dimension][]string {
	return map[dataset.Dimension][]string{
		dataset.Region: {"Canada"},
	}
}

// NewEngine returns an engine with the given exclusion lists; nil means the
// defaults.
func NewEngine(exclusions map[dataset.Dimension][]string) *Engine {
	if exclusions == nil {
		exclusions = DefaultExclusions()
	}
	return &Engine{Exclusions: exclusions}
}

// Apply returns the subsequence of records satisfying every filter in the
// set (logical AND). Matching is exact and case-sensitive on the display
// string of each dimension. Input order is preserved and no rows are ever
// fabricated. An empty set is an identity pass-through.
func (e *Engine) Apply(records []dataset.Record, filters Set) []dataset.Record {
	if len(filters) == 0 {
		return records
	}

	out := make([]dataset.Record, 0, len(records))
	for _, r := range records {
		if e.matches(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func (e *Engine) matches(r dataset.Record, filters Set) bool {
	for d, want := range filters {
		got := r.Field(d)
		if want == dimensions.All {
			if e.excluded(d, got) {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}

func (e *Engine) excluded(d dataset.Dimension, value string) bool {
	for _, ex := range e.Exclusions[d] {
		if value == ex {
			return true
		}
	}
	return false
}
