// Package dimensions derives the selectable option lists for each dataset
// dimension. Options are recomputed from scratch whenever the record set
// changes and are never persisted.
package dimensions

import (
	"sort"

	"github.com/scendash/scendash/pkg/dataset"
)

// All is the sentinel option meaning "dimension unconstrained". It is always
// the first entry of every option list and never a literal data value.
const All = "All"

// Options maps a dimension to its ordered option list: "All" followed by the
// distinct values observed in the dataset, sorted ascending.
type Options map[dataset.Dimension][]string

// Discover computes the option list for each of the given dimensions. A nil
// record slice means the dataset is not loaded yet, and propagates as nil
// output rather than an empty mapping. An empty (but loaded) dataset yields
// ["All"] for every dimension.
//
// Sorting is lexicographic on the display string, including Year — "10"
// sorts before "2". That matches the downstream dropdowns, which treat every
// option as an opaque string.
func Discover(records []dataset.Record, dims []dataset.Dimension) Options {
	if records == nil {
		return nil
	}

	opts := make(Options, len(dims))
	for _, d := range dims {
		seen := make(map[string]struct{})
		distinct := make([]string, 0)
		for _, r := range records {
			v := r.Field(d)
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			distinct = append(distinct, v)
		}
		sort.Strings(distinct)
		opts[d] = append([]string{All}, distinct...)
	}
	return opts
}
