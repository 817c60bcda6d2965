// Package series partitions filtered records into labeled groups, one per
// plotted line. The partition is a disjoint, total cover: every filtered
// record lands in exactly one series and no series is empty.
package series

import (
	"github.com/scendash/scendash/pkg/dataset"
	"github.com/scendash/scendash/pkg/filter"
)

// Series is one labeled, ordered group of records. Transient: recomputed on
// every filter change, never stored.
type Series struct {
	Label string           `json:"label"`
	Data  []dataset.Record `json:"data"`
}

// Unconstrained records which of the three label-composing dimensions are
// currently set to "All". Year never participates in labels.
type Unconstrained struct {
	Region   bool
	Variable bool
	Scenario bool
}

// UnconstrainedFrom derives the label-composing state from a filter set.
func UnconstrainedFrom(filters filter.Set) Unconstrained {
	return Unconstrained{
		Region:   filters.Unconstrained(dataset.Region),
		Variable: filters.Unconstrained(dataset.Variable),
		Scenario: filters.Unconstrained(dataset.Scenario),
	}
}

// Label composes a record's series label from its unconstrained dimensions.
// The full decision table over (Region, Variable, Scenario) unconstrained:
//
//	R V S -> "R - V (S)"
//	R V - -> "R - V"
//	R - S -> "R (S)"
//	R - - -> "R"
//	- V S -> "V (S)"
//	- V - -> "V"
//	- - S -> "S"        (no parentheses when S stands alone)
//	- - - -> ""         (all three single-valued: one unlabeled series)
func Label(r dataset.Record, u Unconstrained) string {
	switch {
	case u.Region && u.Variable && u.Scenario:
		return r.Region + " - " + r.Variable + " (" + r.Scenario + ")"
	case u.Region && u.Variable:
		return r.Region + " - " + r.Variable
	case u.Region && u.Scenario:
		return r.Region + " (" + r.Scenario + ")"
	case u.Region:
		return r.Region
	case u.Variable && u.Scenario:
		return r.Variable + " (" + r.Scenario + ")"
	case u.Variable:
		return r.Variable
	case u.Scenario:
		return r.Scenario
	default:
		return ""
	}
}

// Group partitions records by computed label. Per-group record order follows
// the input, and groups appear in first-seen label order — not sorted, so the
// legend tracks the data.
func Group(records []dataset.Record, u Unconstrained) []Series {
	index := make(map[string]int)
	groups := make([]Series, 0)

	for _, r := range records {
		label := Label(r, u)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Series{Label: label})
		}
		groups[i].Data = append(groups[i].Data, r)
	}
	return groups
}
