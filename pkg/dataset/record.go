package dataset

import "strconv"

// Record is one observation in a loaded dataset. Records are immutable once
// parsed: a reload replaces the whole set, nothing is patched in place.
type Record struct {
	Region   string  `json:"region"`
	Scenario string  `json:"scenario"`
	Variable string  `json:"variable"`
	Year     int     `json:"year"`
	Value    float64 `json:"value"`
}

// Dimension names a categorical (or, for Year, ordinal) axis of a Record.
type Dimension string

const (
	Region   Dimension = "Region"
	Scenario Dimension = "Scenario"
	Variable Dimension = "Variable"
	Year     Dimension = "Year"
)

// Dimensions lists every filterable axis in header order.
var Dimensions = []Dimension{Region, Scenario, Variable, Year}

// Field returns the record's value for a dimension in its display string
// form. Year is stringified, which is also the form filters compare against.
func (r Record) Field(d Dimension) string {
	switch d {
	case Region:
		return r.Region
	case Scenario:
		return r.Scenario
	case Variable:
		return r.Variable
	case Year:
		return strconv.Itoa(r.Year)
	default:
		return ""
	}
}
