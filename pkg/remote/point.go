package remote

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is one (category, year, value) tuple from a pre-partitioned fetch.
// The wire form is a bare JSON 3-element array, not an object.
type Point struct {
	Category string
	Year     int
	Value    float64
}

// UnmarshalJSON decodes the ["category", year, value] tuple form.
func (p *Point) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("remote: point is not an array: %w", err)
	}
	if len(tuple) != 3 {
		return fmt.Errorf("remote: point has %d elements, want 3", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &p.Category); err != nil {
		return fmt.Errorf("remote: point category: %w", err)
	}
	var year float64
	if err := json.Unmarshal(tuple[1], &year); err != nil {
		return fmt.Errorf("remote: point year: %w", err)
	}
	var value float64
	if err := json.Unmarshal(tuple[2], &value); err != nil {
		return fmt.Errorf("remote: point value: %w", err)
	}
	if math.IsNaN(year) || math.IsInf(year, 0) || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("remote: point has non-finite number")
	}
	p.Year = int(year)
	p.Value = value
	return nil
}

// MarshalJSON re-encodes the tuple form.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Category, p.Year, p.Value})
}
