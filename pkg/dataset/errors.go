package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingHeader is returned when the input has no header line.
var ErrMissingHeader = errors.New("dataset: missing header row")

// ErrUnrepresentableField is returned by Marshal for a field value the
// delimited text form cannot carry (embedded comma or line break, or a fully
// quote-wrapped value). The format supports no escaping, so writing such a
// field would produce text that reparses to different records.
var ErrUnrepresentableField = errors.New("field not representable in delimited form")

// SchemaError reports a data row that does not fit the Record schema: a
// row/header length mismatch, a missing required column, or a field that does
// not coerce to a finite number. Any SchemaError aborts the whole load; there
// is no partial acceptance.
type SchemaError struct {
	Row    int    // 1-based data row number (0 if the header itself is bad)
	Column string // offending column name, if known
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("dataset: schema error: %s", e.Reason)
	}
	if e.Column != "" {
		return fmt.Sprintf("dataset: schema error at row %d, column %q: %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("dataset: schema error at row %d: %s", e.Row, e.Reason)
}
