package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads records from the first sheet of an xlsx workbook. The sheet
// follows the same contract as the text form: first row is the header, every
// data row aligns with it positionally, Year and Value must be finite
// numbers. Validation and sorting are identical to Parse.
func ParseXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("dataset: open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrMissingHeader
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("dataset: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingHeader
	}

	// GetRows trims trailing empty cells, so a row with a blank Value comes
	// back short and fails schema validation like a short text row would.
	return buildRecords(rows[0], rows[1:])
}
