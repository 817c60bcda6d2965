package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Parse converts raw delimited text into Records. The first non-blank line is
// a comma-separated header; subsequent lines are data rows. A field fully
// wrapped in double quotes has its quotes stripped — embedded delimiters and
// escaped quotes are not supported, which is a known limitation of the
// format, not something this reader papers over.
//
// The whole load fails on the first malformed row. The result is sorted
// ascending by Year, stable for equal years.
func Parse(raw string) ([]Record, error) {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, ErrMissingHeader
	}

	header := splitFields(lines[0])
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, splitFields(line))
	}
	return buildRecords(header, rows)
}

// splitLines breaks raw text into non-blank lines, tolerating CRLF endings
// and a trailing newline.
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitFields tokenizes one row on commas and strips one pair of fully
// wrapping double quotes per field.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		if len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) {
			fields[i] = f[1 : len(f)-1]
		}
	}
	return fields
}

// buildRecords validates tokenized rows against the Record schema. Each row
// must align with the header positionally; Year and Value must coerce to
// finite numbers. Shared by the CSV and XLSX readers.
func buildRecords(header []string, rows [][]string) ([]Record, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Region", "Scenario", "Variable", "Year", "Value"} {
		if _, ok := col[required]; !ok {
			return nil, &SchemaError{Column: required, Reason: "required column missing from header"}
		}
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 1
		if len(row) != len(header) {
			return nil, &SchemaError{Row: rowNum, Reason: "row does not align with header"}
		}

		cell := func(name string) string { return strings.TrimSpace(row[col[name]]) }

		year, err := strconv.Atoi(cell("Year"))
		if err != nil {
			return nil, &SchemaError{Row: rowNum, Column: "Year", Reason: "not an integer year"}
		}
		value, err := strconv.ParseFloat(cell("Value"), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, &SchemaError{Row: rowNum, Column: "Value", Reason: "not a finite number"}
		}

		records = append(records, Record{
			Region:   cell("Region"),
			Scenario: cell("Scenario"),
			Variable: cell("Variable"),
			Year:     year,
			Value:    value,
		})
	}

	// Stable keeps original row order among equal years.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Year < records[j].Year
	})
	return records, nil
}
