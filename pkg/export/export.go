// Package export writes a filtered record set back out for download, as
// delimited text (the same form Parse accepts) or JSON with load metadata.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/scendash/scendash/pkg/dataset"
)

// Result reports what an export produced.
type Result struct {
	RecordsExported int       `json:"records_exported"`
	Format          string    `json:"format"`
	ExportedAt      time.Time `json:"exported_at"`
}

// ToCSV writes records in the delimited text form. The output reparses to
// the same records, so a download can seed another session. Records holding
// fields the format cannot carry (possible only via the XLSX input) fail
// with dataset.ErrUnrepresentableField instead of exporting wrong.
func ToCSV(w io.Writer, records []dataset.Record) (*Result, error) {
	text, err := dataset.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if _, err := io.WriteString(w, text); err != nil {
		return nil, fmt.Errorf("export: write csv: %w", err)
	}
	return &Result{
		RecordsExported: len(records),
		Format:          "csv",
		ExportedAt:      time.Now(),
	}, nil
}

// ToJSON writes records wrapped with export metadata.
func ToJSON(w io.Writer, records []dataset.Record) (*Result, error) {
	payload := struct {
		Metadata struct {
			ExportedAt  time.Time `json:"exported_at"`
			RecordCount int       `json:"record_count"`
			Fingerprint string    `json:"fingerprint"`
		} `json:"metadata"`
		Records []dataset.Record `json:"records"`
	}{
		Records: records,
	}
	payload.Metadata.ExportedAt = time.Now()
	payload.Metadata.RecordCount = len(records)
	payload.Metadata.Fingerprint = fmt.Sprintf("%016x", dataset.Fingerprint(records))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("export: encode json: %w", err)
	}
	return &Result{
		RecordsExported: len(records),
		Format:          "json",
		ExportedAt:      payload.Metadata.ExportedAt,
	}, nil
}
