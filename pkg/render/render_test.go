package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/scendash/scendash/pkg/dataset"
	"github.com/scendash/scendash/pkg/series"
)

func TestPNG(t *testing.T) {
	groups := []series.Series{
		{
			Label: "ON - Wind (Base)",
			Data: []dataset.Record{
				{Region: "ON", Scenario: "Base", Variable: "Wind", Year: 2020, Value: 5},
				{Region: "ON", Scenario: "Base", Variable: "Wind", Year: 2021, Value: 7},
			},
		},
		{
			Label: "QC - Wind (Base)",
			Data: []dataset.Record{
				{Region: "QC", Scenario: "Base", Variable: "Wind", Year: 2020, Value: 3},
				{Region: "QC", Scenario: "Base", Variable: "Wind", Year: 2021, Value: 4},
			},
		},
	}

	var buf bytes.Buffer
	err := PNG(&buf, groups, Options{Title: "Wind", Width: 800, Height: 320})
	if err != nil {
		t.Fatalf("PNG render error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Output does not start with the PNG signature")
	}
}

func TestPNGSinglePointSeries(t *testing.T) {
	// One record per series still renders (the point is widened to a
	// flat segment).
	groups := []series.Series{
		{Label: "ON", Data: []dataset.Record{{Region: "ON", Year: 2020, Value: 5}}},
	}

	var buf bytes.Buffer
	if err := PNG(&buf, groups, Options{Width: 400, Height: 200}); err != nil {
		t.Fatalf("Single-point render error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected non-empty PNG output")
	}
}

func TestPNGEmptyLabel(t *testing.T) {
	groups := []series.Series{
		{Label: "", Data: []dataset.Record{
			{Year: 2020, Value: 1}, {Year: 2021, Value: 2},
		}},
	}

	var buf bytes.Buffer
	if err := PNG(&buf, groups, Options{Width: 400, Height: 200}); err != nil {
		t.Fatalf("Empty-label render error: %v", err)
	}
}

func TestPNGNoSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PNG(&buf, nil, Options{Width: 400, Height: 200})
	if !errors.Is(err, ErrNoSeries) {
		t.Fatalf("Expected ErrNoSeries, got %v", err)
	}
}
