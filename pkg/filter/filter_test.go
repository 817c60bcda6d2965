package filter

import (
	"reflect"
	"testing"

	"github.com/scendash/scendash/pkg/dataset"
)

var testRecords = []dataset.Record{
	{Region: "ON", Scenario: "Base", Variable: "Wind", Year: 2020, Value: 5},
	{Region: "ON", Scenario: "Base", Variable: "Wind", Year: 2021, Value: 7},
	{Region: "QC", Scenario: "High", Variable: "Solar", Year: 2020, Value: 3},
	{Region: "Canada", Scenario: "Base", Variable: "Wind", Year: 2020, Value: 15},
}

func TestApplyEmptySetIsIdentity(t *testing.T) {
	engine := NewEngine(nil)

	got := engine.Apply(testRecords, Set{})
	if !reflect.DeepEqual(got, testRecords) {
		t.Errorf("Empty filter set must pass records through unchanged, got %+v", got)
	}
}

func TestApplyExactMatch(t *testing.T) {
	engine := NewEngine(nil)

	got := engine.Apply(testRecords, Set{dataset.Region: "ON"})
	if len(got) != 2 {
		t.Fatalf("Expected 2 ON records, got %d", len(got))
	}
	for _, r := range got {
		if r.Region != "ON" {
			t.Errorf("Unexpected record %+v", r)
		}
	}
}

func TestApplyIsCaseSensitive(t *testing.T) {
	engine := NewEngine(nil)

	if got := engine.Apply(testRecords, Set{dataset.Region: "on"}); len(got) != 0 {
		t.Errorf("Matching must be case-sensitive, got %+v", got)
	}
}

func TestApplyConjunction(t *testing.T) {
	engine := NewEngine(nil)

	both := engine.Apply(testRecords, Set{
		dataset.Region:   "ON",
		dataset.Scenario: "Base",
	})
	sequential := engine.Apply(
		engine.Apply(testRecords, Set{dataset.Region: "ON"}),
		Set{dataset.Scenario: "Base"},
	)

	if !reflect.DeepEqual(both, sequential) {
		t.Errorf("Filtering by both must equal filtering in sequence:\n both=%+v\n  seq=%+v", both, sequential)
	}
}

func TestApplyYearFilter(t *testing.T) {
	engine := NewEngine(nil)

	got := engine.Apply(testRecords, Set{dataset.Year: "2021"})
	if len(got) != 1 || got[0].Year != 2021 {
		t.Errorf("Expected the single 2021 record, got %+v", got)
	}
}

func TestApplyRegionAllDropsExcluded(t *testing.T) {
	engine := NewEngine(nil) // default exclusions: Region All hides Canada

	got := engine.Apply(testRecords, Set{dataset.Region: "All"})
	if len(got) != 3 {
		t.Fatalf("Expected 3 records after Canada exclusion, got %d", len(got))
	}
	for _, r := range got {
		if r.Region == "Canada" {
			t.Errorf("Canada row must be dropped when Region is All: %+v", r)
		}
	}
}

func TestApplyExplicitCanadaStillMatches(t *testing.T) {
	// The exclusion only applies to the "All" sentinel; selecting Canada
	// directly still works.
	engine := NewEngine(nil)

	got := engine.Apply(testRecords, Set{dataset.Region: "Canada"})
	if len(got) != 1 || got[0].Region != "Canada" {
		t.Errorf("Expected the Canada record, got %+v", got)
	}
}

func TestApplyRegionAllNoExcludedRows(t *testing.T) {
	records := testRecords[:3] // no Canada row
	engine := NewEngine(nil)

	got := engine.Apply(records, Set{dataset.Region: "All"})
	if !reflect.DeepEqual(got, records) {
		t.Errorf("Region All with no excluded rows must return everything unchanged, got %+v", got)
	}
}

func TestApplyExclusionIsRegionOnly(t *testing.T) {
	// No other dimension carries an exclusion by default.
	records := []dataset.Record{
		{Region: "ON", Scenario: "Canada", Variable: "Canada", Year: 2020, Value: 1},
	}
	engine := NewEngine(nil)

	got := engine.Apply(records, Set{
		dataset.Scenario: "All",
		dataset.Variable: "All",
	})
	if len(got) != 1 {
		t.Errorf("Exclusion must be keyed to Region only, got %+v", got)
	}
}

func TestApplyConfiguredExclusions(t *testing.T) {
	engine := NewEngine(map[dataset.Dimension][]string{
		dataset.Scenario: {"High"},
	})

	got := engine.Apply(testRecords, Set{dataset.Scenario: "All"})
	for _, r := range got {
		if r.Scenario == "High" {
			t.Errorf("Configured exclusion not applied: %+v", r)
		}
	}
	// Region exclusion was replaced, not merged: Canada stays.
	found := false
	for _, r := range got {
		if r.Region == "Canada" {
			found = true
		}
	}
	if !found {
		t.Error("Custom exclusion config must replace the defaults")
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	engine := NewEngine(nil)

	got := engine.Apply(testRecords, Set{dataset.Variable: "Wind"})
	for i := 1; i < len(got); i++ {
		if indexOf(testRecords, got[i-1]) > indexOf(testRecords, got[i]) {
			t.Errorf("Filtering must preserve input order, got %+v", got)
		}
	}
}

func indexOf(records []dataset.Record, r dataset.Record) int {
	for i, c := range records {
		if c == r {
			return i
		}
	}
	return -1
}
