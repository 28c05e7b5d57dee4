package demographics

import (
	"testing"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest"
)

var testHeader = []string{"Zip Code", "City", "State", "Zip Code Population", "Median Household Income"}

func TestParseRow(t *testing.T) {
	index := ingest.HeaderIndex(testHeader)

	rec, err := ParseRow(index, []string{"02108", "Boston", "MA", "4000", "95000"})
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}
	if rec.City != "Boston" || rec.State != "MA" || rec.Population != 4000 || rec.MedianIncome != 95000 {
		t.Errorf("rec = %+v", rec)
	}
}

func TestParseRowUnloadable(t *testing.T) {
	index := ingest.HeaderIndex(testHeader)

	if _, err := ParseRow(index, []string{"02108", "", "MA", "4000", "95000"}); err == nil {
		t.Error("expected error for missing city")
	}
	if _, err := ParseRow(index, []string{"02108", "Boston", "MA", "many", "95000"}); err == nil {
		t.Error("expected error for non-numeric population")
	}
}

func TestAggregate(t *testing.T) {
	records := []*ZipRecord{
		{City: "Boston", State: "MA", Population: 4000, MedianIncome: 90000},
		{City: "Boston", State: "MA", Population: 6000, MedianIncome: 100000},
		{City: "Albany", State: "NY", Population: 2000, MedianIncome: 60000},
	}

	got := Aggregate(records)
	if len(got) != 2 {
		t.Fatalf("aggregates = %d, want 2", len(got))
	}

	// Sorted by state then city.
	boston := got[0]
	if boston.City != "Boston" || boston.State != "MA" {
		t.Fatalf("first aggregate = %+v, want Boston, MA", boston)
	}
	if boston.Population != 10000 {
		t.Errorf("population = %d, want summed 10000", boston.Population)
	}
	if boston.MedianIncome != 95000 {
		t.Errorf("income = %d, want averaged 95000", boston.MedianIncome)
	}

	if got[1].City != "Albany" || got[1].Population != 2000 || got[1].MedianIncome != 60000 {
		t.Errorf("second aggregate = %+v", got[1])
	}
}

func TestAggregateDeterministicOrder(t *testing.T) {
	records := []*ZipRecord{
		{City: "Portland", State: "OR", Population: 1, MedianIncome: 1},
		{City: "Portland", State: "ME", Population: 1, MedianIncome: 1},
		{City: "Austin", State: "TX", Population: 1, MedianIncome: 1},
	}

	got := Aggregate(records)
	wantOrder := [][2]string{{"Portland", "ME"}, {"Portland", "OR"}, {"Austin", "TX"}}
	for i, want := range wantOrder {
		if got[i].City != want[0] || got[i].State != want[1] {
			t.Errorf("aggregates[%d] = %s, %s, want %s, %s", i, got[i].City, got[i].State, want[0], want[1])
		}
	}
}
