package ingest

import "fmt"

// Report summarizes one dataset load.
type Report struct {
	Dataset     string `json:"dataset"`
	RowsLoaded  int    `json:"rows_loaded"`
	RowsSkipped int    `json:"rows_skipped"`
	// FactRows counts pivoted fact rows written, where the dataset produces
	// more than one row per input record.
	FactRows int `json:"fact_rows,omitempty"`
}

func (r *Report) String() string {
	if r.FactRows > 0 {
		return fmt.Sprintf("%s: %d rows loaded (%d fact rows), %d skipped", r.Dataset, r.RowsLoaded, r.FactRows, r.RowsSkipped)
	}
	return fmt.Sprintf("%s: %d rows loaded, %d skipped", r.Dataset, r.RowsLoaded, r.RowsSkipped)
}
