// Package ingest holds the pieces shared by the three dataset loaders:
// CSV reading, header lookup and load reporting.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadFile reads a whole CSV file and returns the header row and the data
// rows. Rows are allowed to have varying field counts; short rows are the
// parser's problem, not the reader's.
func ReadFile(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}

	return records[0], records[1:], nil
}

// HeaderIndex maps normalized column names to their positions. Column names
// are trimmed and lowercased so source files with inconsistent casing or
// padding still resolve.
func HeaderIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return index
}

// Field returns the trimmed value of the named column, or "" when the column
// is absent or the row is too short.
func Field(row []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// IsEmptyRow reports whether every field in the row is blank.
func IsEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
