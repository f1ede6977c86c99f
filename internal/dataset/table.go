// Package dataset reads and writes the flat CSV tables the pipelines consume.
// Tables are loaded wholesale; a header row is required.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// MissingColumnsError reports the exact required columns absent from a table.
type MissingColumnsError struct {
	Path    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("dataset %s: missing columns: %s", e.Path, strings.Join(e.Columns, ", "))
}

// Table is an in-memory CSV table: a header plus raw string rows.
type Table struct {
	Path    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// Load reads the whole file and verifies every required column is present.
// An empty but well-formed file (header only) loads as a zero-row table.
func Load(path string, required []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s: missing header row", path)
	}

	t := &Table{
		Path:    path,
		Columns: records[0],
		Rows:    records[1:],
		index:   make(map[string]int, len(records[0])),
	}
	for i, c := range t.Columns {
		t.index[strings.TrimSpace(c)] = i
	}

	var missing []string
	for _, c := range required {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Path: path, Columns: missing}
	}
	return t, nil
}

// Field returns the named column's value for a row, or "" when the row is
// short. Column names were validated at load time.
func (t *Table) Field(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// FloatField parses the named column as a float. Empty or unparseable cells
// come back as NaN so downstream means can skip them.
func (t *Table) FloatField(row []string, col string) float64 {
	s := strings.TrimSpace(t.Field(row, col))
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// IntField parses the named column as an integer, tolerating float formatting
// ("7.0"). Unparseable cells come back as 0.
func (t *Table) IntField(row []string, col string) int {
	s := strings.TrimSpace(t.Field(row, col))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(v)
	}
	return 0
}

// Filter returns a table sharing this table's header, keeping rows the
// predicate accepts. Callers that also limit must filter first.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	out := &Table{Path: t.Path, Columns: t.Columns, index: t.index}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Limit returns a table with at most n rows, in order. n <= 0 means no limit.
func (t *Table) Limit(n int) *Table {
	if n <= 0 || len(t.Rows) <= n {
		return t
	}
	return &Table{Path: t.Path, Columns: t.Columns, index: t.index, Rows: t.Rows[:n]}
}

// Write saves a header plus rows as CSV, overwriting the whole file.
func Write(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
