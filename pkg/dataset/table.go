package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a header-addressed tabular resource. Column order carries no
// meaning; lookups go through the header.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a Table. Header names are trimmed; the first occurrence of
// a duplicated header wins.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{
		Header: make([]string, len(header)),
		Rows:   rows,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.Header[i] = h
		if _, ok := t.index[h]; !ok {
			t.index[h] = i
		}
	}
	return t
}

// ReadCSV parses CSV text with a header row. Rows may be ragged; missing
// trailing cells read as empty.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: missing header row")
	}
	return NewTable(records[0], records[1:]), nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether the table has a column named col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Value returns the trimmed cell at row/col, or "" when the column or cell
// does not exist.
func (t *Table) Value(row int, col string) string {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

// blank reports whether every cell of a row is empty. Blank rows are skipped.
func (t *Table) blank(row int) bool {
	for _, c := range t.Rows[row] {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
