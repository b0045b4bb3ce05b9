// Package table holds an immutable, in-memory table of text cells.
//
// Cells are kept exactly as decoded; nothing is re-formatted on the way out.
// Every accessor returns copies, so a Table can be shared between pipeline
// stages without any stage observing another's edits.
package table

import (
	"fmt"
	"strings"
)

// Table is a header plus rows of equal width.
type Table struct {
	columns []string
	rows    [][]string
	index   map[string]int
}

// New builds a Table from a header and rows. Inputs are copied. Rows must
// have exactly len(columns) cells. When a column name repeats, lookups
// resolve to its first occurrence.
func New(columns []string, rows [][]string) (*Table, error) {
	t := &Table{
		columns: append([]string(nil), columns...),
		rows:    make([][]string, 0, len(rows)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range t.columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", i, len(columns), len(r))
		}
		t.rows = append(t.rows, append([]string(nil), r...))
	}
	return t, nil
}

// MustNew is New for literals in tests and fixed schemas.
func MustNew(columns []string, rows [][]string) *Table {
	t, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns the header.
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Has reports whether the header contains col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Index returns the position of col in the header.
func (t *Table) Index(col string) (int, bool) {
	i, ok := t.index[col]
	return i, ok
}

// Missing returns the entries of required absent from the header, in the
// order they were requested.
func (t *Table) Missing(required []string) []string {
	var out []string
	for _, c := range required {
		if !t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []string { return append([]string(nil), t.rows[i]...) }

// Value returns the cell at row i, column col.
func (t *Table) Value(i int, col string) (string, bool) {
	j, ok := t.index[col]
	if !ok {
		return "", false
	}
	return t.rows[i][j], true
}

// Getter returns a column accessor bound to row i.
func (t *Table) Getter(i int) func(col string) (string, bool) {
	return func(col string) (string, bool) { return t.Value(i, col) }
}

// Column returns every cell of col, top to bottom.
func (t *Table) Column(col string) ([]string, error) {
	j, ok := t.index[col]
	if !ok {
		return nil, fmt.Errorf("no column %q", col)
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[j]
	}
	return out, nil
}

// Select returns a new table with the named columns, in that order.
func (t *Table) Select(cols ...string) (*Table, error) {
	idx := make([]int, len(cols))
	for k, c := range cols {
		j, ok := t.index[c]
		if !ok {
			return nil, fmt.Errorf("select: no column %q", c)
		}
		idx[k] = j
	}
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		nr := make([]string, len(idx))
		for k, j := range idx {
			nr[k] = r[j]
		}
		rows[i] = nr
	}
	return New(cols, rows)
}

// Rename returns a new table whose header has from renamed to to.
func (t *Table) Rename(from, to string) (*Table, error) {
	j, ok := t.index[from]
	if !ok {
		return nil, fmt.Errorf("rename: no column %q", from)
	}
	cols := t.Columns()
	cols[j] = to
	return New(cols, t.rows)
}

// Equal reports whether two tables have the same header and cells.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.columns {
		if t.columns[i] != o.columns[i] {
			return false
		}
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if t.rows[i][j] != o.rows[i][j] {
				return false
			}
		}
	}
	return true
}

func (t *Table) String() string {
	return fmt.Sprintf("Table[%s](%d rows)", strings.Join(t.columns, ","), len(t.rows))
}
