package dataset

import (
	"fmt"

	"goexplore/domain/core"
)

// Table is an ordered set of uniquely named columns sharing one row count.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable builds a table from column names and row-major cells.
// Every row must have exactly len(names) cells.
func NewTable(names []string, rows [][]Value) (*Table, error) {
	t := &Table{
		columns: make([]*Column, 0, len(names)),
		index:   make(map[string]int, len(names)),
		rows:    len(rows),
	}

	for i, name := range names {
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", core.ErrMalformedTable, name)
		}
		t.index[name] = i
		t.columns = append(t.columns, &Column{Name: name, Values: make([]Value, len(rows))})
	}

	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", core.ErrMalformedTable, r, len(row), len(names))
		}
		for c, v := range row {
			t.columns[c].Values[r] = v
		}
	}

	return t, nil
}

// NumRows returns the shared row count
func (t *Table) NumRows() int { return t.rows }

// NumColumns returns the number of columns
func (t *Table) NumColumns() int { return len(t.columns) }

// Columns returns the columns in order. Callers may mutate cells in place.
func (t *Table) Columns() []*Column { return t.columns }

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether name is one of the table's columns
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks a column up by name
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Row returns the cells of row r in column order
func (t *Table) Row(r int) []Value {
	row := make([]Value, len(t.columns))
	for i, c := range t.columns {
		row[i] = c.Values[r]
	}
	return row
}

// KeepRows retains only the rows for which keep returns true.
func (t *Table) KeepRows(keep func(r int) bool) int {
	kept := make([]int, 0, t.rows)
	for r := 0; r < t.rows; r++ {
		if keep(r) {
			kept = append(kept, r)
		}
	}

	for _, c := range t.columns {
		values := make([]Value, len(kept))
		for i, r := range kept {
			values[i] = c.Values[r]
		}
		c.Values = values
	}

	removed := t.rows - len(kept)
	t.rows = len(kept)
	return removed
}

// KeepColumns retains only the columns for which keep returns true.
func (t *Table) KeepColumns(keep func(c *Column) bool) []string {
	var removed []string
	columns := make([]*Column, 0, len(t.columns))
	index := make(map[string]int, len(t.columns))

	for _, c := range t.columns {
		if !keep(c) {
			removed = append(removed, c.Name)
			continue
		}
		index[c.Name] = len(columns)
		columns = append(columns, c)
	}

	t.columns = columns
	t.index = index
	return removed
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	clone := &Table{
		columns: make([]*Column, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
		rows:    t.rows,
	}
	for i, c := range t.columns {
		values := make([]Value, len(c.Values))
		copy(values, c.Values)
		clone.columns[i] = &Column{Name: c.Name, Values: values}
		clone.index[c.Name] = i
	}
	return clone
}

// MissingCount returns the number of missing cells across the table
func (t *Table) MissingCount() int {
	total := 0
	for _, c := range t.columns {
		total += c.MissingCount()
	}
	return total
}

// Kind derives the column type from its current cells
func (c *Column) Kind() ColumnKind {
	kind := ColumnEmpty
	for _, v := range c.Values {
		switch v.Kind {
		case KindText:
			return ColumnCategorical
		case KindNumber:
			kind = ColumnNumeric
		}
	}
	return kind
}

// IsNumeric reports whether every present cell is a number
func (c *Column) IsNumeric() bool {
	return c.Kind() == ColumnNumeric
}

// MissingCount returns how many cells are missing
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			n++
		}
	}
	return n
}

// NonMissingCount returns how many cells are present
func (c *Column) NonMissingCount() int {
	return len(c.Values) - c.MissingCount()
}

// Floats returns the numeric cells, skipping missing ones.
// It fails if the column holds text.
func (c *Column) Floats() ([]float64, error) {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		switch v.Kind {
		case KindNumber:
			out = append(out, v.Num)
		case KindText:
			return nil, core.NewNonNumericColumnError(c.Name)
		}
	}
	return out, nil
}

// Strings returns the display form of the present cells
func (c *Column) Strings() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.IsMissing() {
			out = append(out, v.String())
		}
	}
	return out
}

// PairedFloats returns the rows where both columns hold numbers, and how many rows were dropped.
func PairedFloats(x, y *Column) (xs, ys []float64, dropped int, err error) {
	if x.Kind() == ColumnCategorical {
		return nil, nil, 0, core.NewNonNumericColumnError(x.Name)
	}
	if y.Kind() == ColumnCategorical {
		return nil, nil, 0, core.NewNonNumericColumnError(y.Name)
	}

	for r := range x.Values {
		if x.Values[r].IsMissing() || y.Values[r].IsMissing() {
			dropped++
			continue
		}
		xs = append(xs, x.Values[r].Num)
		ys = append(ys, y.Values[r].Num)
	}
	return xs, ys, dropped, nil
}
