package dataset

import (
	"strconv"
)

// Column names read from annotations or produced by the pipeline.
const (
	ColumnAbsolutePath = "absolute_path"
	ColumnRelativePath = "relative_path"
	ColumnHeight       = "height"
	ColumnWidth        = "width"
	ColumnDepth        = "depth"
	ColumnArea         = "area"
)

// legacyPathColumn is the path header written by older annotation tools.
const legacyPathColumn = "Absolute path"

// Int is a nullable integer cell.
type Int struct {
	Value int
	Valid bool
}

// IntOf returns a valid Int holding v.
func IntOf(v int) Int {
	return Int{Value: v, Valid: true}
}

// String renders the value, or "NaN" when null.
func (n Int) String() string {
	if !n.Valid {
		return "NaN"
	}
	return strconv.Itoa(n.Value)
}

// MarshalJSON encodes null cells as JSON null.
func (n Int) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(n.Value), 10), nil
}

type column struct {
	name    string
	numeric bool
	text    []string
	ints    []Int
}

// Table is an in-memory, column-oriented annotation table.
//
// Text columns keep the cells exactly as read. Numeric columns (height, width,
// depth, area) are nullable integers. Every column has one cell per row, and
// every row remembers its position in the source annotation.
//
// Tables are immutable once returned: every pipeline stage builds a new table.
// Cell slices may be shared between tables, so they are never written after
// construction.
type Table struct {
	columns    []column
	origin     []int
	pathColumn string
	failures   []ProbeError
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.origin)
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	return t.index(name) >= 0
}

// PathColumn returns the name of the column holding image paths.
func (t *Table) PathColumn() string {
	return t.pathColumn
}

// Paths returns a copy of the image path column.
func (t *Table) Paths() []string {
	paths, _ := t.Text(t.pathColumn)
	return paths
}

// Text returns a copy of a text column.
func (t *Table) Text(name string) ([]string, bool) {
	i := t.index(name)
	if i < 0 || t.columns[i].numeric {
		return nil, false
	}
	return append([]string(nil), t.columns[i].text...), true
}

// Ints returns a copy of a numeric column.
func (t *Table) Ints(name string) ([]Int, bool) {
	values, ok := t.intColumn(name)
	if !ok {
		return nil, false
	}
	return append([]Int(nil), values...), true
}

// Origin returns the 0-based annotation row that row i was read from.
func (t *Table) Origin(i int) int {
	return t.origin[i]
}

// Record renders row i as strings in column order. Null cells render as "NaN".
func (t *Table) Record(i int) []string {
	out := make([]string, len(t.columns))
	for j, c := range t.columns {
		if c.numeric {
			out[j] = c.ints[i].String()
		} else {
			out[j] = c.text[i]
		}
	}
	return out
}

// Value returns the cell at row i in column name: a string for text columns,
// an Int for numeric ones.
func (t *Table) Value(i int, name string) (interface{}, bool) {
	j := t.index(name)
	if j < 0 {
		return nil, false
	}
	if t.columns[j].numeric {
		return t.columns[j].ints[i], true
	}
	return t.columns[j].text[i], true
}

// ProbeFailures lists the rows whose images could not be probed under the
// permissive policy. It is empty for tables that were probed strictly.
func (t *Table) ProbeFailures() []ProbeError {
	return append([]ProbeError(nil), t.failures...)
}

func (t *Table) index(name string) int {
	for i, c := range t.columns {
		if c.name == name {
			return i
		}
	}
	return -1
}

func (t *Table) intColumn(name string) ([]Int, bool) {
	i := t.index(name)
	if i < 0 || !t.columns[i].numeric {
		return nil, false
	}
	return t.columns[i].ints, true
}

func (t *Table) clone() *Table {
	return &Table{
		columns:    append([]column(nil), t.columns...),
		origin:     t.origin,
		pathColumn: t.pathColumn,
		failures:   t.failures,
	}
}

// setInts replaces the numeric column name, or appends it when absent.
func (t *Table) setInts(name string, values []Int) {
	c := column{name: name, numeric: true, ints: values}
	if i := t.index(name); i >= 0 {
		t.columns[i] = c
		return
	}
	t.columns = append(t.columns, c)
}

func (t *Table) drop(name string) {
	if i := t.index(name); i >= 0 {
		t.columns = append(t.columns[:i], t.columns[i+1:]...)
	}
}

// take builds a table holding the given rows, in the given order.
func (t *Table) take(rows []int) *Table {
	out := &Table{
		columns:    make([]column, len(t.columns)),
		origin:     make([]int, len(rows)),
		pathColumn: t.pathColumn,
		failures:   t.failures,
	}
	for k, r := range rows {
		out.origin[k] = t.origin[r]
	}
	for j, c := range t.columns {
		nc := column{name: c.name, numeric: c.numeric}
		if c.numeric {
			nc.ints = make([]Int, len(rows))
			for k, r := range rows {
				nc.ints[k] = c.ints[r]
			}
		} else {
			nc.text = make([]string, len(rows))
			for k, r := range rows {
				nc.text[k] = c.text[r]
			}
		}
		out.columns[j] = nc
	}
	return out
}
