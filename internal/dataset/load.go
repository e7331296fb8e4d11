package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tobgu/qframe"
	qcsv "github.com/tobgu/qframe/config/csv"
)

// Load reads a comma-separated annotation file into a Table.
//
// The first line is the header. Every column is kept as text, in file order,
// and rows keep their file order. The table must have a path column
// ("absolute_path", or the older "Absolute path") with a non-empty value on
// every row. Load does not check that the referenced images exist.
//
// All failures wrap ErrAnnotationRead.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnnotationRead, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// utf8BOM is the byte order mark spreadsheet tools write ahead of the header.
var utf8BOM = []byte("\ufeff")

// Read parses an annotation table from r. See Load.
//
// A leading byte order mark and blank lines are ignored.
func Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnnotationRead, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	header, rows, err := checkShape(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnnotationRead, err)
	}

	t := &Table{
		columns: make([]column, 0, len(header)),
		origin:  make([]int, rows),
	}
	for i := range t.origin {
		t.origin[i] = i
	}

	if rows == 0 {
		for _, name := range header {
			t.columns = append(t.columns, column{name: name, text: []string{}})
		}
	} else {
		cols, err := readColumns(data, header, rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAnnotationRead, err)
		}
		t.columns = append(t.columns, cols...)
	}

	switch {
	case t.HasColumn(ColumnAbsolutePath):
		t.pathColumn = ColumnAbsolutePath
	case t.HasColumn(legacyPathColumn):
		t.pathColumn = legacyPathColumn
	default:
		return nil, fmt.Errorf("%w: no %q column", ErrAnnotationRead, ColumnAbsolutePath)
	}

	for i, p := range t.columns[t.index(t.pathColumn)].text {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w: row %d has an empty image path", ErrAnnotationRead, i)
		}
	}
	return t, nil
}

// readColumns loads every column of data as text, in header order.
func readColumns(data []byte, header []string, rows int) ([]column, error) {
	// Force every column to text; qframe would otherwise infer numeric types.
	types := make(map[string]string, len(header))
	for _, name := range header {
		types[name] = "string"
	}

	qf := qframe.ReadCSV(bytes.NewReader(data),
		qcsv.Types(types),
		qcsv.IgnoreEmptyLines(true))
	if qf.Err != nil {
		return nil, qf.Err
	}

	cols := make([]column, 0, len(header))
	for _, name := range header {
		view, err := qf.StringView(name)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		if view.Len() != rows {
			return nil, fmt.Errorf("column %q: read %d rows, want %d", name, view.Len(), rows)
		}
		values := make([]string, rows)
		for i := range values {
			if s := view.ItemAt(i); s != nil {
				values[i] = *s
			}
		}
		cols = append(cols, column{name: name, text: values})
	}
	return cols, nil
}

// checkShape returns the header and the number of data rows after checking
// that the header names are usable as column names and that every row has one
// cell per header column.
func checkShape(data []byte) ([]string, int, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return nil, 0, errors.New("empty annotation")
	}
	header := records[0]

	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if name == "" {
			return nil, 0, fmt.Errorf("header column %d has no name", i)
		}
		if seen[name] {
			return nil, 0, fmt.Errorf("duplicate header column %q", name)
		}
		seen[name] = true
	}
	return header, len(records) - 1, nil
}
