package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-dataset-tools/internal/imaging"
)

// fakeDecoder serves dimensions from a map and fails for unknown paths.
type fakeDecoder struct {
	dims  map[string]imaging.Dimensions
	calls []string
}

var errNoSuchImage = errors.New("no such image")

func (d *fakeDecoder) DecodeDimensions(path string) (imaging.Dimensions, error) {
	d.calls = append(d.calls, path)
	dims, ok := d.dims[path]
	if !ok {
		return imaging.Dimensions{}, errNoSuchImage
	}
	return dims, nil
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{dims: map[string]imaging.Dimensions{
		"/data/a.png": {Height: 100, Width: 200, Depth: 3, Format: "png"},
		"/data/b.png": {Height: 300, Width: 400, Depth: 3, Format: "png"},
		"/data/c.png": {Height: 600, Width: 200, Depth: 3, Format: "png"},
	}}
}

// writeAnnotation writes content to a temp CSV file and returns its path.
func writeAnnotation(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annotation.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write annotation: %v", err)
	}
	return path
}

// mustRead parses lines (joined with newlines) as an annotation.
func mustRead(t *testing.T, lines ...string) *Table {
	t.Helper()
	tbl, err := Read(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return tbl
}

// mustProbe reads lines and probes them with newFakeDecoder.
func mustProbe(t *testing.T, policy ProbePolicy, lines ...string) *Table {
	t.Helper()
	tbl, err := Probe(mustRead(t, lines...), newFakeDecoder(), policy)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	return tbl
}

func ints(t *testing.T, tbl *Table, name string) []Int {
	t.Helper()
	values, ok := tbl.Ints(name)
	if !ok {
		t.Fatalf("table has no numeric column %q (columns: %v)", name, tbl.Columns())
	}
	return values
}

func equalInts(a, b []Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
