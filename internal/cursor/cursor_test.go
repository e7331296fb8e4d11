package cursor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-dataset-tools/internal/dataset"
)

func writeAnnotation(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annotation.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write annotation: %v", err)
	}
	return path
}

func TestOpen(t *testing.T) {
	path := writeAnnotation(t,
		"absolute_path,relative_path",
		"/data/a.png,a.png",
		"/data/b.png,b.png",
		"/data/c.png,c.png",
	)

	cur, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if cur.Len() != 3 || cur.Remaining() != 3 || cur.Position() != 0 {
		t.Errorf("fresh cursor: len %d remaining %d position %d", cur.Len(), cur.Remaining(), cur.Position())
	}

	for i, want := range []string{"/data/a.png", "/data/b.png", "/data/c.png"} {
		item, ok := cur.Next()
		if !ok {
			t.Fatalf("Next %d: reported end early", i)
		}
		if item.Path != want || item.Index != i || item.Row != i {
			t.Errorf("Next %d: got %+v, want path %s", i, item, want)
		}
		if item.RelativePath != filepath.Base(want) {
			t.Errorf("Next %d: relative path %q", i, item.RelativePath)
		}
	}

	if cur.State() != Ready {
		t.Errorf("cursor should stay ready until Next reports the end, got %s", cur.State())
	}

	// The end repeats on every later call.
	for i := 0; i < 3; i++ {
		item, ok := cur.Next()
		if ok {
			t.Fatalf("call %d after the end returned %+v", i, item)
		}
		if item != (Item{}) {
			t.Errorf("end of sequence should return a zero Item, got %+v", item)
		}
		if cur.State() != Exhausted {
			t.Errorf("State: got %s, want exhausted", cur.State())
		}
	}
	if cur.Remaining() != 0 {
		t.Errorf("Remaining: got %d, want 0", cur.Remaining())
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name      string
		path      func(t *testing.T) string
		wantCause error
	}{
		{
			"missing file",
			func(t *testing.T) string { return "/nonexistent/annotation.csv" },
			dataset.ErrAnnotationRead,
		},
		{
			"no path column",
			func(t *testing.T) string { return writeAnnotation(t, "label", "cat") },
			dataset.ErrAnnotationRead,
		},
		{
			"header only",
			func(t *testing.T) string { return writeAnnotation(t, "absolute_path") },
			ErrNoImages,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.path(t))
			if !errors.Is(err, ErrIteratorInit) {
				t.Errorf("expected ErrIteratorInit, got %v", err)
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("expected %v in the chain, got %v", tt.wantCause, err)
			}
		})
	}
}

func TestNew_Nil(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoImages) {
		t.Errorf("expected ErrNoImages, got %v", err)
	}
}

func TestNew_Snapshot(t *testing.T) {
	tbl, err := dataset.Read(strings.NewReader("absolute_path\n/data/b.png\n/data/a.png\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	cur, err := New(tbl)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Later stages build new tables; the cursor keeps the order it started with.
	probed, err := dataset.Probe(tbl, stubDecoder{}, dataset.ProbePermissive)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if _, err := dataset.AddArea(probed); err != nil {
		t.Fatalf("AddArea failed: %v", err)
	}

	first, _ := cur.Next()
	if first.Path != "/data/b.png" {
		t.Errorf("first item: got %s, want /data/b.png", first.Path)
	}
	if first.RelativePath != "" {
		t.Errorf("annotation without relative_path should leave it empty, got %q", first.RelativePath)
	}
}

func TestItems(t *testing.T) {
	path := writeAnnotation(t,
		"absolute_path",
		"/data/a.png",
		"/data/b.png",
		"/data/c.png",
	)
	cur, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	first, _ := cur.Next()
	if first.Path != "/data/a.png" {
		t.Fatalf("first item: got %s", first.Path)
	}

	var rest []string
	for item := range cur.Items() {
		rest = append(rest, item.Path)
	}
	if len(rest) != 2 || rest[0] != "/data/b.png" || rest[1] != "/data/c.png" {
		t.Errorf("Items should continue from the current position, got %v", rest)
	}
	if cur.State() != Exhausted {
		t.Errorf("State after draining: got %s, want exhausted", cur.State())
	}
}

func TestItems_Break(t *testing.T) {
	path := writeAnnotation(t, "absolute_path", "/data/a.png", "/data/b.png")
	cur, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for range cur.Items() {
		break
	}
	if cur.Remaining() != 1 {
		t.Errorf("Remaining after break: got %d, want 1", cur.Remaining())
	}
	if cur.State() != Ready {
		t.Errorf("State after break: got %s, want ready", cur.State())
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Ready, "ready"},
		{Exhausted, "exhausted"},
		{State(7), "State(7)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
