package dataset

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func approx(a Stat, b float64) bool {
	return math.Abs(float64(a)-b) < 1e-9
}

func TestDescribe(t *testing.T) {
	tbl := mustProbe(t, ProbeStrict,
		"absolute_path",
		"/data/a.png",
		"/data/b.png",
	)

	s, err := Describe(tbl)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if len(s.Columns) != 3 {
		t.Fatalf("expected 3 described columns, got %d", len(s.Columns))
	}

	h, ok := s.Column(ColumnHeight)
	if !ok {
		t.Fatal("missing height statistics")
	}

	tests := []struct {
		name string
		got  Stat
		want float64
	}{
		{"count", Stat(h.Count), 2},
		{"mean", h.Mean, 200},
		{"std", h.Std, math.Sqrt(20000)}, // sample std of {100, 300}
		{"min", h.Min, 100},
		{"25%", h.P25, 150},
		{"50%", h.P50, 200},
		{"75%", h.P75, 250},
		{"max", h.Max, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approx(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	d, _ := s.Column(ColumnDepth)
	if !approx(d.Std, 0) || !approx(d.Mean, 3) {
		t.Errorf("depth: got mean %v std %v, want 3 and 0", d.Mean, d.Std)
	}
}

func TestDescribe_SingleRow(t *testing.T) {
	tbl := mustProbe(t, ProbeStrict, "absolute_path", "/data/a.png")

	s, err := Describe(tbl)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	w, _ := s.Column(ColumnWidth)
	if w.Count != 1 || !approx(w.Mean, 200) || !approx(w.P25, 200) || !approx(w.Max, 200) {
		t.Errorf("unexpected width statistics: %+v", w)
	}
	if w.Std.Valid() {
		t.Errorf("std of one value should be NaN, got %v", w.Std)
	}
}

func TestDescribe_SkipsNulls(t *testing.T) {
	tbl := mustProbe(t, ProbePermissive,
		"absolute_path",
		"/data/a.png",
		"/data/missing.png",
		"/data/b.png",
	)

	s, err := Describe(tbl)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	h, _ := s.Column(ColumnHeight)
	if h.Count != 2 {
		t.Errorf("count: got %d, want 2", h.Count)
	}
	if !approx(h.Mean, 200) {
		t.Errorf("mean: got %v, want 200", h.Mean)
	}
}

func TestDescribe_AllNull(t *testing.T) {
	tbl := mustProbe(t, ProbePermissive, "absolute_path", "/data/missing.png")

	s, err := Describe(tbl)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	h, _ := s.Column(ColumnHeight)
	if h.Count != 0 {
		t.Errorf("count: got %d, want 0", h.Count)
	}
	for i, v := range h.Values()[1:] {
		if v.Valid() {
			t.Errorf("%s: got %v, want NaN", MetricNames[i+1], v)
		}
	}

	b, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"mean":null`) {
		t.Errorf("NaN statistics should marshal as null: %s", b)
	}
}

func TestDescribe_Unprobed(t *testing.T) {
	tbl := mustRead(t, "absolute_path", "/data/a.png")

	_, err := Describe(tbl)
	if !errors.Is(err, ErrStatistics) {
		t.Fatalf("expected ErrStatistics, got %v", err)
	}
	var mc *MissingColumnError
	if !errors.As(err, &mc) || mc.Column != ColumnHeight {
		t.Errorf("expected missing height column, got %v", err)
	}
}

func TestQuantile(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		if got := quantile(xs, tt.q); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("quantile(%v): got %v, want %v", tt.q, got, tt.want)
		}
	}
}
