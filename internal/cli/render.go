package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ironsheep/image-dataset-tools/internal/dataset"
	"github.com/ironsheep/image-dataset-tools/internal/imaging"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// writeTable prints t with its annotation row numbers in the first column.
func writeTable(w io.Writer, t *dataset.Table) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintf(w, "Empty table (columns: %s)\n", strings.Join(t.Columns(), ", "))
		return err
	}

	tw := newTabWriter(w)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(t.Columns(), "\t"))
	for i := 0; i < t.Len(); i++ {
		fmt.Fprintf(tw, "%d\t%s\n", t.Origin(i), strings.Join(t.Record(i), "\t"))
	}
	return tw.Flush()
}

// writeSummary prints one row per metric and one column per described column.
func writeSummary(w io.Writer, s *dataset.Summary) error {
	tw := newTabWriter(w)

	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Column
	}
	fmt.Fprintf(tw, "\t%s\n", strings.Join(names, "\t"))

	for m, metric := range dataset.MetricNames {
		cells := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			cells[i] = formatStat(c.Values()[m])
		}
		fmt.Fprintf(tw, "%s\t%s\n", metric, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func formatStat(s dataset.Stat) string {
	if !s.Valid() {
		return "NaN"
	}
	return strconv.FormatFloat(float64(s), 'f', 6, 64)
}

func describeBounds(b dataset.Bounds) string {
	limit := func(v dataset.Int) string {
		if !v.Valid {
			return "any"
		}
		return strconv.Itoa(v.Value)
	}
	return fmt.Sprintf("height <= %s, width <= %s", limit(b.MaxHeight), limit(b.MaxWidth))
}

func writeHistogram(w io.Writer, h *imaging.HistogramResult) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "channel\tmean\tpeak\n")
	for _, c := range []struct {
		name  string
		stats imaging.ChannelStats
	}{
		{"red", h.Red},
		{"green", h.Green},
		{"blue", h.Blue},
	} {
		fmt.Fprintf(tw, "%s\t%.2f\t%d\n", c.name, c.stats.Mean, c.stats.Peak)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Mean color: %s (hsl %.1f, %.1f%%, %.1f%%)\n", h.MeanColor, h.MeanHSL.H, h.MeanHSL.S, h.MeanHSL.L)
	return err
}
