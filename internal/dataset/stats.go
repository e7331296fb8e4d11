package dataset

import (
	"math"
	"sort"
	"strconv"
)

// Stat is one descriptive statistic. Undefined statistics are NaN.
type Stat float64

// Valid reports whether the statistic is defined.
func (s Stat) Valid() bool {
	return !math.IsNaN(float64(s))
}

// MarshalJSON encodes undefined statistics as JSON null.
func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(s), 'f', -1, 64), nil
}

// MetricNames labels the rows of ColumnStats.Values, in order.
var MetricNames = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// ColumnStats describes the non-null values of one numeric column.
type ColumnStats struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Mean   Stat   `json:"mean"`
	Std    Stat   `json:"std"` // sample standard deviation (N-1)
	Min    Stat   `json:"min"`
	P25    Stat   `json:"p25"`
	P50    Stat   `json:"p50"`
	P75    Stat   `json:"p75"`
	Max    Stat   `json:"max"`
}

// Values returns the eight metrics in MetricNames order.
func (c ColumnStats) Values() []Stat {
	return []Stat{Stat(c.Count), c.Mean, c.Std, c.Min, c.P25, c.P50, c.P75, c.Max}
}

// Summary holds the statistics of the dimension columns.
type Summary struct {
	Columns []ColumnStats `json:"columns"`
}

// Column returns the statistics for one column.
func (s *Summary) Column(name string) (ColumnStats, bool) {
	for _, c := range s.Columns {
		if c.Column == name {
			return c, true
		}
	}
	return ColumnStats{}, false
}

// DescribedColumns are the columns summarized by Describe.
var DescribedColumns = []string{ColumnHeight, ColumnWidth, ColumnDepth}

// Describe computes count, mean, std, min, quartiles and max of the height,
// width and depth columns. Null cells are left out of every statistic.
// Percentiles interpolate linearly between order statistics.
//
// Describe fails with ErrStatistics when the table has not been probed.
func Describe(t *Table) (*Summary, error) {
	s := &Summary{Columns: make([]ColumnStats, 0, len(DescribedColumns))}
	for _, name := range DescribedColumns {
		values, ok := t.intColumn(name)
		if !ok {
			return nil, missingColumn(ErrStatistics, name)
		}
		s.Columns = append(s.Columns, describeColumn(name, values))
	}
	return s, nil
}

func describeColumn(name string, values []Int) ColumnStats {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid {
			xs = append(xs, float64(v.Value))
		}
	}
	sort.Float64s(xs)

	nan := Stat(math.NaN())
	cs := ColumnStats{
		Column: name,
		Count:  len(xs),
		Mean:   nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan,
	}
	if len(xs) == 0 {
		return cs
	}

	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	cs.Mean = Stat(mean)

	if len(xs) > 1 {
		var ss float64
		for _, x := range xs {
			ss += (x - mean) * (x - mean)
		}
		cs.Std = Stat(math.Sqrt(ss / float64(len(xs)-1)))
	}

	cs.Min = Stat(xs[0])
	cs.P25 = Stat(quantile(xs, 0.25))
	cs.P50 = Stat(quantile(xs, 0.50))
	cs.P75 = Stat(quantile(xs, 0.75))
	cs.Max = Stat(xs[len(xs)-1])
	return cs
}

// quantile interpolates linearly between the order statistics of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}
