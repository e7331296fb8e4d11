package dataset

import "sort"

// SortByArea orders rows by ascending area. The sort is stable, and rows with
// a null area go last in their original relative order.
//
// SortByArea fails with ErrSort when AddArea has not run.
func SortByArea(t *Table) (*Table, error) {
	areas, ok := t.intColumn(ColumnArea)
	if !ok {
		return nil, missingColumn(ErrSort, ColumnArea)
	}

	rows := make([]int, len(areas))
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		x, y := areas[rows[a]], areas[rows[b]]
		if !x.Valid {
			return false
		}
		if !y.Valid {
			return true
		}
		return x.Value < y.Value
	})
	return t.take(rows), nil
}
