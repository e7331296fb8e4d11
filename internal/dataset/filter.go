package dataset

// Bounds are inclusive upper limits on image size. A null bound is unbounded.
type Bounds struct {
	MaxHeight Int
	MaxWidth  Int
}

// Filter keeps the rows with height <= maxHeight and width <= maxWidth.
// Rows with a null height or width never pass. Row order is preserved.
//
// Filter fails with ErrFilter when the table has not been probed.
func Filter(t *Table, maxHeight, maxWidth int) (*Table, error) {
	return FilterBounds(t, Bounds{MaxHeight: IntOf(maxHeight), MaxWidth: IntOf(maxWidth)})
}

// FilterBounds is Filter with optional limits, as produced by ParseWhere.
func FilterBounds(t *Table, b Bounds) (*Table, error) {
	heights, ok := t.intColumn(ColumnHeight)
	if !ok {
		return nil, missingColumn(ErrFilter, ColumnHeight)
	}
	widths, ok := t.intColumn(ColumnWidth)
	if !ok {
		return nil, missingColumn(ErrFilter, ColumnWidth)
	}

	keep := make([]int, 0, t.Len())
	for i := range heights {
		if within(heights[i], b.MaxHeight) && within(widths[i], b.MaxWidth) {
			keep = append(keep, i)
		}
	}
	return t.take(keep), nil
}

func within(v, limit Int) bool {
	if !v.Valid {
		return false
	}
	return !limit.Valid || v.Value <= limit.Value
}

// AddArea returns a table with an area column equal to height * width.
// Rows with a null height or width get a null area. Running it again
// recomputes the column in place.
//
// AddArea fails with ErrTransform when the table has not been probed.
func AddArea(t *Table) (*Table, error) {
	heights, ok := t.intColumn(ColumnHeight)
	if !ok {
		return nil, missingColumn(ErrTransform, ColumnHeight)
	}
	widths, ok := t.intColumn(ColumnWidth)
	if !ok {
		return nil, missingColumn(ErrTransform, ColumnWidth)
	}

	areas := make([]Int, len(heights))
	for i := range heights {
		if heights[i].Valid && widths[i].Valid {
			areas[i] = IntOf(heights[i].Value * widths[i].Value)
		}
	}

	out := t.clone()
	out.setInts(ColumnArea, areas)
	return out, nil
}
