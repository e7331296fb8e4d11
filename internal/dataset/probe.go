package dataset

import (
	"fmt"

	"github.com/ironsheep/image-dataset-tools/internal/imaging"
)

// Decoder reads the dimensions of one image without keeping its pixels.
// imaging.FileDecoder is the production implementation.
type Decoder interface {
	DecodeDimensions(path string) (imaging.Dimensions, error)
}

// ProbePolicy selects what Probe does when an image cannot be decoded.
type ProbePolicy string

const (
	// ProbeStrict aborts the whole probe on the first failure (default).
	ProbeStrict ProbePolicy = "strict"

	// ProbePermissive records null dimensions for the failed row and continues.
	ProbePermissive ProbePolicy = "permissive"
)

// ParseProbePolicy converts a flag or environment value into a ProbePolicy.
func ParseProbePolicy(s string) (ProbePolicy, error) {
	switch p := ProbePolicy(s); p {
	case ProbeStrict, ProbePermissive:
		return p, nil
	default:
		return "", fmt.Errorf("invalid probe policy %q (must be %s or %s)", s, ProbeStrict, ProbePermissive)
	}
}

// Probe decodes the image of every row and returns a new table with height,
// width and depth columns appended.
//
// Rows are probed in table order, one header read per row. Under ProbeStrict
// the first failure returns an error wrapping ErrImageProbe and a *ProbeError,
// and no table. Under ProbePermissive failed rows get null dimensions and are
// listed by Table.ProbeFailures.
//
// Probing a table that already has dimension columns replaces them; a stale
// area column is dropped.
func Probe(t *Table, dec Decoder, policy ProbePolicy) (*Table, error) {
	if policy != ProbeStrict && policy != ProbePermissive {
		return nil, fmt.Errorf("%w: invalid probe policy %q", ErrImageProbe, policy)
	}

	paths := t.columns[t.index(t.pathColumn)].text
	heights := make([]Int, len(paths))
	widths := make([]Int, len(paths))
	depths := make([]Int, len(paths))
	var failures []ProbeError

	for i, path := range paths {
		dims, err := dec.DecodeDimensions(path)
		if err != nil {
			pe := ProbeError{Row: t.origin[i], Path: path, Err: err}
			if policy == ProbeStrict {
				return nil, fmt.Errorf("%w: %w", ErrImageProbe, &pe)
			}
			failures = append(failures, pe)
			continue
		}
		heights[i] = IntOf(dims.Height)
		widths[i] = IntOf(dims.Width)
		depths[i] = IntOf(dims.Depth)
	}

	out := t.clone()
	out.drop(ColumnArea)
	out.setInts(ColumnHeight, heights)
	out.setInts(ColumnWidth, widths)
	out.setInts(ColumnDepth, depths)
	out.failures = failures
	return out, nil
}
