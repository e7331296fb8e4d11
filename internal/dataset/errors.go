package dataset

import (
	"errors"
	"fmt"
)

// Stage errors. Each pipeline stage wraps exactly one of these around the
// underlying cause, so callers can tell stages apart with errors.Is.
var (
	ErrAnnotationRead = errors.New("the annotation could not be read")
	ErrImageProbe     = errors.New("the images could not be probed")
	ErrStatistics     = errors.New("statistics could not be calculated")
	ErrFilter         = errors.New("the table could not be filtered")
	ErrTransform      = errors.New("the column could not be added")
	ErrSort           = errors.New("the table could not be sorted")
)

// MissingColumnError reports a stage that ran before the stage producing the
// column it needs.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// ProbeError describes one image that could not be decoded.
type ProbeError struct {
	// Row is the 0-based annotation row of the image.
	Row int

	// Path is the image path as written in the annotation.
	Path string

	Err error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

func missingColumn(stage error, name string) error {
	return fmt.Errorf("%w: %w", stage, &MissingColumnError{Column: name})
}
