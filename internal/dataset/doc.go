// Package dataset implements the annotation-driven image dataset pipeline.
//
// An annotation is a CSV table with one image per row. The pipeline runs in
// one direction only:
//
//	Load -> Probe -> Describe
//	              -> Filter
//	              -> AddArea -> SortByArea
//
// Load parses the annotation into a Table. Probe asks a Decoder for the
// height, width and channel depth of every image. Describe summarizes those
// columns. Filter keeps images within a size limit, AddArea derives the pixel
// area and SortByArea orders rows by it.
//
// # Tables
//
// Every stage returns a new Table and leaves its input untouched. Text
// columns hold the annotation cells verbatim; dimension columns are nullable
// integers (Int), null where an image could not be probed.
//
// # Errors
//
// Each stage wraps its own sentinel (ErrAnnotationRead, ErrImageProbe,
// ErrStatistics, ErrFilter, ErrTransform, ErrSort) around the cause. A stage
// that runs before its inputs exist reports a *MissingColumnError. No stage
// returns a partial table alongside an error.
package dataset
