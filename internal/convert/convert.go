// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns non-PDF inputs (images, Word-family documents,
// email messages) into intermediate PDFs in the job's scratch directory.
package convert

import "context"

// Status classifies the outcome of a single conversion.
type Status string

const (
	// StatusConverted means an intermediate PDF was produced.
	StatusConverted Status = "converted"

	// StatusUnavailable means the conversion capability is missing on this
	// machine (no document renderer installed). A soft-fail: the file is
	// skipped, the job continues.
	StatusUnavailable Status = "unavailable"

	// StatusFailed means the converter ran and broke (corrupt input,
	// renderer crash). Also skip-and-continue, but carries the error.
	StatusFailed Status = "failed"
)

// Result is the tagged outcome of one conversion. Exactly one of Path,
// Reason, or Err is meaningful, selected by Status.
type Result struct {
	Status Status
	Path   string // produced PDF, when Status is StatusConverted
	Reason string // human-readable cause, when Status is StatusUnavailable
	Err    error  // conversion error, when Status is StatusFailed
}

// Converted builds a success result.
func Converted(path string) Result {
	return Result{Status: StatusConverted, Path: path}
}

// Unavailable builds a soft-fail result.
func Unavailable(reason string) Result {
	return Result{Status: StatusUnavailable, Reason: reason}
}

// Failed builds an error result.
func Failed(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}

// Converter produces a PDF at outputPath from one input file. Converters
// never abort the job: every outcome is expressed through the Result tag.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string) Result
}
