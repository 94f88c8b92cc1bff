// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Report is the terminal artifact of one merge run. It is immutable once
// returned; "success" may still mean some inputs were dropped, so callers
// are expected to surface the skip list and counts.
type Report struct {
	// Input is the input root (or base directory in manual-list mode).
	Input string `json:"input" yaml:"input"`

	// Output is the destination PDF path.
	Output string `json:"output" yaml:"output"`

	// TotalFound is the number of files after discovery and filtering.
	TotalFound int `json:"total_found" yaml:"total_found"`

	// MergedCount is the number of entries handed to the merge engine.
	MergedCount int `json:"merged_count" yaml:"merged_count"`

	// ConvertedCount is the number of intermediate PDFs produced.
	ConvertedCount int `json:"converted_count" yaml:"converted_count"`

	// SkippedCount is the number of files dropped during conversion.
	SkippedCount int `json:"skipped_count" yaml:"skipped_count"`

	// Skipped lists the paths dropped during conversion, in encounter order.
	Skipped []string `json:"skipped" yaml:"skipped"`

	// MergeSkipped lists inputs the merge engine could not read
	// (corrupt or encrypted PDFs).
	MergeSkipped []string `json:"merge_skipped,omitempty" yaml:"merge_skipped,omitempty"`

	// OutputPages is the page count of the merged output, when page
	// counting is enabled in the settings. Zero when disabled.
	OutputPages int `json:"output_pages,omitempty" yaml:"output_pages,omitempty"`

	// StartedAt is the wall-clock start of the run.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is the elapsed run time.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// HasSkips reports whether any input was dropped at either stage.
func (r Report) HasSkips() bool {
	return r.SkippedCount > 0 || len(r.MergeSkipped) > 0
}
