// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared configuration and report records used by
// the merge pipeline and the CLI.
package types

import (
	"path/filepath"
	"strings"
)

// SortKey selects the ordering applied to discovered files.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCreated  SortKey = "created"
	SortByModified SortKey = "modified"
)

// Settings holds the merge configuration loaded from snapmerge.yaml.
// A Settings value is read-only once a job has been started from it.
type Settings struct {
	// IncludeSubfolders controls whether discovery recurses into
	// subdirectories of the input root.
	IncludeSubfolders bool `json:"include_subfolders" yaml:"include_subfolders" mapstructure:"include_subfolders"`

	// SortBy orders discovered files: name, created, or modified.
	// Unknown values fall back to name ordering.
	SortBy SortKey `json:"sort_by" yaml:"sort_by" mapstructure:"sort_by"`

	// SortDesc reverses the sort order.
	SortDesc bool `json:"sort_desc" yaml:"sort_desc" mapstructure:"sort_desc"`

	// ImageMarginPts is the page margin, in points, around converted images.
	ImageMarginPts int `json:"image_margin_pts" yaml:"image_margin_pts" mapstructure:"image_margin_pts"`

	// MaxImageDimPx caps the longest edge of an image before placement;
	// larger images are downscaled first.
	MaxImageDimPx int `json:"max_image_dim_px" yaml:"max_image_dim_px" mapstructure:"max_image_dim_px"`

	// Workers is reserved for future parallel conversion. The pipeline
	// currently processes files strictly in order.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// PageCount controls whether the final report includes the page count
	// of the merged output.
	PageCount bool `json:"page_count" yaml:"page_count" mapstructure:"page_count"`

	// AllowedImages lists image extensions (lowercase, with leading dot).
	AllowedImages []string `json:"allowed_images" yaml:"allowed_images" mapstructure:"allowed_images"`

	// AllowedDocs lists Word-family document extensions.
	AllowedDocs []string `json:"allowed_docs" yaml:"allowed_docs" mapstructure:"allowed_docs"`

	// AllowedPDFs lists PDF extensions.
	AllowedPDFs []string `json:"allowed_pdfs" yaml:"allowed_pdfs" mapstructure:"allowed_pdfs"`

	// AllowedEmails lists email message extensions.
	AllowedEmails []string `json:"allowed_emails" yaml:"allowed_emails" mapstructure:"allowed_emails"`
}

// DefaultSettings returns the built-in configuration used when no config
// file is present.
func DefaultSettings() Settings {
	return Settings{
		IncludeSubfolders: true,
		SortBy:            SortByName,
		SortDesc:          false,
		ImageMarginPts:    24,
		MaxImageDimPx:     4000,
		Workers:           4,
		PageCount:         true,
		AllowedImages:     []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".webp"},
		AllowedDocs:       []string{".docx", ".doc", ".odt", ".rtf"},
		AllowedPDFs:       []string{".pdf"},
		AllowedEmails:     []string{".eml"},
	}
}

// AllowedExts returns the union of all allow-lists, lower-cased.
func (s Settings) AllowedExts() []string {
	var exts []string
	for _, group := range [][]string{s.AllowedPDFs, s.AllowedImages, s.AllowedDocs, s.AllowedEmails} {
		for _, e := range group {
			exts = append(exts, strings.ToLower(e))
		}
	}
	return exts
}

// JobSettings binds a Settings value to one run's input root and output
// path. It is immutable for the lifetime of the job.
type JobSettings struct {
	Settings

	// InputRoot is the directory (folder mode) or the informational base
	// directory (manual-list mode) of the run.
	InputRoot string

	// OutputPDF is the destination path. Always carries a .pdf suffix.
	OutputPDF string
}

// Job builds the immutable per-run settings. The output path is forced to
// a .pdf suffix when the caller supplied something else.
func (s Settings) Job(inputRoot, outputPDF string) JobSettings {
	if !strings.EqualFold(filepath.Ext(outputPDF), ".pdf") {
		outputPDF += ".pdf"
	}
	return JobSettings{
		Settings:  s,
		InputRoot: inputRoot,
		OutputPDF: outputPDF,
	}
}
