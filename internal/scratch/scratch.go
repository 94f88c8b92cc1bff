// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scratch owns the job-private temporary directory that holds
// intermediate conversion outputs.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a temporary directory exclusively owned by one job for its
// lifetime. Intermediate PDFs live only here and never survive the run.
type Dir struct {
	path string
}

// New creates a fresh scratch directory.
func New() (*Dir, error) {
	path, err := os.MkdirTemp("", "snapmerge-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the scratch directory path.
func (d *Dir) Path() string {
	return d.path
}

// PDFPath returns the scratch path for the intermediate PDF of the seq-th
// input. The sequence prefix keeps same-named inputs from different
// folders (or categories) from clobbering each other.
func (d *Dir) PDFPath(seq int, input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(d.path, fmt.Sprintf("%04d-%s.pdf", seq, stem))
}

// Remove deletes the scratch directory and everything in it. It is safe
// to call more than once.
func (d *Dir) Remove() error {
	if d == nil || d.path == "" {
		return nil
	}
	err := os.RemoveAll(d.path)
	d.path = ""
	return err
}
