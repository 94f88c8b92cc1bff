// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge concatenates an ordered list of PDFs into one output
// document, skipping inputs that cannot be read.
package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// StatusFunc receives human-readable per-file events.
type StatusFunc func(text string)

// ProgressFunc receives (done, total) after each attempted input.
type ProgressFunc func(done, total int)

var disableConfigDir sync.Once

// Files appends the pages of each input, in order, into dest. Inputs that
// cannot be opened (corrupt, password-protected) are skipped and returned;
// a single bad input never aborts the merge. Status fires per file and
// progress fires after every file, skipped or not. The destination is
// written only after all inputs were attempted; its parent directories are
// created as needed. When no input survives, dest is still written as a
// near-empty document, which is not an error at this layer.
func Files(ctx context.Context, inputs []string, dest string, status StatusFunc, progress ProgressFunc) (skipped []string, err error) {
	disableConfigDir.Do(api.DisableConfigDir)

	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	total := len(inputs)
	var valid []string
	for i, p := range inputs {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}

		base := filepath.Base(p)
		emitStatus(status, "Merging: "+base)

		if _, countErr := api.PageCountFile(p); countErr != nil {
			emitStatus(status, fmt.Sprintf("Skipping (unreadable/encrypted): %s (%v)", base, countErr))
			skipped = append(skipped, p)
		} else {
			valid = append(valid, p)
		}

		emitProgress(progress, i+1, total)
	}

	if len(valid) == 0 {
		if err := writeBlank(dest); err != nil {
			return skipped, err
		}
		return skipped, nil
	}

	if err := api.MergeCreateFile(valid, dest, false, nil); err != nil {
		return skipped, fmt.Errorf("writing merged PDF %s: %w", dest, err)
	}
	return skipped, nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	disableConfigDir.Do(api.DisableConfigDir)

	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// writeBlank produces a single blank page so the destination exists even
// when every input was skipped.
func writeBlank(dest string) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	if err := pdf.OutputFileAndClose(dest); err != nil {
		return fmt.Errorf("writing empty output %s: %w", dest, err)
	}
	return nil
}

// emitStatus forwards status text when a callback is configured.
func emitStatus(cb StatusFunc, text string) {
	if cb != nil {
		cb(text)
	}
}

// emitProgress forwards progress counts when a callback is configured.
func emitProgress(cb ProgressFunc, done, total int) {
	if cb != nil {
		cb(done, total)
	}
}
