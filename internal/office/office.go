// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office implements document-renderer detection and execution for
// Word-family inputs. The renderer is injected into the pipeline so it can
// be faked in tests; the production adapter drives headless LibreOffice.
package office

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	binSoffice     = "soffice"
	binLibreOffice = "libreoffice"
)

// Renderer converts one document into a PDF in a given directory.
type Renderer interface {
	// Name returns the renderer binary name.
	Name() string

	// Available reports whether the renderer binary exists on PATH and
	// responds to a version probe.
	Available() bool

	// Convert renders the document at inputPath into outDir and returns
	// the produced PDF path.
	Convert(ctx context.Context, inputPath, outDir string) (string, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// renderer implements Renderer for one LibreOffice binary name. The
// soffice and libreoffice launchers take identical arguments; they differ
// only in which name distributions install.
type renderer struct {
	bin  string
	exec executor
}

func (r *renderer) Name() string { return r.bin }

func (r *renderer) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(context.Background(), r.bin, "--version") == nil
}

func (r *renderer) Convert(ctx context.Context, inputPath, outDir string) (string, error) {
	args := []string{"--headless", "--norestore", "--convert-to", "pdf", "--outdir", outDir, inputPath}
	if err := r.exec.RunSilent(ctx, r.bin, args...); err != nil {
		return "", fmt.Errorf("rendering %s with %s: %w", inputPath, r.bin, err)
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+".pdf"), nil
}

var defaultExec = &osExecutor{}

// Detect tries soffice first, falls back to libreoffice. Returns an error
// when neither launcher is available; callers treat that as a soft-fail
// and run the pipeline without document conversion.
func Detect() (Renderer, error) {
	return detect(defaultExec)
}

func detect(exec executor) (Renderer, error) {
	soffice := &renderer{bin: binSoffice, exec: exec}
	if soffice.Available() {
		return soffice, nil
	}

	libre := &renderer{bin: binLibreOffice, exec: exec}
	if libre.Available() {
		return libre, nil
	}

	return nil, fmt.Errorf(
		"no document renderer available: neither %s nor %s found or operational",
		binSoffice, binLibreOffice,
	)
}
