// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/snapmerge/internal/office"
)

// DocumentConverter renders Word-family documents (.doc/.docx/.odt/.rtf)
// through an injected office.Renderer. A missing renderer is a soft-fail,
// not an error: the pipeline keeps going without document support.
type DocumentConverter struct {
	renderer office.Renderer
}

// NewDocumentConverter wraps a renderer; nil means "no renderer on this
// machine" and every Convert call reports StatusUnavailable.
func NewDocumentConverter(r office.Renderer) *DocumentConverter {
	return &DocumentConverter{renderer: r}
}

// Convert renders inputPath to a PDF and moves it to outputPath.
func (c *DocumentConverter) Convert(ctx context.Context, inputPath, outputPath string) Result {
	if c.renderer == nil {
		return Unavailable("no document renderer available")
	}

	produced, err := c.renderer.Convert(ctx, inputPath, filepath.Dir(outputPath))
	if err != nil {
		return Failed(err)
	}
	if _, err := os.Stat(produced); err != nil {
		return Failed(fmt.Errorf("renderer reported success but %s is missing: %w", produced, err))
	}

	// The renderer names its output after the input stem; the job wants
	// the sequence-prefixed scratch name.
	if produced != outputPath {
		if err := os.Rename(produced, outputPath); err != nil {
			return Failed(fmt.Errorf("moving rendered PDF to %s: %w", outputPath, err))
		}
	}
	return Converted(outputPath)
}
