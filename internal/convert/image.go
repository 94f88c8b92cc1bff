// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

// Fixed page geometry for image placement: Letter in points, with image
// pixels interpreted at a nominal 300 DPI.
const (
	pageWidthPt  = 612.0
	pageHeightPt = 792.0
	imageDPI     = 300.0

	// maxUpscale caps how far a small image may be enlarged. The fit into
	// the usable page area still applies on top of this.
	maxUpscale = 3.0
)

var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ImageConverter renders one raster image onto a single Letter page,
// centered inside the configured margin. Output is deterministic for
// identical input bytes and settings.
type ImageConverter struct {
	// MarginPts is the page margin in points. Margins that leave no usable
	// area are ignored.
	MarginPts int

	// MaxDimPx caps the longest image edge; larger images are downscaled
	// with Lanczos resampling before placement. Zero disables the cap.
	MaxDimPx int
}

// Convert reads the image at inputPath and writes a one-page PDF to
// outputPath.
func (c *ImageConverter) Convert(_ context.Context, inputPath, outputPath string) Result {
	img, err := imaging.Open(inputPath)
	if err != nil {
		return Failed(fmt.Errorf("opening image %s: %w", inputPath, err))
	}

	if c.MaxDimPx > 0 {
		b := img.Bounds()
		if b.Dx() > c.MaxDimPx || b.Dy() > c.MaxDimPx {
			img = imaging.Fit(img, c.MaxDimPx, c.MaxDimPx, imaging.Lanczos)
		}
	}

	bounds := img.Bounds()
	naturalW := float64(bounds.Dx()) * 72.0 / imageDPI
	naturalH := float64(bounds.Dy()) * 72.0 / imageDPI

	margin := float64(c.MarginPts)
	if margin < 0 {
		margin = 0
	}
	innerW := pageWidthPt - 2*margin
	innerH := pageHeightPt - 2*margin
	if innerW <= 0 || innerH <= 0 {
		margin = 0
		innerW, innerH = pageWidthPt, pageHeightPt
	}

	scaleToFit := innerW / naturalW
	if s := innerH / naturalH; s < scaleToFit {
		scaleToFit = s
	}
	scale := scaleToFit
	if scaleToFit >= 1.0 && scale > maxUpscale {
		scale = maxUpscale
	}

	dispW := naturalW * scale
	dispH := naturalH * scale
	x := margin + (innerW-dispW)/2
	y := margin + (innerH-dispH)/2

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return Failed(fmt.Errorf("encoding image %s: %w", inputPath, err))
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	// Fixed metadata dates keep output bytes reproducible for identical
	// input and settings.
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("image", opts, &buf)
	pdf.ImageOptions("image", x, y, dispW, dispH, false, opts, 0, "")

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return Failed(fmt.Errorf("writing image PDF %s: %w", outputPath, err))
	}
	return Converted(outputPath)
}
