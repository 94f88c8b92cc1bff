// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/jaytaylor/html2text"
	"github.com/jhillyerd/enmime"
)

// Email layout: Outlook-style print, Helvetica 10 on Letter. The renderer
// and the page estimator both go through wrapEmailLines and paginate, so
// the estimate always equals the rendered page count.
const (
	emailLeftMarginPt = 72.0
	emailTopYPt       = 36.0  // first baseline
	emailBottomYPt    = 720.0 // last baseline that still fits
	emailFontSize     = 10.0
	emailLeadingPt    = 13.0

	emailUsableWidthPt = pageWidthPt - 2*emailLeftMarginPt

	emailFont = "Helvetica"
)

// headerRule separates the header block from the body.
var headerRule = strings.Repeat("-", 72)

// EmailConverter renders a .eml message as a paginated text PDF.
type EmailConverter struct{}

// Convert parses the message at inputPath and writes the rendered PDF to
// outputPath.
func (c *EmailConverter) Convert(_ context.Context, inputPath, outputPath string) Result {
	if _, err := RenderEmail(inputPath, outputPath); err != nil {
		return Failed(err)
	}
	return Converted(outputPath)
}

// RenderEmail writes the PDF for the message at inputPath and returns the
// number of pages produced.
func RenderEmail(inputPath, outputPath string) (int, error) {
	text, err := emailText(inputPath)
	if err != nil {
		return 0, err
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(emailFont, "", emailFontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pages := paginate(wrapEmailLines(pdf, text))
	for _, page := range pages {
		pdf.AddPage()
		y := emailTopYPt
		for _, line := range page {
			if line != "" {
				pdf.Text(emailLeftMarginPt, y, tr(line))
			}
			y += emailLeadingPt
		}
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return 0, fmt.Errorf("writing email PDF %s: %w", outputPath, err)
	}
	return len(pages), nil
}

// EstimateEmailPages computes the page count the renderer would produce
// for the message at path, without writing a PDF. It shares the wrap and
// pagination code with RenderEmail.
func EstimateEmailPages(path string) (int, error) {
	text, err := emailText(path)
	if err != nil {
		return 0, err
	}

	// A throwaway document supplies the font metrics for wrapping.
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetFont(emailFont, "", emailFontSize)

	return len(paginate(wrapEmailLines(pdf, text))), nil
}

// emailText builds the full text to lay out: header block, rule, body.
func emailText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening email %s: %w", path, err)
	}
	defer f.Close()

	env, err := enmime.ReadEnvelope(f)
	if err != nil {
		return "", fmt.Errorf("parsing email %s: %w", path, err)
	}

	header := headerBlock(env)
	body := bestBody(env)
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")

	var text string
	switch {
	case header != "" && body != "":
		text = header + "\n" + body
	case header != "":
		text = header
	default:
		text = body
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = "(empty email)"
	}
	return text, nil
}

// headerBlock renders the From/Sent/To/Cc/Subject lines followed by a
// rule, dropping headers the message does not carry.
func headerBlock(env *enmime.Envelope) string {
	var lines []string
	for _, h := range []struct{ label, header string }{
		{"From", "From"},
		{"Sent", "Date"},
		{"To", "To"},
		{"Cc", "Cc"},
		{"Subject", "Subject"},
	} {
		if v := strings.TrimSpace(env.GetHeader(h.header)); v != "" {
			lines = append(lines, h.label+": "+v)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n" + headerRule + "\n"
}

// bestBody prefers the plain-text part; an HTML-only message is stripped
// down to plain text.
func bestBody(env *enmime.Envelope) string {
	if strings.TrimSpace(env.Text) != "" {
		return env.Text
	}
	if env.HTML != "" {
		if text, err := html2text.FromString(env.HTML); err == nil {
			return text
		}
	}
	return env.Text
}

// wrapEmailLines word-wraps text so every line fits the usable width,
// measured with the document's font metrics. Blank source lines survive
// as blank output lines.
func wrapEmailLines(pdf *fpdf.Fpdf, text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r\n")
		if line == "" {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range strings.Split(line, " ") {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if pdf.GetStringWidth(candidate) <= emailUsableWidthPt {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// paginate chunks wrapped lines into pages. Always at least one page.
func paginate(lines []string) [][]string {
	perPage := (emailBottomYPt - emailTopYPt) / emailLeadingPt
	linesPerPage := int(perPage) + 1

	if len(lines) == 0 {
		return [][]string{nil}
	}

	var pages [][]string
	for start := 0; start < len(lines); start += linesPerPage {
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	return pages
}
