// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/snapmerge/internal/merge"
)

// writeEmail writes a .eml fixture and returns its path.
func writeEmail(t *testing.T, body string) string {
	t.Helper()
	msg := strings.Join([]string{
		"From: Alice <alice@example.com>",
		"To: Bob <bob@example.com>",
		"Date: Mon, 02 Jan 2006 15:04:05 -0700",
		"Subject: Quarterly numbers",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")
	path := filepath.Join(t.TempDir(), "message.eml")
	if err := os.WriteFile(path, []byte(msg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEstimateMatchesRender(t *testing.T) {
	var long strings.Builder
	for i := 0; i < 400; i++ {
		fmt.Fprintf(&long, "Line %d of a fairly long email body that should wrap and paginate.\n", i)
	}

	tests := []struct {
		name     string
		body     string
		minPages int
	}{
		{name: "short body fits one page", body: "Hello Bob,\n\nHere are the numbers.", minPages: 1},
		{name: "long body paginates", body: long.String(), minPages: 2},
		{name: "empty body still renders", body: "", minPages: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eml := writeEmail(t, tt.body)
			out := filepath.Join(t.TempDir(), "out.pdf")

			estimated, err := EstimateEmailPages(eml)
			if err != nil {
				t.Fatalf("estimate: %v", err)
			}
			rendered, err := RenderEmail(eml, out)
			if err != nil {
				t.Fatalf("render: %v", err)
			}

			if estimated != rendered {
				t.Errorf("estimate = %d pages, render = %d pages", estimated, rendered)
			}
			if rendered < tt.minPages {
				t.Errorf("rendered %d pages, want at least %d", rendered, tt.minPages)
			}

			actual, err := merge.PageCount(out)
			if err != nil {
				t.Fatalf("counting output pages: %v", err)
			}
			if actual != rendered {
				t.Errorf("output has %d pages, renderer reported %d", actual, rendered)
			}
		})
	}
}

func TestEmailConverter_HTMLOnlyBody(t *testing.T) {
	msg := strings.Join([]string{
		"From: Alice <alice@example.com>",
		"To: Bob <bob@example.com>",
		"Subject: Styled",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<html><body><p>First paragraph.</p><p>Second<br>line.</p></body></html>",
	}, "\r\n")
	eml := filepath.Join(t.TempDir(), "styled.eml")
	if err := os.WriteFile(eml, []byte(msg), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := emailText(eml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(text, "<p>") {
		t.Errorf("HTML markup survived stripping: %q", text)
	}
	if !strings.Contains(text, "First paragraph.") {
		t.Errorf("body text missing: %q", text)
	}
	if !strings.Contains(text, "Subject: Styled") {
		t.Errorf("header block missing: %q", text)
	}
	if !strings.Contains(text, headerRule) {
		t.Errorf("header rule missing: %q", text)
	}
}

func TestEmailConverter_Convert(t *testing.T) {
	eml := writeEmail(t, "Body.")
	out := filepath.Join(t.TempDir(), "msg.pdf")

	conv := &EmailConverter{}
	res := conv.Convert(context.Background(), eml, out)
	if res.Status != StatusConverted {
		t.Fatalf("status = %s, want converted (err: %v)", res.Status, res.Err)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Errorf("expected output at %s: %v", res.Path, err)
	}
}

func TestEmailConverter_MissingFile(t *testing.T) {
	conv := &EmailConverter{}
	res := conv.Convert(context.Background(), filepath.Join(t.TempDir(), "absent.eml"), filepath.Join(t.TempDir(), "out.pdf"))
	if res.Status != StatusFailed {
		t.Errorf("status = %s, want failed", res.Status)
	}
}

func TestPaginate(t *testing.T) {
	perPage := (emailBottomYPt - emailTopYPt) / emailLeadingPt
	linesPerPage := int(perPage) + 1

	tests := []struct {
		name  string
		lines int
		want  int
	}{
		{name: "no lines still one page", lines: 0, want: 1},
		{name: "exactly one page", lines: linesPerPage, want: 1},
		{name: "one over spills", lines: linesPerPage + 1, want: 2},
		{name: "three pages", lines: linesPerPage*2 + 5, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := make([]string, tt.lines)
			for i := range lines {
				lines[i] = "x"
			}
			if got := len(paginate(lines)); got != tt.want {
				t.Errorf("got %d pages, want %d", got, tt.want)
			}
		})
	}
}
