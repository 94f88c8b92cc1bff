// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

// writePDF creates a PDF with the given number of pages.
func writePDF(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Text(72, 72, fmt.Sprintf("%s page %d", name, i+1))
	}
	path := filepath.Join(dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 2)
	b := writePDF(t, dir, "b.pdf", 1)
	c := writePDF(t, dir, "c.pdf", 3)
	dest := filepath.Join(dir, "out", "merged.pdf")

	var statuses []string
	var progressed [][2]int
	skipped, err := Files(context.Background(), []string{a, b, c}, dest,
		func(text string) { statuses = append(statuses, text) },
		func(done, total int) { progressed = append(progressed, [2]int{done, total}) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}

	pages, err := PageCount(dest)
	if err != nil {
		t.Fatalf("counting merged pages: %v", err)
	}
	if pages != 6 {
		t.Errorf("merged output has %d pages, want 6", pages)
	}

	if len(progressed) != 3 {
		t.Fatalf("got %d progress events, want 3", len(progressed))
	}
	if last := progressed[2]; last != [2]int{3, 3} {
		t.Errorf("final progress = %v, want [3 3]", last)
	}
	if len(statuses) != 3 {
		t.Errorf("got %d status events, want 3: %v", len(statuses), statuses)
	}
}

func TestFiles_SkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	good := writePDF(t, dir, "good.pdf", 2)
	bad := filepath.Join(dir, "bad.pdf")
	if err := os.WriteFile(bad, []byte("%PDF-1.4 truncated garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(dir, "merged.pdf")

	var statuses []string
	var events int
	skipped, err := Files(context.Background(), []string{good, bad}, dest,
		func(text string) { statuses = append(statuses, text) },
		func(done, total int) { events++ },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 1 || skipped[0] != bad {
		t.Errorf("skipped = %v, want [%s]", skipped, bad)
	}
	if events != 2 {
		t.Errorf("got %d progress events, want 2 (skips still count)", events)
	}

	var sawSkipStatus bool
	for _, s := range statuses {
		if strings.Contains(s, "Skipping (unreadable/encrypted): bad.pdf") {
			sawSkipStatus = true
		}
	}
	if !sawSkipStatus {
		t.Errorf("no skip status emitted: %v", statuses)
	}

	pages, err := PageCount(dest)
	if err != nil {
		t.Fatalf("counting merged pages: %v", err)
	}
	if pages != 2 {
		t.Errorf("merged output has %d pages, want 2", pages)
	}
}

func TestFiles_AllUnreadableWritesBlank(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.pdf")
	if err := os.WriteFile(bad, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(dir, "merged.pdf")

	skipped, err := Files(context.Background(), []string{bad}, dest, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, want one entry", skipped)
	}

	pages, err := PageCount(dest)
	if err != nil {
		t.Fatalf("output should still exist and parse: %v", err)
	}
	if pages != 1 {
		t.Errorf("blank output has %d pages, want 1", pages)
	}
}

func TestFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 1)
	dest := filepath.Join(dir, "merged.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Files(ctx, []string{a}, dest, nil, nil)
	if err == nil {
		t.Fatal("expected context error, got nil")
	}
	if _, statErr := os.Stat(dest); statErr == nil {
		t.Error("cancelled merge should not have written the destination")
	}
}
