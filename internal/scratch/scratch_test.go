// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scratch

import (
	"os"
	"testing"
)

func TestDirLifecycle(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(d.Path()); err != nil {
		t.Fatalf("scratch directory missing: %v", err)
	}

	if err := d.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := d.Remove(); err != nil {
		t.Errorf("second remove should be a no-op, got: %v", err)
	}
}

func TestPDFPath_SameStemDifferentInputs(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Remove()

	a := d.PDFPath(0, "/in/photos/report.png")
	b := d.PDFPath(1, "/in/docs/report.docx")
	if a == b {
		t.Errorf("same-stem inputs collided on %s", a)
	}
}
