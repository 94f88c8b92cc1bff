// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/snapmerge/pkg/types"
)

// writeFile creates an empty file at dir/name, creating parents as needed.
func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pdf")
	writeFile(t, dir, "b.png")
	writeFile(t, dir, "sub/c.docx")
	writeFile(t, dir, "sub/deep/d.eml")

	tests := []struct {
		name    string
		recurse bool
		want    int
	}{
		{name: "non-recursive yields direct children only", recurse: false, want: 2},
		{name: "recursive yields the whole tree", recurse: true, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Discover(dir, tt.recurse)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(files) != tt.want {
				t.Errorf("got %d files, want %d: %v", len(files), tt.want, files)
			}
			seen := map[string]bool{}
			for _, f := range files {
				if !filepath.IsAbs(f) {
					t.Errorf("path %s is not absolute", f)
				}
				if seen[f] {
					t.Errorf("duplicate path %s", f)
				}
				seen[f] = true
				info, err := os.Stat(f)
				if err != nil || info.IsDir() {
					t.Errorf("path %s is not a regular file", f)
				}
			}
		})
	}
}

func TestDiscover_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.pdf")

	if _, err := Discover(file, true); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("got %v, want ErrNotDirectory", err)
	}
	if _, err := Discover(filepath.Join(dir, "missing"), true); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestFilterSort_Name(t *testing.T) {
	files := []string{"/in/Bravo.PDF", "/in/alpha.pdf", "/in/notes.txt", "/in/charlie.png"}
	allowed := []string{".pdf", ".png"}

	got := FilterSort(files, allowed, types.SortByName, false)
	want := []string{"/in/alpha.pdf", "/in/Bravo.PDF", "/in/charlie.png"}
	assertOrder(t, got, want)

	// desc is the exact reverse of asc for the same key and input
	desc := FilterSort(files, allowed, types.SortByName, true)
	for i := range want {
		if desc[i] != want[len(want)-1-i] {
			t.Fatalf("desc[%d] = %s, want %s", i, desc[i], want[len(want)-1-i])
		}
	}
}

func TestFilterSort_UnknownKeyFallsBackToName(t *testing.T) {
	files := []string{"/in/b.pdf", "/in/a.pdf"}
	got := FilterSort(files, []string{".pdf"}, types.SortKey("bogus"), false)
	assertOrder(t, got, []string{"/in/a.pdf", "/in/b.pdf"})
}

func TestFilterSort_StableOnTies(t *testing.T) {
	// Same lower-cased base name in different directories: ties keep the
	// discovery order.
	files := []string{"/z/same.pdf", "/a/same.pdf", "/m/same.pdf"}
	got := FilterSort(files, []string{".pdf"}, types.SortByName, false)
	assertOrder(t, got, files)
}

func TestFilterSort_Modified(t *testing.T) {
	dir := t.TempDir()
	older := writeFile(t, dir, "older.pdf")
	newer := writeFile(t, dir, "newer.pdf")

	base := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, base, base); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	got := FilterSort([]string{newer, older}, []string{".pdf"}, types.SortByModified, false)
	assertOrder(t, got, []string{older, newer})
}

func TestFilterSort_CaseInsensitiveExtensions(t *testing.T) {
	files := []string{"/in/a.PDF", "/in/b.Png", "/in/c.txt"}
	got := FilterSort(files, []string{".pdf", ".png"}, types.SortByName, false)
	if len(got) != 2 {
		t.Errorf("got %d files, want 2: %v", len(got), got)
	}
}

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestClassify(t *testing.T) {
	s := types.DefaultSettings()
	tests := []struct {
		path string
		want Category
	}{
		{"/in/a.pdf", CategoryPDF},
		{"/in/a.PDF", CategoryPDF},
		{"/in/b.jpg", CategoryImage},
		{"/in/c.docx", CategoryDocument},
		{"/in/c.rtf", CategoryDocument},
		{"/in/d.eml", CategoryEmail},
		{"/in/e.txt", CategoryUnsupported},
		{"/in/noext", CategoryUnsupported},
	}
	for _, tt := range tests {
		if got := Classify(tt.path, s); got != tt.want {
			t.Errorf("Classify(%s) = %s, want %s", tt.path, got, tt.want)
		}
	}
}
