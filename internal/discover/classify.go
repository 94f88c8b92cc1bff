// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"path/filepath"
	"strings"

	"github.com/pdiddy/snapmerge/pkg/types"
)

// Category is the file class a candidate belongs to. Classification is
// total: every path lands in exactly one category.
type Category string

const (
	CategoryPDF         Category = "pdf"
	CategoryImage       Category = "image"
	CategoryDocument    Category = "document"
	CategoryEmail       Category = "email"
	CategoryUnsupported Category = "unsupported"
)

// Classify maps a path to its category by looking up the lower-cased
// extension in the configured allow-lists. PDF wins over later categories
// when an extension appears in more than one list.
func Classify(path string, s types.Settings) Category {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case containsExt(s.AllowedPDFs, ext):
		return CategoryPDF
	case containsExt(s.AllowedImages, ext):
		return CategoryImage
	case containsExt(s.AllowedDocs, ext):
		return CategoryDocument
	case containsExt(s.AllowedEmails, ext):
		return CategoryEmail
	default:
		return CategoryUnsupported
	}
}

func containsExt(exts []string, ext string) bool {
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
