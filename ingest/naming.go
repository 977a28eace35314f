package ingest

import (
	"path/filepath"
	"strings"
	"unicode"
)

// CollectionNameFor derives a collection name from a document path.
// Each character of the file name stem that is not a letter, digit or
// underscore is replaced with an underscore, then the result is
// lowercased. "Annual Report.pdf" maps to "annual_report".
func CollectionNameFor(path string) string {
	stem := filepath.Base(path)
	if ext := filepath.Ext(stem); ext != "" {
		stem = strings.TrimSuffix(stem, ext)
	}

	var b strings.Builder
	b.Grow(len(stem))
	for _, r := range stem {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	return strings.ToLower(b.String())
}
