package pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/poiesic/canopy/core"
)

// Load extracts per-page text from a PDF file and returns one PageUnit
// per non-empty page. Pages without extractable text are skipped, so
// the returned page numbers may be sparse.
func Load(path string) ([]core.PageUnit, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	fileName := filepath.Base(path)

	var units []core.PageUnit
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		units = append(units, core.PageUnit{
			Text:       text,
			PageNumber: i,
			FileName:   fileName,
			FilePath:   absPath,
		})
	}

	if len(units) == 0 {
		return nil, fmt.Errorf("%w: no extractable text in %s", core.ErrEmptyInput, path)
	}

	return units, nil
}

// PageCount returns the number of pages in a PDF file without
// extracting any text.
func PageCount(path string) (int, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()
	return reader.NumPage(), nil
}
