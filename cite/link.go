package cite

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileURL builds a file:// URL that opens a document at a specific page
// in viewers that honor the #page fragment.
//
// Unix:    file:///path/to/file.pdf#page=25
// Windows: file:///C:/path/to/file.pdf#page=25
func FileURL(path string, page int) string {
	posix := filepath.ToSlash(path)
	if filepath.VolumeName(path) != "" {
		// Windows paths need an extra slash before the drive letter.
		return fmt.Sprintf("file:///%s#page=%d", posix, page)
	}
	if !strings.HasPrefix(posix, "/") {
		posix = "/" + posix
	}
	return fmt.Sprintf("file://%s#page=%d", posix, page)
}
