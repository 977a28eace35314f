package cite

import (
	"fmt"
	"strings"
)

// PageText formats an inclusive range as "Page 25" or "Pages 45-47".
func PageText(r Range) string {
	if r.First == r.Last {
		return fmt.Sprintf("Page %d", r.First)
	}
	return fmt.Sprintf("Pages %d-%d", r.First, r.Last)
}

// PlainText renders citations for logs and terminals: one block per
// file, each range on its own line followed by a link that opens the
// document at the range's first page.
func (c *Citations) PlainText() string {
	if len(c.Files) == 0 {
		return ""
	}

	var b strings.Builder
	for _, file := range c.Files {
		fmt.Fprintf(&b, "Sources: %s\n", file.FileName)
		for _, r := range file.Ranges {
			fmt.Fprintf(&b, "  %s\n    %s\n", PageText(r), FileURL(file.FilePath, r.First))
		}
	}
	return b.String()
}

// Markdown renders citations as a nested list with clickable page links.
func (c *Citations) Markdown() string {
	if len(c.Files) == 0 {
		return ""
	}

	var b strings.Builder
	for _, file := range c.Files {
		fmt.Fprintf(&b, "- **%s**\n", file.FileName)
		for _, r := range file.Ranges {
			fmt.Fprintf(&b, "  - [%s](%s)\n", PageText(r), FileURL(file.FilePath, r.First))
		}
	}
	return b.String()
}
