package cite

import (
	"github.com/poiesic/canopy/core"
)

// Range is an inclusive run of consecutive pages.
type Range struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// FileCitation lists the cited page ranges of a single source file.
type FileCitation struct {
	FileName string  `json:"file_name"`
	FilePath string  `json:"file_path"`
	Ranges   []Range `json:"ranges"`
}

// Citations is the complete set of sources backing an answer, ordered
// by first appearance in the retrieved results.
type Citations struct {
	Files []*FileCitation `json:"files"`
}

// Merge collapses the page ranges of retrieved nodes into per-file
// citations with consecutive pages merged. Files appear in first-seen
// order; ranges are ascending. Merging is idempotent: citing the same
// pages twice yields the same ranges.
func Merge(nodes []*core.Node) *Citations {
	citations := &Citations{}

	type fileEntry struct {
		citation *FileCitation
		pages    map[int]bool
	}
	entries := make(map[string]*fileEntry)

	for _, node := range nodes {
		entry, ok := entries[node.FilePath]
		if !ok {
			entry = &fileEntry{
				citation: &FileCitation{
					FileName: node.FileName,
					FilePath: node.FilePath,
				},
				pages: make(map[int]bool),
			}
			entries[node.FilePath] = entry
			citations.Files = append(citations.Files, entry.citation)
		}

		for page := node.Pages.First; page <= node.Pages.Last; page++ {
			entry.pages[page] = true
		}
	}

	for _, entry := range entries {
		entry.citation.Ranges = mergeRanges(entry.pages)
	}

	return citations
}

// mergeRanges turns a page set into sorted ranges of consecutive pages.
func mergeRanges(pages map[int]bool) []Range {
	if len(pages) == 0 {
		return nil
	}

	min, max := 0, 0
	first := true
	for page := range pages {
		if first || page < min {
			min = page
		}
		if first || page > max {
			max = page
		}
		first = false
	}

	var ranges []Range
	for page := min; page <= max; page++ {
		if !pages[page] {
			continue
		}
		start := page
		for pages[page+1] {
			page++
		}
		ranges = append(ranges, Range{First: start, Last: page})
	}

	return ranges
}
