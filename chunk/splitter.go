package chunk

import (
	"strings"
	"unicode/utf8"
)

// span is a half-open [start, end) byte range within the document stream.
type span struct {
	start int
	end   int
}

// separators tried in order when a span exceeds its token budget.
// Each separator stays attached to the piece that precedes it, so the
// pieces always concatenate back to the original span with no gaps.
var separators = []string{"\n\n", "\n", ". ", " "}

// splitSpan splits sp into contiguous subspans of at most maxTokens each,
// preferring paragraph breaks, then line breaks, then sentence ends, then
// word boundaries.
func splitSpan(text string, sp span, maxTokens int) []span {
	return splitWith(text, sp, maxTokens, separators)
}

func splitWith(text string, sp span, maxTokens int, seps []string) []span {
	if estimateTokens(text[sp.start:sp.end]) <= maxTokens {
		return []span{sp}
	}
	for i, sep := range seps {
		pieces := cutAfter(text, sp, sep)
		if len(pieces) < 2 {
			continue
		}
		return packPieces(text, pieces, maxTokens, seps[i+1:])
	}
	return hardSplit(text, sp, maxTokens)
}

// cutAfter cuts sp immediately after each occurrence of sep.
func cutAfter(text string, sp span, sep string) []span {
	var pieces []span
	start := sp.start
	for start < sp.end {
		idx := strings.Index(text[start:sp.end], sep)
		if idx < 0 {
			pieces = append(pieces, span{start, sp.end})
			break
		}
		cut := start + idx + len(sep)
		pieces = append(pieces, span{start, cut})
		start = cut
	}
	return pieces
}

// packPieces greedily merges adjacent pieces while the merge stays within
// the token budget. A single piece over budget is split further with the
// remaining separators.
func packPieces(text string, pieces []span, maxTokens int, rest []string) []span {
	var out []span
	cur := span{start: -1}
	flush := func() {
		if cur.start >= 0 {
			out = append(out, cur)
			cur = span{start: -1}
		}
	}

	for _, p := range pieces {
		if estimateTokens(text[p.start:p.end]) > maxTokens {
			flush()
			out = append(out, splitWith(text, p, maxTokens, rest)...)
			continue
		}
		if cur.start < 0 {
			cur = p
			continue
		}
		if estimateTokens(text[cur.start:p.end]) <= maxTokens {
			cur.end = p.end
		} else {
			out = append(out, cur)
			cur = p
		}
	}
	flush()
	return out
}

// hardSplit cuts a span with no usable boundaries into fixed-width pieces
// at rune boundaries. Last resort for pathological input.
func hardSplit(text string, sp span, maxTokens int) []span {
	limit := maxTokens * 4 // ~4 bytes per token
	if limit < utf8.UTFMax {
		limit = utf8.UTFMax
	}

	var out []span
	start := sp.start
	for start < sp.end {
		end := start + limit
		if end >= sp.end {
			out = append(out, span{start, sp.end})
			break
		}
		for end > start && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == start {
			end = start + limit
		}
		out = append(out, span{start, end})
		start = end
	}
	return out
}
