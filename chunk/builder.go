package chunk

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/canopy/core"
)

// pageSeparator joins page units in the document stream. It belongs to no
// page, so a split landing inside it never misattributes page metadata.
const pageSeparator = "\n\n"

type unitSpan struct {
	span
	page int
}

// Build constructs the node forest for one document from its page units.
//
// sizes enumerates chunk-size thresholds (in approximate tokens) from the
// largest (root level) to the smallest (leaf level); e.g. sizes
// [4096, 1024, 512] produce a 3-level forest. The pages are concatenated
// into one text stream, the stream is split at the largest size into root
// nodes, and each node's span is then split at the next size until the
// leaf level is reached. Children exactly partition their parent's span.
//
// Returns core.ErrEmptyInput when units is empty and
// core.ErrInvalidChunkSizes when sizes is not strictly descending or
// contains non-positive values.
func Build(units []core.PageUnit, sizes []int) (*core.Forest, error) {
	if err := core.ValidatePageUnits(units); err != nil {
		return nil, err
	}
	if err := core.ValidateChunkSizes(sizes); err != nil {
		return nil, err
	}

	var stream strings.Builder
	unitSpans := make([]unitSpan, 0, len(units))
	for i, u := range units {
		if i > 0 {
			stream.WriteString(pageSeparator)
		}
		start := stream.Len()
		stream.WriteString(u.Text)
		unitSpans = append(unitSpans, unitSpan{span{start, stream.Len()}, u.PageNumber})
	}
	text := stream.String()

	fileName := units[0].FileName
	filePath := units[0].FilePath
	now := time.Now().UTC()

	forest := &core.Forest{
		Nodes:  make(map[core.ID]*core.Node),
		Levels: len(sizes),
	}

	newNode := func(level int, sp span, parent core.ID) (*core.Node, error) {
		pages, ok := pagesFor(unitSpans, sp)
		if !ok {
			return nil, fmt.Errorf("%w: %s span [%d,%d) covers no page", core.ErrInvalidNode, filePath, sp.start, sp.end)
		}
		n := &core.Node{
			Id:         core.NodeID(filePath, level, sp.start, sp.end),
			Text:       text[sp.start:sp.end],
			Level:      level,
			ParentId:   parent,
			FileName:   fileName,
			FilePath:   filePath,
			Pages:      pages,
			SpanStart:  sp.start,
			SpanEnd:    sp.end,
			InsertedAt: now,
		}
		forest.Nodes[n.Id] = n
		return n, nil
	}

	rootLevel := len(sizes) - 1
	parents := make([]*core.Node, 0, 1)
	for _, sp := range splitSpan(text, span{0, len(text)}, sizes[0]) {
		root, err := newNode(rootLevel, sp, 0)
		if err != nil {
			return nil, err
		}
		forest.Roots = append(forest.Roots, root.Id)
		parents = append(parents, root)
	}

	for depth := 1; depth < len(sizes); depth++ {
		level := rootLevel - depth
		size := sizes[depth]

		var next []*core.Node
		for _, parent := range parents {
			for _, csp := range splitSpan(text, span{parent.SpanStart, parent.SpanEnd}, size) {
				child, err := newNode(level, csp, parent.Id)
				if err != nil {
					return nil, err
				}
				parent.ChildIds = append(parent.ChildIds, child.Id)
				next = append(next, child)
			}
		}
		parents = next
	}

	return forest, nil
}

// pagesFor derives the page range for a span from the page units whose
// text offsets overlap it. A span holding only separator bytes snaps to
// the nearest preceding page.
func pagesFor(units []unitSpan, sp span) (core.PageRange, bool) {
	first, last := 0, 0
	for _, u := range units {
		if u.start < sp.end && sp.start < u.end {
			if first == 0 {
				first = u.page
			}
			last = u.page
		}
	}
	if first == 0 {
		for _, u := range units {
			if u.end <= sp.start {
				first, last = u.page, u.page
			}
		}
	}
	if first == 0 {
		return core.PageRange{}, false
	}
	return core.PageRange{First: first, Last: last}, true
}
