package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/poiesic/canopy/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticDocument builds page units with enough text to force splits at
// realistic chunk sizes. Each page carries ~600 words.
func syntheticDocument(t *testing.T, pages int) []core.PageUnit {
	t.Helper()
	units := make([]core.PageUnit, pages)
	for p := 0; p < pages; p++ {
		var b strings.Builder
		for s := 0; s < 60; s++ {
			fmt.Fprintf(&b, "Sentence %d on page %d explains one more detail about the subject matter. ", s+1, p+1)
		}
		b.WriteString("\n\nThe closing paragraph of this page restates the findings above in brief.")
		units[p] = core.PageUnit{
			Text:       b.String(),
			PageNumber: p + 1,
			FileName:   "report.pdf",
			FilePath:   "/docs/report.pdf",
		}
	}
	return units
}

func TestBuild_EmptyInput(t *testing.T) {
	_, err := Build(nil, []int{4096, 1024, 512})
	assert.ErrorIs(t, err, core.ErrEmptyInput)
}

func TestBuild_InvalidSizes(t *testing.T) {
	units := syntheticDocument(t, 1)

	tests := []struct {
		name  string
		sizes []int
	}{
		{"empty sizes", nil},
		{"ascending", []int{512, 1024}},
		{"equal", []int{512, 512}},
		{"zero", []int{512, 0}},
		{"negative", []int{-4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(units, tt.sizes)
			assert.ErrorIs(t, err, core.ErrInvalidChunkSizes)
		})
	}
}

func TestBuild_LevelStructure(t *testing.T) {
	units := syntheticDocument(t, 10)
	forest, err := Build(units, []int{4096, 1024, 512})
	require.NoError(t, err)

	assert.Equal(t, 3, forest.Levels)
	require.NotEmpty(t, forest.Roots)

	for _, id := range forest.Roots {
		root := forest.Node(id)
		require.NotNil(t, root)
		assert.Equal(t, 2, root.Level)
		assert.Equal(t, core.ID(0), root.ParentId)
	}

	for _, n := range forest.Nodes {
		if n.Level == 0 {
			assert.Empty(t, n.ChildIds, "leaf %d has children", n.Id)
			continue
		}
		require.NotEmpty(t, n.ChildIds, "non-leaf %d has no children", n.Id)
		for _, cid := range n.ChildIds {
			child := forest.Node(cid)
			require.NotNil(t, child, "child %d of %d missing", cid, n.Id)
			assert.Equal(t, n.Id, child.ParentId)
			assert.Equal(t, n.Level-1, child.Level)
		}
	}
}

// Children's text spans, in ChildIds order, must reconstruct the parent's
// full text span with no gaps or overlaps.
func TestBuild_PartitionInvariant(t *testing.T) {
	units := syntheticDocument(t, 10)
	forest, err := Build(units, []int{4096, 1024, 512})
	require.NoError(t, err)

	for _, n := range forest.Nodes {
		if len(n.ChildIds) == 0 {
			continue
		}
		var b strings.Builder
		offset := n.SpanStart
		for _, cid := range n.ChildIds {
			child := forest.Node(cid)
			require.NotNil(t, child)
			assert.Equal(t, offset, child.SpanStart, "gap or overlap before child %d of %d", cid, n.Id)
			b.WriteString(child.Text)
			offset = child.SpanEnd
		}
		assert.Equal(t, n.SpanEnd, offset)
		assert.Equal(t, n.Text, b.String(), "children of %d do not reconstruct parent text", n.Id)
	}
}

// Every node's page range must equal the union of pages of the PageUnits
// whose text offsets fall inside the node's span, at every level.
func TestBuild_MetadataInheritance(t *testing.T) {
	units := syntheticDocument(t, 10)
	forest, err := Build(units, []int{4096, 1024, 512})
	require.NoError(t, err)

	// Recompute unit offsets the same way the builder lays out the stream.
	type offsets struct{ start, end, page int }
	var unitOffsets []offsets
	pos := 0
	for i, u := range units {
		if i > 0 {
			pos += len(pageSeparator)
		}
		unitOffsets = append(unitOffsets, offsets{pos, pos + len(u.Text), u.PageNumber})
		pos += len(u.Text)
	}

	for _, n := range forest.Nodes {
		assert.Equal(t, "report.pdf", n.FileName)
		assert.Equal(t, "/docs/report.pdf", n.FilePath)

		first, last := 0, 0
		for _, u := range unitOffsets {
			if u.start < n.SpanEnd && n.SpanStart < u.end {
				if first == 0 {
					first = u.page
				}
				last = u.page
			}
		}
		require.NotZero(t, first, "node %d overlaps no page", n.Id)
		assert.Equal(t, core.PageRange{First: first, Last: last}, n.Pages, "node %d page range", n.Id)
	}

	// A non-leaf's page range is the union of its children's ranges.
	for _, n := range forest.Nodes {
		if len(n.ChildIds) == 0 {
			continue
		}
		childFirst, childLast := 0, 0
		for _, cid := range n.ChildIds {
			child := forest.Node(cid)
			if childFirst == 0 || child.Pages.First < childFirst {
				childFirst = child.Pages.First
			}
			if child.Pages.Last > childLast {
				childLast = child.Pages.Last
			}
		}
		assert.Equal(t, n.Pages, core.PageRange{First: childFirst, Last: childLast}, "node %d", n.Id)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	units := syntheticDocument(t, 3)

	a, err := Build(units, []int{1024, 256})
	require.NoError(t, err)
	b, err := Build(units, []int{1024, 256})
	require.NoError(t, err)

	require.Equal(t, len(a.Nodes), len(b.Nodes))
	assert.Equal(t, a.Roots, b.Roots)
	for id, n := range a.Nodes {
		other := b.Node(id)
		require.NotNil(t, other, "node %d missing on rebuild", id)
		assert.Equal(t, n.Text, other.Text)
		assert.Equal(t, n.ChildIds, other.ChildIds)
	}
}

func TestBuild_SinglePage(t *testing.T) {
	units := []core.PageUnit{{
		Text:       "A single short page.",
		PageNumber: 1,
		FileName:   "tiny.pdf",
		FilePath:   "/docs/tiny.pdf",
	}}

	forest, err := Build(units, []int{4096, 1024, 512})
	require.NoError(t, err)

	// The whole document fits in one chunk at every level: a single chain.
	require.Len(t, forest.Roots, 1)
	assert.Len(t, forest.Nodes, 3)
	for _, n := range forest.Nodes {
		assert.Equal(t, core.PageRange{First: 1, Last: 1}, n.Pages)
	}

	leaves := forest.Leaves()
	require.Len(t, leaves, 1)
	assert.Equal(t, "A single short page.", leaves[0].Text)
}
