package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"slices"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Node IDs are derived from content hashing so that rebuilding the same
// document produces the same IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NodeID generates the ID for a node from its source file, hierarchy
// level, and span offsets within the document stream.
func NodeID(filePath string, level, spanStart, spanEnd int) ID {
	return IDFromContent(fmt.Sprintf("%s#%d:%d-%d", filePath, level, spanStart, spanEnd))
}

// PageUnit is one page of extracted text from a source document.
// PageUnits are created once during ingestion and never mutated.
type PageUnit struct {
	Text       string
	PageNumber int // 1-based
	FileName   string
	FilePath   string
}

// PageRange is an inclusive, contiguous span of page numbers within one
// source file.
type PageRange struct {
	First int
	Last  int
}

// Contains reports whether the range includes the given page.
func (r PageRange) Contains(page int) bool {
	return page >= r.First && page <= r.Last
}

// Node is a chunk of text at some hierarchy level. Level 0 is the leaf
// level; larger levels hold larger chunks. A node's metadata (file,
// pages, span) is computed at construction time from the PageUnits its
// span covers and is immutable afterwards.
type Node struct {
	Id       ID
	Text     string
	Level    int
	ParentId ID   // 0 when the node is a tree root
	ChildIds []ID // ordered; children exactly partition this node's span

	FileName string
	FilePath string
	Pages    PageRange

	// Offsets into the per-document text stream the forest was built from.
	SpanStart int
	SpanEnd   int

	ContextText string // leaf nodes only, set by enrichment
	SummaryText string // non-leaf nodes only, set by enrichment
	Degraded    bool   // summary generation failed for this node

	InsertedAt time.Time
}

// IsLeaf reports whether the node is at the leaf level.
func (n *Node) IsLeaf() bool {
	return n.Level == 0
}

// EmbeddingText returns the text that should be embedded for this node.
// Leaves use the context-enriched text when enrichment has run.
func (n *Node) EmbeddingText() string {
	if n.ContextText != "" {
		return n.ContextText
	}
	return n.Text
}

// LeafVector is a leaf node's embedding, persisted separately from the
// node record but keyed by the same ID.
type LeafVector struct {
	NodeId ID
	Vector []float32
}

// LeafMatch is a similarity search hit over leaf embeddings.
type LeafMatch struct {
	NodeId ID
	Score  float32
}

// RetrievedNode pairs a node with its relevance score for one query.
type RetrievedNode struct {
	Node  *Node
	Score float32
}

// RetrievedSet is the transient, ordered result of a query: nodes sorted
// by score descending, ties broken by ascending page order.
type RetrievedSet []*RetrievedNode

// Nodes returns the nodes of the set in result order.
func (s RetrievedSet) Nodes() []*Node {
	nodes := make([]*Node, len(s))
	for i, rn := range s {
		nodes[i] = rn.Node
	}
	return nodes
}

// Collection describes one ingested source document: its node forest in
// storage plus summary counters. The collection record is written last
// during ingestion, so its presence marks the forest as complete and
// readable.
type Collection struct {
	Name       string
	FileName   string
	FilePath   string
	PageCount  int
	NodeCount  int
	LeafCount  int
	Levels     int
	ChunkSizes []int
	Degraded   []ID // nodes whose summaries failed during enrichment
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Forest is a document's hierarchical decomposition: one or more trees
// of nodes sharing a single text stream. The forest owns all nodes;
// parent/child references are by ID only, so there are no pointer cycles.
type Forest struct {
	Roots  []ID
	Nodes  map[ID]*Node
	Levels int // number of hierarchy levels; leaf level is 0
}

// Node returns the node with the given ID, or nil.
func (f *Forest) Node(id ID) *Node {
	return f.Nodes[id]
}

// NodesAtLevel returns the nodes at one level, ordered by span start.
func (f *Forest) NodesAtLevel(level int) []*Node {
	var nodes []*Node
	for _, n := range f.Nodes {
		if n.Level == level {
			nodes = append(nodes, n)
		}
	}
	sortBySpan(nodes)
	return nodes
}

// Leaves returns the leaf nodes ordered by span start.
func (f *Forest) Leaves() []*Node {
	return f.NodesAtLevel(0)
}

// All returns every node in the forest, ordered by level descending
// (roots first) and span start ascending within a level.
func (f *Forest) All() []*Node {
	nodes := make([]*Node, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int {
		if a.Level != b.Level {
			return b.Level - a.Level
		}
		return a.SpanStart - b.SpanStart
	})
	return nodes
}

func sortBySpan(nodes []*Node) {
	slices.SortFunc(nodes, func(a, b *Node) int {
		return a.SpanStart - b.SpanStart
	})
}
