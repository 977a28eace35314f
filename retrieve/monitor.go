package retrieve

import "github.com/poiesic/canopy/core"

// Monitor receives notifications about retrieval progress. Implementations
// can surface merge decisions for debugging or evaluation tooling.
type Monitor interface {
	// LeafMatches is called once with the initial leaf hits.
	LeafMatches(matches []*core.LeafMatch)

	// Merged is called for every child-to-parent promotion, with the
	// children absorbed and the parent that replaced them.
	Merged(children []*core.RetrievedNode, parent *core.RetrievedNode)
}

type noopMonitor struct{}

func (noopMonitor) LeafMatches([]*core.LeafMatch) {}

func (noopMonitor) Merged([]*core.RetrievedNode, *core.RetrievedNode) {}
