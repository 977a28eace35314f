package retrieve

import (
	"context"
	"math"
	"testing"

	"github.com/poiesic/canopy/ai/mock"
	"github.com/poiesic/canopy/core"
	"github.com/poiesic/canopy/storage"
	"github.com/poiesic/canopy/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCollection = "report"

// seedForest stores a fixed three-level forest:
//
//	root 1000
//	├── 100 (children 1 2 3 4, pages 1-4)
//	└── 101 (children 5 6 7 8, pages 5-8)
//
// Leaf i covers page i. Leaf vectors are chosen so that a query vector
// of [1, 0] scores leaf i exactly scores[i].
func seedForest(t *testing.T, nodeRepo storage.NodeRepository, colRepo storage.CollectionRepository, scores map[core.ID]float32) {
	t.Helper()
	ctx := context.Background()

	nodes := []*core.Node{
		{Id: 1000, Level: 2, ChildIds: []core.ID{100, 101},
			Pages: core.PageRange{First: 1, Last: 8}, SpanStart: 0, SpanEnd: 800},
		{Id: 100, Level: 1, ParentId: 1000, ChildIds: []core.ID{1, 2, 3, 4},
			Pages: core.PageRange{First: 1, Last: 4}, SpanStart: 0, SpanEnd: 400},
		{Id: 101, Level: 1, ParentId: 1000, ChildIds: []core.ID{5, 6, 7, 8},
			Pages: core.PageRange{First: 5, Last: 8}, SpanStart: 400, SpanEnd: 800},
	}
	var vectors []*core.LeafVector
	for i := 1; i <= 8; i++ {
		id := core.ID(i)
		nodes = append(nodes, &core.Node{
			Id: id, Level: 0, ParentId: parentOf(id),
			Pages:     core.PageRange{First: i, Last: i},
			SpanStart: (i - 1) * 100, SpanEnd: i * 100,
		})

		score := scores[id]
		other := float32(math.Sqrt(float64(1 - score*score)))
		vectors = append(vectors, &core.LeafVector{
			NodeId: id,
			Vector: []float32{score, other},
		})
	}

	require.NoError(t, nodeRepo.PutNodes(ctx, testCollection, nodes...))
	require.NoError(t, nodeRepo.PutLeafVectors(ctx, testCollection, vectors...))
	require.NoError(t, colRepo.PutCollection(ctx, &core.Collection{
		Name: testCollection, Levels: 3, NodeCount: 11, LeafCount: 8,
	}))
}

func parentOf(id core.ID) core.ID {
	if id <= 4 {
		return 100
	}
	return 101
}

// unitEmbedder always embeds queries to [1, 0], so leaf scores equal
// the first component of their stored vectors.
func unitEmbedder() *mock.Embedder {
	e := mock.NewEmbedder()
	e.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	return e
}

func newTestRetriever(t *testing.T, opts ...Option) (*Retriever, storage.NodeRepository, storage.CollectionRepository) {
	t.Helper()

	nodeRepo, colRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	retriever, err := NewRetriever(nodeRepo, colRepo, unitEmbedder(), opts...)
	require.NoError(t, err)

	return retriever, nodeRepo, colRepo
}

func retrievedIDs(set core.RetrievedSet) []core.ID {
	ids := make([]core.ID, len(set))
	for i, rn := range set {
		ids[i] = rn.Node.Id
	}
	return ids
}

func TestNewRetriever_RequiredDependencies(t *testing.T) {
	nodeRepo, colRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewRetriever(nil, colRepo, unitEmbedder())
	require.ErrorIs(t, err, ErrNodeRepositoryRequired)

	_, err = NewRetriever(nodeRepo, nil, unitEmbedder())
	require.ErrorIs(t, err, ErrCollectionRepositoryRequired)

	_, err = NewRetriever(nodeRepo, colRepo, nil)
	require.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestNewRetriever_OptionValidation(t *testing.T) {
	nodeRepo, colRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewRetriever(nodeRepo, colRepo, unitEmbedder(), WithTopK(0))
	require.ErrorIs(t, err, ErrInvalidTopK)

	_, err = NewRetriever(nodeRepo, colRepo, unitEmbedder(), WithMergeThreshold(0))
	require.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewRetriever(nodeRepo, colRepo, unitEmbedder(), WithMergeThreshold(1.5))
	require.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestRetrieve_MergesCoveredParent(t *testing.T) {
	retriever, nodeRepo, colRepo := newTestRetriever(t,
		WithTopK(4), WithMergeThreshold(0.75))

	// Three of four children of node 100 rank highest; one stray leaf
	// from the other branch comes along.
	seedForest(t, nodeRepo, colRepo, map[core.ID]float32{
		1: 0.9, 2: 0.8, 3: 0.7, 5: 0.6,
	})

	set, err := retriever.Retrieve(context.Background(), testCollection, "query")
	require.NoError(t, err)

	require.Equal(t, []core.ID{100, 5}, retrievedIDs(set))
	assert.InDelta(t, 0.9, set[0].Score, 1e-3, "parent inherits the best child score")
	assert.InDelta(t, 0.6, set[1].Score, 1e-3)
}

func TestRetrieve_BelowThresholdKeepsLeaves(t *testing.T) {
	retriever, nodeRepo, colRepo := newTestRetriever(t,
		WithTopK(2), WithMergeThreshold(0.75))

	// Two of four children is coverage 0.5, below the 0.75 threshold.
	seedForest(t, nodeRepo, colRepo, map[core.ID]float32{1: 0.9, 2: 0.8})

	set, err := retriever.Retrieve(context.Background(), testCollection, "query")
	require.NoError(t, err)

	assert.Equal(t, []core.ID{1, 2}, retrievedIDs(set))
}

func TestRetrieve_MergesRecursivelyToRoot(t *testing.T) {
	retriever, nodeRepo, colRepo := newTestRetriever(t,
		WithTopK(6), WithMergeThreshold(0.5))

	// Both branches reach coverage 0.5 or better, then the two promoted
	// parents fully cover the root.
	seedForest(t, nodeRepo, colRepo, map[core.ID]float32{
		1: 0.9, 2: 0.85, 3: 0.8, 5: 0.7, 6: 0.65, 7: 0.6,
	})

	set, err := retriever.Retrieve(context.Background(), testCollection, "query")
	require.NoError(t, err)

	require.Equal(t, []core.ID{1000}, retrievedIDs(set))
	assert.InDelta(t, 0.9, set[0].Score, 1e-3)
}

func TestRetrieve_EmptyCollection(t *testing.T) {
	retriever, _, colRepo := newTestRetriever(t)
	ctx := context.Background()

	require.NoError(t, colRepo.PutCollection(ctx, &core.Collection{
		Name: testCollection, Levels: 3,
	}))

	set, err := retriever.Retrieve(ctx, testCollection, "query")
	require.NoError(t, err, "no matches is not an error")
	assert.Empty(t, set)
}

func TestRetrieve_CollectionNotFound(t *testing.T) {
	retriever, _, _ := newTestRetriever(t)

	_, err := retriever.Retrieve(context.Background(), "missing", "query")
	require.ErrorIs(t, err, storage.ErrCollectionNotFound)
}

func TestRetrieve_OrderedByScoreThenPage(t *testing.T) {
	retriever, nodeRepo, colRepo := newTestRetriever(t,
		WithTopK(3), WithMergeThreshold(0.9))

	// Leaves 2 and 6 tie; the lower page number wins the tie.
	seedForest(t, nodeRepo, colRepo, map[core.ID]float32{
		8: 0.9, 2: 0.7, 6: 0.7,
	})

	set, err := retriever.Retrieve(context.Background(), testCollection, "query")
	require.NoError(t, err)

	assert.Equal(t, []core.ID{8, 2, 6}, retrievedIDs(set))
}

func TestRetrieveWithMonitor_ReportsMerges(t *testing.T) {
	retriever, nodeRepo, colRepo := newTestRetriever(t,
		WithTopK(4), WithMergeThreshold(0.75))

	seedForest(t, nodeRepo, colRepo, map[core.ID]float32{
		1: 0.9, 2: 0.8, 3: 0.7, 5: 0.6,
	})

	monitor := &recordingMonitor{}
	_, err := retriever.RetrieveWithMonitor(context.Background(), testCollection, "query", monitor)
	require.NoError(t, err)

	assert.Equal(t, 4, monitor.leafMatches)
	require.Len(t, monitor.merges, 1)
	assert.Equal(t, core.ID(100), monitor.merges[0])
}

type recordingMonitor struct {
	leafMatches int
	merges      []core.ID
}

func (m *recordingMonitor) LeafMatches(matches []*core.LeafMatch) {
	m.leafMatches = len(matches)
}

func (m *recordingMonitor) Merged(_ []*core.RetrievedNode, parent *core.RetrievedNode) {
	m.merges = append(m.merges, parent.Node.Id)
}
