package badger

import (
	"context"
	"testing"

	"github.com/poiesic/canopy/core"
	"github.com/poiesic/canopy/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCollection = "report"

func testNodes() []*core.Node {
	return []*core.Node{
		{Id: 100, Level: 1, ChildIds: []core.ID{1, 2}, Text: "parent",
			FileName: "report.pdf", Pages: core.PageRange{First: 1, Last: 2},
			SpanStart: 0, SpanEnd: 200},
		{Id: 1, Level: 0, ParentId: 100, Text: "first leaf",
			FileName: "report.pdf", Pages: core.PageRange{First: 1, Last: 1},
			SpanStart: 0, SpanEnd: 100},
		{Id: 2, Level: 0, ParentId: 100, Text: "second leaf",
			FileName: "report.pdf", Pages: core.PageRange{First: 2, Last: 2},
			SpanStart: 100, SpanEnd: 200},
	}
}

func TestNodeRepository_PutGet(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, nodeRepo.PutNodes(ctx, testCollection, testNodes()...))

	got, err := nodeRepo.GetNode(ctx, testCollection, 100)
	require.NoError(t, err)
	assert.Equal(t, core.ID(100), got.Id)
	assert.Equal(t, []core.ID{1, 2}, got.ChildIds)
	assert.False(t, got.InsertedAt.IsZero(), "InsertedAt is set on put")
}

func TestNodeRepository_GetNode_NotFound(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = nodeRepo.GetNode(context.Background(), testCollection, 999)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNodeRepository_GetNodes_SkipsMissing(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, nodeRepo.PutNodes(ctx, testCollection, testNodes()...))

	got, err := nodeRepo.GetNodes(ctx, testCollection, 1, 999, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, core.ID(1), got[0].Id)
	assert.Equal(t, core.ID(2), got[1].Id)
}

func TestNodeRepository_CollectionsArePartitioned(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, nodeRepo.PutNodes(ctx, "alpha", testNodes()...))

	_, err = nodeRepo.GetNode(ctx, "beta", 100)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNodeRepository_GetChildren(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, nodeRepo.PutNodes(ctx, testCollection, testNodes()...))

	children, err := nodeRepo.GetChildren(ctx, testCollection, 100)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, core.ID(1), children[0].Id)
	assert.Equal(t, core.ID(2), children[1].Id)
}

func TestNodeRepository_GetChildren_MissingChild(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	parent := &core.Node{Id: 100, Level: 1, ChildIds: []core.ID{1, 2}, Text: "parent"}
	require.NoError(t, nodeRepo.PutNodes(ctx, testCollection, parent))

	_, err = nodeRepo.GetChildren(ctx, testCollection, 100)
	require.ErrorIs(t, err, storage.ErrCorruptedForest)
}

func TestNodeRepository_GetParent(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, nodeRepo.PutNodes(ctx, testCollection, testNodes()...))

	parent, err := nodeRepo.GetParent(ctx, testCollection, 1)
	require.NoError(t, err)
	require.NotNil(t, parent)
	assert.Equal(t, core.ID(100), parent.Id)

	// Roots have no parent and that is not an error.
	parent, err = nodeRepo.GetParent(ctx, testCollection, 100)
	require.NoError(t, err)
	assert.Nil(t, parent)
}

func TestNodeRepository_FindSimilarLeaves(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	vectors := []*core.LeafVector{
		{NodeId: 1, Vector: []float32{1, 0, 0}},
		{NodeId: 2, Vector: []float32{0, 1, 0}},
		{NodeId: 3, Vector: []float32{0.9, 0.1, 0}},
	}
	require.NoError(t, nodeRepo.PutLeafVectors(ctx, testCollection, vectors...))

	matches, err := nodeRepo.FindSimilarLeaves(ctx, testCollection, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, core.ID(1), matches[0].NodeId)
	assert.Equal(t, core.ID(3), matches[1].NodeId)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestNodeRepository_FindSimilarLeaves_EmptyCollection(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	matches, err := nodeRepo.FindSimilarLeaves(context.Background(), testCollection, []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestNodeRepository_DeleteCollectionNodes(t *testing.T) {
	nodeRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, nodeRepo.PutNodes(ctx, testCollection, testNodes()...))
	require.NoError(t, nodeRepo.PutLeafVectors(ctx, testCollection,
		&core.LeafVector{NodeId: 1, Vector: []float32{1, 0}}))
	require.NoError(t, nodeRepo.PutNodes(ctx, "other", testNodes()...))

	require.NoError(t, nodeRepo.DeleteCollectionNodes(ctx, testCollection))

	_, err = nodeRepo.GetNode(ctx, testCollection, 100)
	require.ErrorIs(t, err, storage.ErrNotFound)

	matches, err := nodeRepo.FindSimilarLeaves(ctx, testCollection, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)

	// Other collections are untouched.
	_, err = nodeRepo.GetNode(ctx, "other", 100)
	require.NoError(t, err)
}
