package canopy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/canopy/ai/mock"
	"github.com/poiesic/canopy/core"
	"github.com/poiesic/canopy/ingest"
	"github.com/poiesic/canopy/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := NewMemoryLibrary(WithProvider(mock.NewProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

// reportPages fabricates page units with enough text to split at small
// chunk sizes.
func reportPages(t *testing.T, pages int) []core.PageUnit {
	t.Helper()
	units := make([]core.PageUnit, pages)
	for p := 0; p < pages; p++ {
		var b strings.Builder
		for s := 0; s < 12; s++ {
			fmt.Fprintf(&b, "Sentence %d on page %d describes another finding in detail. ", s+1, p+1)
		}
		units[p] = core.PageUnit{
			Text:       b.String(),
			PageNumber: p + 1,
			FileName:   "report.pdf",
			FilePath:   "/docs/report.pdf",
		}
	}
	return units
}

func ingestReport(t *testing.T, lib *Library, collection string, pages int) *core.Collection {
	t.Helper()
	pipeline, err := lib.NewPipeline(
		ingest.WithChunkSizes([]int{120, 30}),
		ingest.WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	col, err := pipeline.IngestDocument(context.Background(), collection, reportPages(t, pages))
	require.NoError(t, err)
	return col
}

func TestNewLibrary(t *testing.T) {
	t.Run("create new library", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		lib, err := NewLibrary(tmpDir, WithProvider(mock.NewProvider()))
		require.NoError(t, err)
		require.NotNil(t, lib)
		defer lib.Close()

		assert.NotNil(t, lib.NodeRepository())
		assert.NotNil(t, lib.CollectionRepository())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		lib, err := NewLibrary(tmpFile, WithProvider(mock.NewProvider()))
		assert.Error(t, err)
		assert.Nil(t, lib)
	})
}

func TestLibrary_IngestAndRetrieve(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	col := ingestReport(t, lib, "report", 3)
	assert.Equal(t, 3, col.PageCount)

	retriever, err := lib.NewRetriever()
	require.NoError(t, err)

	set, err := retriever.Retrieve(ctx, "report", "findings on page 2")
	require.NoError(t, err)
	assert.NotEmpty(t, set)
}

func TestLibrary_Ask(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	ingestReport(t, lib, "report", 3)

	answer, err := lib.Ask(ctx, "report", "What are the findings?")
	require.NoError(t, err)
	assert.NotEmpty(t, answer.Text)
	assert.NotEmpty(t, answer.Retrieved)
	require.NotEmpty(t, answer.Sources.Files)
	assert.Equal(t, "report.pdf", answer.Sources.Files[0].FileName)
	assert.NotEmpty(t, answer.Sources.Files[0].Ranges)
}

func TestLibrary_Ask_CollectionMissing(t *testing.T) {
	lib := testLibrary(t)

	_, err := lib.Ask(context.Background(), "missing", "anything")
	require.ErrorIs(t, err, storage.ErrCollectionNotFound)
}

func TestLibrary_Collections(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	ingestReport(t, lib, "beta", 2)
	ingestReport(t, lib, "alpha", 2)

	cols, err := lib.Collections(ctx)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "alpha", cols[0].Name)
	assert.Equal(t, "beta", cols[1].Name)
}

func TestLibrary_DeleteCollection(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	ingestReport(t, lib, "gone", 2)
	require.NoError(t, lib.DeleteCollection(ctx, "gone"))

	cols, err := lib.Collections(ctx)
	require.NoError(t, err)
	assert.Empty(t, cols)

	err = lib.DeleteCollection(ctx, "gone")
	require.ErrorIs(t, err, storage.ErrCollectionNotFound)
}
