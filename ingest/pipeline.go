package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/canopy/ai"
	"github.com/poiesic/canopy/chunk"
	"github.com/poiesic/canopy/core"
	"github.com/poiesic/canopy/enrich"
	"github.com/poiesic/canopy/storage"
)

// DefaultChunkSizes are the per-level token budgets used when none are
// configured, ordered root to leaf.
var DefaultChunkSizes = []int{4096, 1024, 512}

const defaultEmbedBatchSize = 16

// PageExtractor turns a document file into per-page text units.
type PageExtractor interface {
	Load(path string) ([]core.PageUnit, error)
}

// PageExtractorFunc adapts a function to the PageExtractor interface.
type PageExtractorFunc func(path string) ([]core.PageUnit, error)

func (f PageExtractorFunc) Load(path string) ([]core.PageUnit, error) {
	return f(path)
}

// Pipeline orchestrates the ingestion of documents: chunking into a
// hierarchical forest, context enrichment, embedding of leaves, and
// persistence. The collection record is written last, so a collection
// only becomes visible to readers once its nodes and vectors are
// complete.
type Pipeline struct {
	nodeRepository       storage.NodeRepository
	collectionRepository storage.CollectionRepository
	provider             ai.Provider
	enricher             *enrich.Enricher
	embeddingPool        *ants.Pool
	chunkSizes           []int
	embedBatchSize       int
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunkSizes sets the per-level token budgets, ordered root to leaf.
// Default is DefaultChunkSizes.
func WithChunkSizes(sizes []int) Option {
	return func(p *Pipeline) error {
		if err := core.ValidateChunkSizes(sizes); err != nil {
			return err
		}
		p.chunkSizes = sizes
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding and
// summarization. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithEmbedBatchSize sets how many leaf texts are sent per embedding
// request. Default is 16.
func WithEmbedBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.embedBatchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	nodeRepository storage.NodeRepository,
	collectionRepository storage.CollectionRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if nodeRepository == nil {
		return nil, ErrNodeRepositoryRequired
	}
	if collectionRepository == nil {
		return nil, ErrCollectionRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		nodeRepository:       nodeRepository,
		collectionRepository: collectionRepository,
		provider:             provider,
		embeddingPool:        pool,
		chunkSizes:           DefaultChunkSizes,
		embedBatchSize:       defaultEmbedBatchSize,
		logger:               slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	enricher, err := enrich.NewEnricher(provider.Summarizer(),
		enrich.WithLogger(p.logger))
	if err != nil {
		p.Release()
		return nil, err
	}
	p.enricher = enricher

	return p, nil
}

// IngestDocument chunks, enriches, embeds and stores a document's page
// units, then publishes its collection record. Summary failures degrade
// the collection; embedding failures abort it, leaving the collection
// unpublished.
func (p *Pipeline) IngestDocument(ctx context.Context, collection string, units []core.PageUnit) (*core.Collection, error) {
	if collection == "" {
		return nil, core.ErrEmptyCollectionName
	}

	start := time.Now()

	forest, err := chunk.Build(units, p.chunkSizes)
	if err != nil {
		return nil, err
	}

	degraded, err := p.enricher.Enrich(ctx, forest)
	if err != nil {
		return nil, err
	}
	if len(degraded) > 0 {
		p.logger.Warn("collection degraded, some summaries failed",
			"collection", collection, "degraded", len(degraded))
	}

	if err := p.nodeRepository.PutNodes(ctx, collection, forest.All()...); err != nil {
		return nil, err
	}

	leaves := forest.Leaves()
	vectors, err := p.embedLeaves(ctx, leaves)
	if err != nil {
		return nil, err
	}
	if err := p.nodeRepository.PutLeafVectors(ctx, collection, vectors...); err != nil {
		return nil, err
	}

	col := &core.Collection{
		Name:       collection,
		FileName:   units[0].FileName,
		FilePath:   units[0].FilePath,
		PageCount:  units[len(units)-1].PageNumber,
		NodeCount:  len(forest.Nodes),
		LeafCount:  len(leaves),
		Levels:     forest.Levels,
		ChunkSizes: p.chunkSizes,
		Degraded:   degraded,
	}
	if err := p.collectionRepository.PutCollection(ctx, col); err != nil {
		return nil, err
	}

	p.logger.Info("document ingested",
		"collection", collection,
		"pages", col.PageCount,
		"nodes", col.NodeCount,
		"leaves", col.LeafCount,
		"degraded", len(degraded),
		"took", time.Since(start))

	return col, nil
}

// IngestFile extracts pages from a document file and ingests them
// under a collection named after the file.
func (p *Pipeline) IngestFile(ctx context.Context, extractor PageExtractor, path string) (*core.Collection, error) {
	if extractor == nil {
		return nil, ErrPageExtractorRequired
	}

	units, err := extractor.Load(path)
	if err != nil {
		return nil, err
	}

	return p.IngestDocument(ctx, CollectionNameFor(path), units)
}

// embedLeaves embeds leaf texts in batches on the worker pool.
// Any embedding failure aborts the whole operation.
func (p *Pipeline) embedLeaves(ctx context.Context, leaves []*core.Node) ([]*core.LeafVector, error) {
	embedder := p.provider.Embedder()

	vectors := make([]*core.LeafVector, len(leaves))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for batchStart := 0; batchStart < len(leaves); batchStart += p.embedBatchSize {
		batchEnd := batchStart + p.embedBatchSize
		if batchEnd > len(leaves) {
			batchEnd = len(leaves)
		}
		batch := leaves[batchStart:batchEnd]
		offset := batchStart

		wg.Add(1)
		submitErr := p.embeddingPool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, leaf := range batch {
				texts[i] = leaf.EmbeddingText()
			}

			embedded, err := embedder.EmbedTexts(ctx, texts)
			if err == nil && len(embedded) != len(batch) {
				err = fmt.Errorf("embedder returned %d vectors for %d texts",
					len(embedded), len(batch))
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			for i, vec := range embedded {
				vectors[offset+i] = &core.LeafVector{
					NodeId: batch[i].Id,
					Vector: vec,
				}
			}
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, submitErr
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return vectors, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.enricher != nil {
		p.enricher.Release()
	}
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
