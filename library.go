// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package canopy

import (
	"context"
	"log/slog"

	"github.com/poiesic/canopy/ai"
	"github.com/poiesic/canopy/ai/openai"
	"github.com/poiesic/canopy/core"
	"github.com/poiesic/canopy/ingest"
	"github.com/poiesic/canopy/retrieve"
	"github.com/poiesic/canopy/storage"
	"github.com/poiesic/canopy/storage/badger"
)

// Library is the top-level handle over a document store: one BadgerDB
// backend, repositories for nodes and collections, and the AI provider
// shared by ingestion and retrieval.
type Library struct {
	backend  *badger.Backend
	nodeRepo storage.NodeRepository
	colRepo  storage.CollectionRepository
	provider ai.Provider
	logger   *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI configuration used to build the default
// OpenAI-compatible provider.
func WithAIConfig(cfg *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider injects a pre-built AI provider, bypassing the default
// OpenAI-compatible one. Useful for tests.
func WithProvider(provider ai.Provider) LibraryOption {
	return func(o *libraryOptions) {
		o.provider = provider
	}
}

// NewLibrary opens (or creates) a document store at filePath.
func NewLibrary(filePath string, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	return newLibrary(backend, options)
}

// NewMemoryLibrary opens an in-memory document store. Nothing survives
// Close. Intended for tests and experiments.
func NewMemoryLibrary(opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	return newLibrary(backend, options)
}

func newLibrary(backend *badger.Backend, options *libraryOptions) (*Library, error) {
	nodeRepo, err := badger.NewNodeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	colRepo, err := badger.NewCollectionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Library{
		backend:  backend,
		nodeRepo: nodeRepo,
		colRepo:  colRepo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider and the storage backend.
func (l *Library) Close() error {
	if err := l.provider.Close(); err != nil {
		l.logger.Error("error closing AI provider", "err", err)
	}

	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// NodeRepository returns the node repository.
func (l *Library) NodeRepository() storage.NodeRepository {
	return l.nodeRepo
}

// CollectionRepository returns the collection repository.
func (l *Library) CollectionRepository() storage.CollectionRepository {
	return l.colRepo
}

// NewPipeline creates an ingestion pipeline over this library.
func (l *Library) NewPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(l.nodeRepo, l.colRepo, l.provider, opts...)
}

// NewRetriever creates an auto-merging retriever over this library.
func (l *Library) NewRetriever(opts ...retrieve.Option) (*retrieve.Retriever, error) {
	return retrieve.NewRetriever(l.nodeRepo, l.colRepo, l.provider.Embedder(), opts...)
}

// Collections lists every ingested collection, ordered by name.
func (l *Library) Collections(ctx context.Context) ([]*core.Collection, error) {
	return l.colRepo.ListCollections(ctx)
}

// DeleteCollection removes a collection record along with its nodes
// and leaf vectors.
func (l *Library) DeleteCollection(ctx context.Context, name string) error {
	if err := l.colRepo.DeleteCollection(ctx, name); err != nil {
		return err
	}
	return l.nodeRepo.DeleteCollectionNodes(ctx, name)
}
