package storage

import (
	"context"

	"github.com/poiesic/canopy/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// NodeRepository provides operations for managing hierarchical nodes
// and their leaf embeddings. Nodes are partitioned by collection name.
type NodeRepository interface {
	Repository

	// PutNodes stores nodes in a collection, overwriting existing entries.
	// Sets InsertedAt if not already set.
	PutNodes(ctx context.Context, collection string, nodes ...*core.Node) error

	// GetNode retrieves a single node by ID.
	// Returns ErrNotFound if the node doesn't exist.
	GetNode(ctx context.Context, collection string, id core.ID) (*core.Node, error)

	// GetNodes retrieves multiple nodes by their IDs.
	// Returns only the nodes that exist (no error for missing nodes).
	GetNodes(ctx context.Context, collection string, ids ...core.ID) ([]*core.Node, error)

	// GetChildren retrieves the children of a node in stored order.
	// Returns ErrCorruptedForest if a referenced child is missing.
	GetChildren(ctx context.Context, collection string, id core.ID) ([]*core.Node, error)

	// GetParent retrieves the parent of a node.
	// Returns (nil, nil) when the node is a root.
	// Returns ErrCorruptedForest if the referenced parent is missing.
	GetParent(ctx context.Context, collection string, id core.ID) (*core.Node, error)

	// PutLeafVectors stores leaf embeddings for a collection.
	PutLeafVectors(ctx context.Context, collection string, vectors ...*core.LeafVector) error

	// FindSimilarLeaves scans leaf embeddings in a collection and returns
	// matches ordered by similarity score (highest first), up to limit.
	FindSimilarLeaves(ctx context.Context, collection string, vector []float32, limit int) ([]*core.LeafMatch, error)

	// DeleteCollectionNodes removes every node and leaf vector in a collection.
	DeleteCollectionNodes(ctx context.Context, collection string) error
}

// CollectionRepository provides operations for managing collection records.
// A collection record is written last during ingestion, so its presence
// marks the collection's nodes and vectors as complete and queryable.
type CollectionRepository interface {
	Repository

	// PutCollection stores a collection record.
	// Sets InsertedAt if not already set and refreshes UpdatedAt.
	PutCollection(ctx context.Context, col *core.Collection) error

	// GetCollection retrieves a collection record by name.
	// Returns ErrCollectionNotFound if it doesn't exist.
	GetCollection(ctx context.Context, name string) (*core.Collection, error)

	// ListCollections returns all collection records, ordered by name.
	ListCollections(ctx context.Context) ([]*core.Collection, error)

	// DeleteCollection removes a collection record by name.
	// Returns ErrCollectionNotFound if it doesn't exist.
	DeleteCollection(ctx context.Context, name string) error
}
