package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/canopy/core"
	"github.com/poiesic/canopy/storage"
)

// NodeRepository implements storage.NodeRepository for BadgerDB.
type NodeRepository struct {
	backend *Backend
}

var _ storage.NodeRepository = (*NodeRepository)(nil)

// NewNodeRepository creates a new NodeRepository.
func NewNodeRepository(backend *Backend) (storage.NodeRepository, error) {
	return &NodeRepository{backend: backend}, nil
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *NodeRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *NodeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutNodes stores nodes in a collection, overwriting existing entries.
func (r *NodeRepository) PutNodes(ctx context.Context, collection string, nodes ...*core.Node) error {
	if collection == "" {
		return core.ErrEmptyCollectionName
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, node := range nodes {
			if node.InsertedAt.IsZero() {
				node.InsertedAt = time.Now().UTC()
			}

			key := makeNodeKey(collection, node.Id)
			if err := tx.Set(key, storage.MarshalNode(node)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetNode retrieves a single node by ID.
func (r *NodeRepository) GetNode(ctx context.Context, collection string, id core.ID) (*core.Node, error) {
	var result *core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readNode(tx, makeNodeKey(collection, id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetNodes retrieves multiple nodes by their IDs.
// Missing nodes are skipped without error.
func (r *NodeRepository) GetNodes(ctx context.Context, collection string, ids ...core.ID) ([]*core.Node, error) {
	var result []*core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			node, err := readNode(tx, makeNodeKey(collection, id))
			if err != nil {
				return err
			}
			if node != nil {
				result = append(result, node)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetChildren retrieves the children of a node in stored order.
func (r *NodeRepository) GetChildren(ctx context.Context, collection string, id core.ID) ([]*core.Node, error) {
	var result []*core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		parent, err := readNode(tx, makeNodeKey(collection, id))
		if err != nil {
			return err
		}
		if parent == nil {
			return storage.ErrNotFound
		}

		result = make([]*core.Node, 0, len(parent.ChildIds))
		for _, childID := range parent.ChildIds {
			child, err := readNode(tx, makeNodeKey(collection, childID))
			if err != nil {
				return err
			}
			if child == nil {
				return fmt.Errorf("%w: node %d references missing child %d",
					storage.ErrCorruptedForest, id, childID)
			}
			result = append(result, child)
		}
		return nil
	}, false)
	return result, err
}

// GetParent retrieves the parent of a node.
// Returns (nil, nil) when the node is a root.
func (r *NodeRepository) GetParent(ctx context.Context, collection string, id core.ID) (*core.Node, error) {
	var result *core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		node, err := readNode(tx, makeNodeKey(collection, id))
		if err != nil {
			return err
		}
		if node == nil {
			return storage.ErrNotFound
		}
		if node.ParentId == 0 {
			return nil
		}

		result, err = readNode(tx, makeNodeKey(collection, node.ParentId))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: node %d references missing parent %d",
				storage.ErrCorruptedForest, id, node.ParentId)
		}
		return nil
	}, false)
	return result, err
}

// PutLeafVectors stores leaf embeddings for a collection.
func (r *NodeRepository) PutLeafVectors(ctx context.Context, collection string, vectors ...*core.LeafVector) error {
	if collection == "" {
		return core.ErrEmptyCollectionName
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, vec := range vectors {
			key := makeLeafVectorKey(collection, vec.NodeId)
			if err := tx.Set(key, storage.MarshalLeafVector(vec)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// FindSimilarLeaves scans leaf embeddings in a collection and returns
// matches ordered by similarity score (highest first), up to limit.
func (r *NodeRepository) FindSimilarLeaves(ctx context.Context, collection string, vector []float32, limit int) ([]*core.LeafMatch, error) {
	var results []*core.LeafMatch

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeLeafVectorPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var vec *core.LeafVector
			err := iter.Item().Value(func(val []byte) error {
				var err error
				vec, err = storage.UnmarshalLeafVector(val)
				return err
			})
			if err != nil {
				return err
			}
			if vec == nil || len(vec.Vector) == 0 {
				continue
			}

			// Cosine similarity (dot product for normalized vectors)
			results = append(results, &core.LeafMatch{
				NodeId: vec.NodeId,
				Score:  dotProduct(vector, vec.Vector),
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.LeafMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// DeleteCollectionNodes removes every node and leaf vector in a collection.
func (r *NodeRepository) DeleteCollectionNodes(ctx context.Context, collection string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, prefix := range [][]byte{makeNodePrefix(collection), makeLeafVectorPrefix(collection)} {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			opts.PrefetchValues = false
			iter := tx.NewIterator(opts)

			var keys [][]byte
			for iter.Rewind(); iter.Valid(); iter.Next() {
				keys = append(keys, iter.Item().KeyCopy(nil))
			}
			iter.Close()

			for _, key := range keys {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// readNode reads a node from the transaction.
// Returns (nil, nil) when the key does not exist.
func readNode(tx *badger.Txn, key []byte) (*core.Node, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var node *core.Node
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		node, unmarshalErr = storage.UnmarshalNode(val)
		return unmarshalErr
	})
	return node, err
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
