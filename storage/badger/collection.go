package badger

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/canopy/core"
	"github.com/poiesic/canopy/storage"
)

// CollectionRepository implements storage.CollectionRepository for BadgerDB.
type CollectionRepository struct {
	backend *Backend
}

var _ storage.CollectionRepository = (*CollectionRepository)(nil)

// NewCollectionRepository creates a new CollectionRepository.
func NewCollectionRepository(backend *Backend) (storage.CollectionRepository, error) {
	return &CollectionRepository{backend: backend}, nil
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *CollectionRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CollectionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutCollection stores a collection record.
func (r *CollectionRepository) PutCollection(ctx context.Context, col *core.Collection) error {
	if col.Name == "" {
		return core.ErrEmptyCollectionName
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		if col.InsertedAt.IsZero() {
			col.InsertedAt = now
		}
		col.UpdatedAt = now

		key := makeCollectionKey(col.Name)
		if err := tx.Set(key, storage.MarshalCollection(col)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetCollection retrieves a collection record by name.
func (r *CollectionRepository) GetCollection(ctx context.Context, name string) (*core.Collection, error) {
	var result *core.Collection
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCollectionKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrCollectionNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalCollection(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// ListCollections returns all collection records, ordered by name.
func (r *CollectionRepository) ListCollections(ctx context.Context) ([]*core.Collection, error) {
	var results []*core.Collection
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var col *core.Collection
			err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				col, unmarshalErr = storage.UnmarshalCollection(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			if col != nil {
				results = append(results, col)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Collection) int {
		return strings.Compare(a.Name, b.Name)
	})

	return results, nil
}

// DeleteCollection removes a collection record by name.
func (r *CollectionRepository) DeleteCollection(ctx context.Context, name string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCollectionKey(name)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrCollectionNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
