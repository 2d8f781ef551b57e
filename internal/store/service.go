package store

import (
	"context"
	"errors"

	corestore "cosmossdk.io/core/store"
)

// ErrNoStore is returned by every operation of the store handed out when the
// context does not carry one.
var ErrNoStore = errors.New("no kv store attached to context")

type storeContextKey struct{}

// WithKVStore attaches the store an execution must read and write through.
func WithKVStore(ctx context.Context, kv corestore.KVStore) context.Context {
	return context.WithValue(ctx, storeContextKey{}, kv)
}

// KVStoreFromContext returns the store attached by WithKVStore, if any.
func KVStoreFromContext(ctx context.Context) (corestore.KVStore, bool) {
	kv, ok := ctx.Value(storeContextKey{}).(corestore.KVStore)
	return kv, ok
}

// ContextStoreService resolves the contract store from the call context, so a
// single collections schema can run against a throwaway branch, a committed
// view or an in-memory store.
type ContextStoreService struct{}

var _ corestore.KVStoreService = ContextStoreService{}

func (ContextStoreService) OpenKVStore(ctx context.Context) corestore.KVStore {
	if kv, ok := KVStoreFromContext(ctx); ok {
		return kv
	}
	return missingStore{}
}

type missingStore struct{}

func (missingStore) Get([]byte) ([]byte, error)  { return nil, ErrNoStore }
func (missingStore) Has([]byte) (bool, error)    { return false, ErrNoStore }
func (missingStore) Set([]byte, []byte) error    { return ErrNoStore }
func (missingStore) Delete([]byte) error         { return ErrNoStore }
func (missingStore) Iterator([]byte, []byte) (corestore.Iterator, error) {
	return nil, ErrNoStore
}
func (missingStore) ReverseIterator([]byte, []byte) (corestore.Iterator, error) {
	return nil, ErrNoStore
}
