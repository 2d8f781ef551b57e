package store

import (
	"bytes"
	"context"
	"sort"
	"testing"

	corestore "cosmossdk.io/core/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func collectKeys(t *testing.T, it corestore.Iterator) []string {
	t.Helper()
	defer it.Close()
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	return keys
}

func TestMemKVStore_GetSetDelete(t *testing.T) {
	kv := NewMemKVStore()

	value, err := kv.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	value, err = kv.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	has, err := kv.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, kv.Delete([]byte("a")))
	has, err = kv.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	assert.ErrorIs(t, kv.Set(nil, []byte("1")), ErrEmptyKey)
	assert.ErrorIs(t, kv.Set([]byte("a"), nil), ErrNilValue)
}

func TestMemKVStore_IteratorOrdering(t *testing.T) {
	kv := NewMemKVStore()
	for _, k := range []string{"b", "d", "a", "c", "e"} {
		require.NoError(t, kv.Set([]byte(k), []byte(k)))
	}

	it, err := kv.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, collectKeys(t, it))

	it, err = kv.Iterator([]byte("b"), []byte("d"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, collectKeys(t, it))

	it, err = kv.ReverseIterator([]byte("b"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d", "c", "b"}, collectKeys(t, it))
}

func TestCacheKVStore_ReadYourWritesAndDiscard(t *testing.T) {
	parent := NewMemKVStore()
	require.NoError(t, parent.Set([]byte("a"), []byte("1")))
	require.NoError(t, parent.Set([]byte("b"), []byte("2")))

	cache := NewCacheKVStore(parent)
	require.NoError(t, cache.Set([]byte("a"), []byte("10")))
	require.NoError(t, cache.Delete([]byte("b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("3")))

	value, err := cache.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("10"), value)

	value, err = cache.Get([]byte("b"))
	require.NoError(t, err)
	assert.Nil(t, value)

	// parent untouched until Write
	value, err = parent.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	it, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, collectKeys(t, it))

	it, err = cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, collectKeys(t, it))

	changes := cache.Changes()
	require.Len(t, changes, 3)
	assert.Equal(t, "b", string(changes[1].Key))
	assert.True(t, changes[1].Delete)

	require.NoError(t, cache.Write())
	assert.Empty(t, cache.Changes())
	it, err = parent.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, collectKeys(t, it))
}

func TestContextStoreService(t *testing.T) {
	svc := ContextStoreService{}

	_, err := svc.OpenKVStore(context.Background()).Get([]byte("a"))
	assert.ErrorIs(t, err, ErrNoStore)

	kv := NewMemKVStore()
	ctx := WithKVStore(context.Background(), kv)
	require.NoError(t, svc.OpenKVStore(ctx).Set([]byte("a"), []byte("1")))
	assert.Equal(t, 1, kv.Len())
}

// The merged view of a cache branch must always equal the state the parent
// would hold after the branch is written.
func TestCacheKVStore_MergedIterationMatchesWrittenState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keyGen := rapid.SampledFrom([]string{"a", "b", "c", "d", "e", "f", "g", "h"})
		parent := NewMemKVStore()
		for _, k := range rapid.SliceOfN(keyGen, 0, 8).Draw(t, "parentKeys") {
			if err := parent.Set([]byte(k), []byte("p"+k)); err != nil {
				t.Fatalf("parent set: %v", err)
			}
		}

		cache := NewCacheKVStore(parent)
		expected := map[string]string{}
		it, _ := parent.Iterator(nil, nil)
		for ; it.Valid(); it.Next() {
			expected[string(it.Key())] = string(it.Value())
		}
		it.Close()

		ops := rapid.SliceOfN(rapid.Bool(), 0, 12).Draw(t, "ops")
		for i, del := range ops {
			k := keyGen.Draw(t, "opKey")
			if del {
				_ = cache.Delete([]byte(k))
				delete(expected, k)
			} else {
				v := []byte{byte(i)}
				_ = cache.Set([]byte(k), v)
				expected[k] = string(v)
			}
		}

		wantKeys := make([]string, 0, len(expected))
		for k := range expected {
			wantKeys = append(wantKeys, k)
		}
		sort.Strings(wantKeys)

		merged, err := cache.Iterator(nil, nil)
		if err != nil {
			t.Fatalf("iterator: %v", err)
		}
		var gotKeys []string
		for ; merged.Valid(); merged.Next() {
			k := string(merged.Key())
			if !bytes.Equal(merged.Value(), []byte(expected[k])) {
				t.Fatalf("value mismatch for %s", k)
			}
			gotKeys = append(gotKeys, k)
		}
		merged.Close()

		if len(gotKeys) != len(wantKeys) {
			t.Fatalf("got keys %v, want %v", gotKeys, wantKeys)
		}
		for i := range gotKeys {
			if gotKeys[i] != wantKeys[i] {
				t.Fatalf("got keys %v, want %v", gotKeys, wantKeys)
			}
		}
	})
}
