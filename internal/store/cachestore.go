package store

import (
	"bytes"
	"sync"

	corestore "cosmossdk.io/core/store"
	"github.com/tidwall/btree"
)

type cacheEntry struct {
	key     []byte
	value   []byte
	deleted bool
}

func entryByKey(a, b cacheEntry) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// Change is a single buffered write, ready to be flushed to a persistent store.
type Change struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// CacheKVStore buffers writes on top of a parent store. Reads observe the
// buffered writes first. Nothing reaches the parent until Write is called,
// so dropping the cache discards the whole branch.
type CacheKVStore struct {
	mtx    sync.Mutex
	parent corestore.KVStore
	cache  *btree.BTreeG[cacheEntry]
}

var _ corestore.KVStore = (*CacheKVStore)(nil)

func NewCacheKVStore(parent corestore.KVStore) *CacheKVStore {
	return &CacheKVStore{
		parent: parent,
		cache:  btree.NewBTreeG(entryByKey),
	}
}

func (c *CacheKVStore) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	c.mtx.Lock()
	entry, ok := c.cache.Get(cacheEntry{key: key})
	c.mtx.Unlock()
	if ok {
		if entry.deleted {
			return nil, nil
		}
		return cp(entry.value), nil
	}
	return c.parent.Get(key)
}

func (c *CacheKVStore) Has(key []byte) (bool, error) {
	value, err := c.Get(key)
	if err != nil {
		return false, err
	}
	return value != nil, nil
}

func (c *CacheKVStore) Set(key, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if value == nil {
		return ErrNilValue
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.cache.Set(cacheEntry{key: cp(key), value: cp(value)})
	return nil
}

func (c *CacheKVStore) Delete(key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.cache.Set(cacheEntry{key: cp(key), deleted: true})
	return nil
}

func (c *CacheKVStore) Iterator(start, end []byte) (corestore.Iterator, error) {
	parent, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(parent, c.pending(start, end, false), true), nil
}

func (c *CacheKVStore) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	parent, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(parent, c.pending(start, end, true), false), nil
}

// pending returns the buffered entries within [start, end) in iteration order.
func (c *CacheKVStore) pending(start, end []byte, reverse bool) []cacheEntry {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	entries := make([]cacheEntry, 0)
	collect := func(e cacheEntry) bool {
		if end != nil && bytes.Compare(e.key, end) >= 0 {
			return false
		}
		entries = append(entries, e)
		return true
	}
	if start == nil {
		c.cache.Scan(collect)
	} else {
		c.cache.Ascend(cacheEntry{key: start}, collect)
	}
	if reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	return entries
}

// Changes lists the buffered writes in ascending key order.
func (c *CacheKVStore) Changes() []Change {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	changes := make([]Change, 0, c.cache.Len())
	c.cache.Scan(func(e cacheEntry) bool {
		changes = append(changes, Change{Key: cp(e.key), Value: cp(e.value), Delete: e.deleted})
		return true
	})
	return changes
}

// Write flushes the buffered writes into the parent and resets the cache.
func (c *CacheKVStore) Write() error {
	for _, change := range c.Changes() {
		var err error
		if change.Delete {
			err = c.parent.Delete(change.Key)
		} else {
			err = c.parent.Set(change.Key, change.Value)
		}
		if err != nil {
			return err
		}
	}
	c.mtx.Lock()
	c.cache = btree.NewBTreeG(entryByKey)
	c.mtx.Unlock()
	return nil
}
