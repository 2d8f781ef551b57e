package store

import (
	"bytes"
	"errors"
	"sync"

	corestore "cosmossdk.io/core/store"
	"github.com/tidwall/btree"
)

var (
	ErrEmptyKey = errors.New("key cannot be empty")
	ErrNilValue = errors.New("value cannot be nil")
)

type kvPair struct {
	key   []byte
	value []byte
}

func byKey(a, b kvPair) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// MemKVStore is an ordered, thread-safe key-value store held in memory.
// It backs tests and any deployment that does not persist the contract store.
type MemKVStore struct {
	mtx  sync.RWMutex
	tree *btree.BTreeG[kvPair]
}

var _ corestore.KVStore = (*MemKVStore)(nil)

func NewMemKVStore() *MemKVStore {
	return &MemKVStore{
		tree: btree.NewBTreeG(byKey),
	}
}

func (m *MemKVStore) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	item, ok := m.tree.Get(kvPair{key: key})
	if !ok {
		return nil, nil
	}
	return cp(item.value), nil
}

func (m *MemKVStore) Has(key []byte) (bool, error) {
	value, err := m.Get(key)
	if err != nil {
		return false, err
	}
	return value != nil, nil
}

func (m *MemKVStore) Set(key, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if value == nil {
		return ErrNilValue
	}
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.tree.Set(kvPair{key: cp(key), value: cp(value)})
	return nil
}

func (m *MemKVStore) Delete(key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.tree.Delete(kvPair{key: key})
	return nil
}

func (m *MemKVStore) Iterator(start, end []byte) (corestore.Iterator, error) {
	return m.newIterator(start, end, false)
}

func (m *MemKVStore) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	return m.newIterator(start, end, true)
}

// Len returns the number of keys held by the store.
func (m *MemKVStore) Len() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.tree.Len()
}

// newIterator snapshots the requested range so that writes made while
// iterating never invalidate the cursor.
func (m *MemKVStore) newIterator(start, end []byte, reverse bool) (corestore.Iterator, error) {
	if (start != nil && len(start) == 0) || (end != nil && len(end) == 0) {
		return nil, ErrEmptyKey
	}
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	items := make([]kvPair, 0)
	collect := func(item kvPair) bool {
		if end != nil && bytes.Compare(item.key, end) >= 0 {
			return false
		}
		items = append(items, kvPair{key: cp(item.key), value: cp(item.value)})
		return true
	}
	if start == nil {
		m.tree.Scan(collect)
	} else {
		m.tree.Ascend(kvPair{key: start}, collect)
	}
	if reverse {
		reversePairs(items)
	}
	return newSliceIterator(start, end, items), nil
}

func reversePairs(items []kvPair) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

func cp(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
