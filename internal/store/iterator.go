package store

import (
	"bytes"
	"errors"

	corestore "cosmossdk.io/core/store"
)

var errInvalidIterator = errors.New("iterator is not valid")

// sliceIterator walks a pre-collected, already ordered range of pairs.
type sliceIterator struct {
	start, end []byte
	items      []kvPair
	pos        int
}

var _ corestore.Iterator = (*sliceIterator)(nil)

func newSliceIterator(start, end []byte, items []kvPair) *sliceIterator {
	return &sliceIterator{start: start, end: end, items: items}
}

func (it *sliceIterator) Domain() ([]byte, []byte) { return it.start, it.end }
func (it *sliceIterator) Valid() bool              { return it.pos < len(it.items) }

func (it *sliceIterator) Next() {
	if it.Valid() {
		it.pos++
	}
}

func (it *sliceIterator) Key() []byte {
	if !it.Valid() {
		panic(errInvalidIterator)
	}
	return it.items[it.pos].key
}

func (it *sliceIterator) Value() []byte {
	if !it.Valid() {
		panic(errInvalidIterator)
	}
	return it.items[it.pos].value
}

func (it *sliceIterator) Error() error { return nil }

func (it *sliceIterator) Close() error {
	it.items = nil
	return nil
}

// mergeIterator overlays the pending writes of a CacheKVStore on top of its
// parent's iterator. Cached entries shadow parent entries with the same key
// and tombstones hide them.
type mergeIterator struct {
	parent    corestore.Iterator
	cache     []cacheEntry
	pos       int
	ascending bool
}

var _ corestore.Iterator = (*mergeIterator)(nil)

func newMergeIterator(parent corestore.Iterator, cache []cacheEntry, ascending bool) *mergeIterator {
	it := &mergeIterator{parent: parent, cache: cache, ascending: ascending}
	it.skipHidden()
	return it
}

func (it *mergeIterator) Domain() ([]byte, []byte) { return it.parent.Domain() }

func (it *mergeIterator) Valid() bool {
	return it.parent.Valid() || it.pos < len(it.cache)
}

func (it *mergeIterator) compare(a, b []byte) int {
	if it.ascending {
		return bytes.Compare(a, b)
	}
	return bytes.Compare(b, a)
}

func (it *mergeIterator) cacheDone() bool { return it.pos >= len(it.cache) }

// parentFirst reports whether the current position is served by the parent.
func (it *mergeIterator) parentFirst() bool {
	if it.cacheDone() {
		return true
	}
	if !it.parent.Valid() {
		return false
	}
	return it.compare(it.parent.Key(), it.cache[it.pos].key) < 0
}

func (it *mergeIterator) Next() {
	if !it.Valid() {
		return
	}
	if it.parentFirst() {
		it.parent.Next()
	} else {
		it.pos++
	}
	it.skipHidden()
}

func (it *mergeIterator) Key() []byte {
	if !it.Valid() {
		panic(errInvalidIterator)
	}
	if it.parentFirst() {
		return it.parent.Key()
	}
	return it.cache[it.pos].key
}

func (it *mergeIterator) Value() []byte {
	if !it.Valid() {
		panic(errInvalidIterator)
	}
	if it.parentFirst() {
		return it.parent.Value()
	}
	return it.cache[it.pos].value
}

func (it *mergeIterator) Error() error { return it.parent.Error() }
func (it *mergeIterator) Close() error { return it.parent.Close() }

// skipHidden moves past parent entries shadowed by the cache and past
// tombstones until the head of the merged stream is a live entry.
func (it *mergeIterator) skipHidden() {
	for !it.cacheDone() {
		entry := it.cache[it.pos]
		if it.parent.Valid() {
			cmp := it.compare(it.parent.Key(), entry.key)
			if cmp < 0 {
				return
			}
			if cmp == 0 {
				it.parent.Next()
			}
		}
		if !entry.deleted {
			return
		}
		it.pos++
	}
}
