package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/descrow/errors"
)

// btreeDegree is the branching factor of every cache tree.
const btreeDegree = 2

// MemStore returns an in-memory store without persistence. Data lives in the
// returned cache itself, so only the cache wraps created from it may be
// written.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap keeps pending changes in a btree over a read only parent.
// Reads see the pending changes first. Write flushes them through batch.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over parent. All changes must go
// through batch, never directly to parent. Nested caches share free to
// reuse btree nodes. A nil free allocates a new list.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(btreeDegree, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap stacks another cache on top. Its Write only moves the changes
// into this cache.
func (c BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(c, c.NewBatch(), c.free)
}

func (c BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes all changes to the parent and empties the cache.
func (c BTreeCacheWrap) Write() error {
	err := c.batch.Write()
	c.Discard()
	return err
}

// Discard drops all changes. Nodes go back to the free list.
func (c BTreeCacheWrap) Discard() {
	for c.tree.DeleteMin() != nil {
	}
}

func (c BTreeCacheWrap) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, value: value})
	return c.batch.Set(key, value)
}

func (c BTreeCacheWrap) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return c.batch.Delete(key)
}

func (c BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	e, ok, err := c.lookup(key)
	if err != nil || !ok {
		return nil, err
	}
	if e.deleted {
		return nil, nil
	}
	return e.value, nil
}

func (c BTreeCacheWrap) Has(key []byte) (bool, error) {
	e, ok, err := c.lookup(key)
	if err != nil || !ok {
		return false, err
	}
	return !e.deleted, nil
}

// lookup returns the cached entry for key. If the key is not cached, the
// parent is asked and its answer returned as a fresh entry.
func (c BTreeCacheWrap) lookup(key []byte) (entry, bool, error) {
	switch item := c.tree.Get(entry{key: key}).(type) {
	case entry:
		return item, true, nil
	case nil:
		value, err := c.parent.Get(key)
		if err != nil {
			return entry{}, false, err
		}
		return entry{key: key, value: value, deleted: value == nil}, true, nil
	default:
		return entry{}, false, errors.Wrapf(errors.ErrDatabase, "unknown btree item %T", item)
	}
}

// entry is a pending change. A deleted entry hides the value of the parent.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
