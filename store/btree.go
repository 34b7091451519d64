package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/splitter/errors"
)

// BTreeCacheable adds a btree cache wrap to any KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a cache that is written to this store only on Write.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an in-memory store without any persistence. It backs
// tests and the cache wraps of the application store.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// ShowOpser returns an ordered list of all operations performed
type ShowOpser interface {
	ShowOpts() []Op
}

// LogableStore returns an in-memory store together with the log of every
// operation written to it.
func LogableStore() (CacheableKVStore, ShowOpser) {
	e := EmptyKVStore{}
	b := NewNonAtomicBatch(e)
	return NewBTreeCacheWrap(e, b, nil), b
}

// BTreeCacheWrap keeps pending writes in a btree over a read only store.
// Reads see the pending writes first. Write flushes them through the batch.
type BTreeCacheWrap struct {
	pending *btree.BTree
	free    *btree.FreeList
	back    ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap creates a cache over kv. All writes go through batch.
// A nil free list allocates a new one. Nested caches share the list of
// their parent.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		pending: btree.NewWithFreeList(2, free),
		free:    free,
		back:    kv,
		batch:   batch,
	}
}

// CacheWrap layers another cache on top of this one. Savepoints nest this
// way when a decorator runs inside another one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch writing into this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all pending writes to the backing store and empties the
// cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all pending writes. Nodes are returned to the free list.
func (b BTreeCacheWrap) Discard() {
	b.pending.Clear(true)
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	e, ok, err := b.lookup(key)
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return b.back.Get(key)
	case e.deleted:
		return nil, nil
	default:
		return e.value, nil
	}
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	e, ok, err := b.lookup(key)
	switch {
	case err != nil:
		return false, err
	case !ok:
		return b.back.Has(key)
	default:
		return !e.deleted, nil
	}
}

// lookup returns the pending write for the key, if any.
func (b BTreeCacheWrap) lookup(key []byte) (entry, bool, error) {
	res := b.pending.Get(entry{key: key})
	if res == nil {
		return entry{}, false, nil
	}
	e, ok := res.(entry)
	if !ok {
		return entry{}, false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", res)
	}
	return e, true, nil
}

// entry is a pending write. A deleted entry hides the value of the backing
// store.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
