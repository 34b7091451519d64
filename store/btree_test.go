package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBase() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(makeBase).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(makeBase).CacheConflicts(t)
}

// TestBTreeCacheableWritesToParent makes sure a cache wrap over a plain
// KVStore only touches it on Write.
func TestBTreeCacheableWritesToParent(t *testing.T) {
	base, ops := LogableStore()
	cacheable := BTreeCacheable{base}

	cache := cacheable.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Delete([]byte("b")))
	assert.Empty(t, ops.ShowOpts())

	require.NoError(t, cache.Write())
	got := ops.ShowOpts()
	require.Len(t, got, 2)

	k, v, ok := got[0].IsSetOp()
	assert.True(t, ok)
	assert.Equal(t, []byte("a"), k)
	assert.Equal(t, []byte("1"), v)

	k, ok = got[1].IsDelOp()
	assert.True(t, ok)
	assert.Equal(t, []byte("b"), k)
}

func TestRecordingStore(t *testing.T) {
	db := NewRecordingStore(MemStore())
	require.NoError(t, db.Set([]byte("foo"), []byte("bar")))
	require.NoError(t, db.Delete([]byte("gone")))

	cache := db.(CacheableKVStore).CacheWrap()
	require.NoError(t, cache.Set([]byte("cached"), []byte("yes")))
	require.NoError(t, cache.Write())

	rec, ok := db.(Recorder)
	require.True(t, ok)
	want := map[string][]byte{
		"foo":    []byte("bar"),
		"gone":   nil,
		"cached": []byte("yes"),
	}
	assert.Equal(t, want, rec.KVPairs())
}

func TestBTreeCacheWrapPendingWrites(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("kept"), []byte("1")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete([]byte("kept")))
	require.NoError(t, cache.Set([]byte("new"), []byte("2")))

	// a pending delete hides the backing value
	has, err := cache.Has([]byte("kept"))
	require.NoError(t, err)
	assert.False(t, has)
	val, err := cache.Get([]byte("kept"))
	require.NoError(t, err)
	assert.Nil(t, val)

	// the backing store is untouched until Write
	val, err = base.Get([]byte("new"))
	require.NoError(t, err)
	assert.Nil(t, val)

	cache.Discard()
	val, err = cache.Get([]byte("kept"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)
}
