package splitter

import "github.com/iov-one/splitter/store"

// The storage interfaces live in the store package. They are aliased here
// so that handlers only need to import this package.
type (
	ReadOnlyKVStore  = store.ReadOnlyKVStore
	KVStore          = store.KVStore
	CacheableKVStore = store.CacheableKVStore
	KVCacheWrap      = store.KVCacheWrap
	CommitKVStore    = store.CommitKVStore
	CommitID         = store.CommitID
	Batch            = store.Batch
)
