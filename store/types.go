//nolint
package store

import "github.com/iov-one/descrow"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = descrow.ReadOnlyKVStore
type SetDeleter = descrow.SetDeleter
type KVStore = descrow.KVStore
type Batch = descrow.Batch
type CacheableKVStore = descrow.CacheableKVStore
type KVCacheWrap = descrow.KVCacheWrap
