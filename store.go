package descrow

// ReadOnlyKVStore reads raw key value pairs. Both methods panic on a nil
// key.
type ReadOnlyKVStore interface {
	// Get returns nil if the key does not exist.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// SetDeleter writes raw key value pairs. Implementations must not modify
// the passed slices.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store handlers read and write. Escrows, accounts and
// signer nonces all live in one KVStore, each in its own orm bucket.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Batch collects writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore can stack a cache on top of itself. A cache works like
// a database savepoint: its changes are visible through the cache only,
// until written.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds pending changes over a parent store. It can be cached
// again to nest savepoints.
type KVCacheWrap interface {
	CacheableKVStore

	// Write moves all pending changes to the parent.
	Write() error

	// Discard drops all pending changes. The cache must not be used
	// afterwards.
	Discard()
}
