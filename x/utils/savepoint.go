package utils

import (
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
)

// Savepoint runs the rest of the chain on a cache and writes it only if no
// error was returned. A release that paid the transporter and then failed
// to pay the seller leaves no trace.
//
// NewSavepoint is inactive, enable it with OnCheck or OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ descrow.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy that is active on Check.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a copy that is active on Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Checker) (*descrow.CheckResult, error) {
	var res *descrow.CheckResult
	err := savepoint(s.onCheck, db, func(db descrow.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Deliverer) (*descrow.DeliverResult, error) {
	var res *descrow.DeliverResult
	err := savepoint(s.onDeliver, db, func(db descrow.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// savepoint calls fn with a cache over db when active and db can be
// cached, or with db itself otherwise.
func savepoint(active bool, db descrow.KVStore, fn func(descrow.KVStore) error) error {
	cacheable, ok := db.(descrow.CacheableKVStore)
	if !active || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "writing savepoint")
}
