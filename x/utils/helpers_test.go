package utils

import (
	"github.com/iov-one/descrow"
)

// writeHandler writes the key, value pair and returns the error (may be nil)
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ descrow.Handler = writeHandler{}

func (h writeHandler) Check(ctx descrow.Context, store descrow.KVStore, tx descrow.Tx) (*descrow.CheckResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &descrow.CheckResult{}, nil
}

func (h writeHandler) Deliver(ctx descrow.Context, store descrow.KVStore, tx descrow.Tx) (*descrow.DeliverResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &descrow.DeliverResult{}, nil
}

// writeDecorator writes the key, value pair.
// either before or after calling the handlers
type writeDecorator struct {
	key   []byte
	value []byte
	after bool
}

var _ descrow.Decorator = writeDecorator{}

func (d writeDecorator) Check(ctx descrow.Context, store descrow.KVStore, tx descrow.Tx, next descrow.Checker) (*descrow.CheckResult, error) {
	if !d.after {
		_ = store.Set(d.key, d.value)
	}
	res, err := next.Check(ctx, store, tx)
	if d.after {
		_ = store.Set(d.key, d.value)
	}
	return res, err
}

func (d writeDecorator) Deliver(ctx descrow.Context, store descrow.KVStore, tx descrow.Tx, next descrow.Deliverer) (*descrow.DeliverResult, error) {
	if !d.after {
		_ = store.Set(d.key, d.value)
	}
	res, err := next.Deliver(ctx, store, tx)
	if d.after {
		_ = store.Set(d.key, d.value)
	}
	return res, err
}

// panicHandler always panics
type panicHandler struct{}

var _ descrow.Handler = panicHandler{}

func (p panicHandler) Check(ctx descrow.Context, store descrow.KVStore, tx descrow.Tx) (*descrow.CheckResult, error) {
	panic("check panic")
}

func (p panicHandler) Deliver(ctx descrow.Context, store descrow.KVStore, tx descrow.Tx) (*descrow.DeliverResult, error) {
	panic("deliver panic")
}
