package utils

import (
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
)

// Recovery converts a panic raised below it into an ErrPanic error. The
// application then discards the whole block like for any other failure.
type Recovery struct{}

var _ descrow.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Checker) (res *descrow.CheckResult, err error) {
	defer recovered(ctx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Deliverer) (res *descrow.DeliverResult, err error) {
	defer recovered(ctx, &err)
	return next.Deliver(ctx, db, tx)
}

// recovered must be deferred directly, recover is a no-op otherwise.
func recovered(ctx descrow.Context, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		descrow.GetLogger(ctx).Error("handler panic", "panic", r)
	}
}
