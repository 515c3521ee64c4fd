package utils

import (
	"time"

	"github.com/iov-one/descrow"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one entry per executed transaction with its path, the
// block height and how long it took. Failed deliveries are logged as
// errors, failed checks only as info.
type Logging struct{}

var _ descrow.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Checker) (*descrow.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		logger.Info("check failed", "err", err)
	default:
		logger.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Deliverer) (*descrow.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		logger.Error("deliver failed", "err", err)
	default:
		// An empty log still carries the path and timing.
		logger.Info(res.Log)
	}
	return res, err
}

func txLogger(ctx descrow.Context, tx descrow.Tx, start time.Time) log.Logger {
	height, _ := descrow.GetHeight(ctx)
	return descrow.GetLogger(ctx).With(
		"path", descrow.GetPath(tx),
		"height", height,
		"duration_us", time.Since(start)/time.Microsecond,
	)
}
