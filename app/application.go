package app

import (
	"context"
	"time"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/orm"
	"github.com/tendermint/tendermint/libs/log"
)

// _app/ is a prefix for application internal data
var (
	chainIDKey = []byte("_app/chainID")
	heightKey  = []byte("_app/height")
)

// Application executes transactions against a store. Every delivered
// transaction forms its own block: it is run on a cache of the store that is
// written back only if the transaction succeeded, so a failed transaction
// never leaves partial state behind.
type Application struct {
	name        string
	store       descrow.CacheableKVStore
	decoder     descrow.TxDecoder
	handler     descrow.Handler
	initializer descrow.Initializer
	logger      log.Logger
}

// NewApplication returns an application running given handler stack on
// top of the store.
func NewApplication(name string, store descrow.CacheableKVStore, decoder descrow.TxDecoder, handler descrow.Handler) *Application {
	return &Application{
		name:    name,
		store:   store,
		decoder: decoder,
		handler: handler,
		logger:  log.NewNopLogger(),
	}
}

// WithInit is used to set the initializer called by InitChain
func (a *Application) WithInit(init descrow.Initializer) *Application {
	a.initializer = init
	return a
}

// WithLogger sets the logger on the Application and returns it,
// to make it easy to chain in initialization
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.logger = logger.With("app", a.name)
	return a
}

// ChainID returns the chain id set by InitChain or an empty string.
func (a *Application) ChainID() (string, error) {
	raw, err := a.store.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// Height returns the number of the last committed block.
func (a *Application) Height() (int64, error) {
	raw, err := a.store.Get(heightKey)
	if err != nil {
		return 0, errors.Wrap(err, "load height")
	}
	h, err := orm.DecodeSequence(raw)
	return int64(h), err
}

// InitChain stores the chain id and runs all initializers with the genesis
// app options. It can be called only once for a given store.
func (a *Application) InitChain(gen Genesis) error {
	if !descrow.IsValidChainID(gen.ChainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %q", gen.ChainID)
	}
	current, err := a.ChainID()
	if err != nil {
		return err
	}
	if current != "" {
		return errors.Wrapf(errors.ErrUnauthorized, "genesis previously loaded for chain %q", current)
	}

	cache := a.store.CacheWrap()
	if err := cache.Set(chainIDKey, []byte(gen.ChainID)); err != nil {
		cache.Discard()
		return errors.Wrap(err, "save chain id")
	}
	if a.initializer != nil {
		if err := a.initializer.FromGenesis(gen.AppOptions, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "initialize from genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	a.logger.Info("Chain initialized", "chain_id", gen.ChainID)
	return nil
}

// DeliverTx decodes and executes a transaction in a new block with given
// time. State changes are committed only on success.
func (a *Application) DeliverTx(txBytes []byte, blockTime time.Time) (*descrow.DeliverResult, error) {
	tx, err := a.loadTx(txBytes)
	if err != nil {
		return nil, err
	}
	height, err := a.Height()
	if err != nil {
		return nil, err
	}
	height++
	ctx, err := a.blockContext(height, blockTime)
	if err != nil {
		return nil, err
	}
	ctx = descrow.WithLogInfo(ctx, "call", "deliver_tx")

	cache := a.store.CacheWrap()
	res, err := a.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Set(heightKey, orm.EncodeSequence(uint64(height))); err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "save height")
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	a.logger.Debug("Commit synced", "height", height)
	return res, nil
}

// CheckTx decodes and validates a transaction against the current state.
// Nothing is ever written.
func (a *Application) CheckTx(txBytes []byte, blockTime time.Time) (*descrow.CheckResult, error) {
	tx, err := a.loadTx(txBytes)
	if err != nil {
		return nil, err
	}
	height, err := a.Height()
	if err != nil {
		return nil, err
	}
	ctx, err := a.blockContext(height+1, blockTime)
	if err != nil {
		return nil, err
	}
	ctx = descrow.WithLogInfo(ctx, "call", "check_tx")

	cache := a.store.CacheWrap()
	defer cache.Discard()
	return a.handler.Check(ctx, cache, tx)
}

func (a *Application) blockContext(height int64, blockTime time.Time) (descrow.Context, error) {
	chainID, err := a.ChainID()
	if err != nil {
		return nil, err
	}
	if chainID == "" {
		return nil, errors.Wrap(errors.ErrInvalidState, "chain not initialized")
	}
	ctx := descrow.WithLogger(context.Background(), a.logger)
	ctx = descrow.WithChainID(ctx, chainID)
	ctx = descrow.WithHeight(ctx, height)
	ctx = descrow.WithBlockTime(ctx, blockTime)
	return ctx, nil
}

// loadTx calls the decoder, and capture any panics
func (a *Application) loadTx(txBytes []byte) (tx descrow.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = a.decoder(txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "cannot decode transaction")
	}
	return tx, nil
}
