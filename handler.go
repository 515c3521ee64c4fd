package descrow

import (
	"encoding/json"
)

// Handler executes one kind of message, for example an escrow deposit.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction without executing it.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction. Changes made to the store are kept
// only if no error is returned.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around the next handler in the chain. Signature checks,
// savepoints and logging are decorators.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds a message path to its handler.
type Registry interface {
	Handle(path string, h Handler)
}

// Options holds the app_options of the genesis file, raw JSON by extension
// name.
type Options map[string]json.RawMessage

// ReadOptions decodes the JSON stored under key into obj. A missing key
// leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the initial state of an extension from the genesis
// options.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
