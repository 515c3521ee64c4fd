package app

import (
	"reflect"

	"github.com/iov-one/descrow"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
// The first decorator runs first.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
type Decorators struct {
	chain []descrow.Decorator
}

// ChainDecorators starts a stack. Nil decorators are skipped, so optional
// ones can be passed unconditionally.
func ChainDecorators(chain ...descrow.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with more decorators appended.
func (d Decorators) Chain(chain ...descrow.Decorator) Decorators {
	next := make([]descrow.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNil(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNil(d descrow.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns a handler running the whole stack and then h.
func (d Decorators) WithHandler(h descrow.Handler) descrow.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{decorator: d.chain[i], next: h}
	}
	return h
}

// step is a decorator bound to the rest of the stack.
type step struct {
	decorator descrow.Decorator
	next      descrow.Handler
}

var _ descrow.Handler = step{}

func (s step) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.CheckResult, error) {
	return s.decorator.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.DeliverResult, error) {
	return s.decorator.Deliver(ctx, db, tx, s.next)
}
