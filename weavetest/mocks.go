package weavetest

import "github.com/iov-one/descrow"

// calls counts the Check and Deliver calls of a mock. Failed calls are
// counted too.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a descrow.Handler returning preset results. Set CheckErr or
// DeliverErr to make the corresponding call fail.
type Handler struct {
	calls

	CheckResult   descrow.CheckResult
	CheckErr      error
	DeliverResult descrow.DeliverResult
	DeliverErr    error
}

var _ descrow.Handler = (*Handler)(nil)

func (h *Handler) Check(descrow.Context, descrow.KVStore, descrow.Tx) (*descrow.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(descrow.Context, descrow.KVStore, descrow.Tx) (*descrow.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// Decorator is a descrow.Decorator that passes the call to the next handler
// unless CheckErr or DeliverErr is set.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ descrow.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Checker) (*descrow.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx, next descrow.Deliverer) (*descrow.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler that calls h through d.
func Decorate(h descrow.Handler, d descrow.Decorator) descrow.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   descrow.Handler
	decorator descrow.Decorator
}

func (d decorated) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
