package bank

import (
	"fmt"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r descrow.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ descrow.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized
func (h SendHandler) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &descrow.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	return &descrow.DeliverResult{
		Log: fmt.Sprintf("sent %s from %s to %s", msg.Amount, msg.Src, msg.Dest),
	}, nil
}

func (h SendHandler) validate(ctx descrow.Context, tx descrow.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := descrow.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
