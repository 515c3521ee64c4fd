package escrow

import (
	"fmt"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/x"
	"github.com/iov-one/descrow/x/bank"
	"github.com/tendermint/tendermint/libs/common"
)

// TagKey is the key of the result tag holding the id of the escrow that a
// transaction modified.
const TagKey = "escrow"

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r descrow.Registry, auth x.Authenticator, control bank.Controller) {
	bucket := NewBucket()

	r.Handle(pathCreate, CreateEscrowHandler{auth: auth, bucket: bucket})
	r.Handle(pathDeposit, newOperationHandler(auth, bucket, control, depositOp))
	r.Handle(pathMarkDelivered, newOperationHandler(auth, bucket, control, markDeliveredOp))
	r.Handle(pathSubmitProof, newOperationHandler(auth, bucket, control, submitProofOp))
	r.Handle(pathConfirmDelivery, newOperationHandler(auth, bucket, control, confirmDeliveryOp))
	r.Handle(pathRaiseDispute, newOperationHandler(auth, bucket, control, raiseDisputeOp))
	r.Handle(pathRelease, newOperationHandler(auth, bucket, control, releaseOp))
	r.Handle(pathRefund, newOperationHandler(auth, bucket, control, refundOp))
}

// CreateEscrowHandler stores a new escrow.
type CreateEscrowHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ descrow.Handler = CreateEscrowHandler{}

// Check just verifies it is properly formed.
func (h CreateEscrowHandler) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &descrow.CheckResult{}, nil
}

// Deliver creates the escrow and returns its id as the result data.
func (h CreateEscrowHandler) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.bucket.Create(db, New(msg.Buyer, msg.Transporter))
	if err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &descrow.DeliverResult{
		Data: id,
		Log:  fmt.Sprintf("escrow %X created", id),
		Tags: []common.KVPair{descrow.Tag(TagKey, idTag(id))},
	}, nil
}

func (h CreateEscrowHandler) validate(ctx descrow.Context, tx descrow.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := descrow.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	return &msg, nil
}

// operationMsg is a message that targets an existing escrow.
type operationMsg interface {
	descrow.Msg
	escrowID() []byte
}

func (m *DepositMsg) escrowID() []byte         { return m.EscrowID }
func (m *MarkDeliveredMsg) escrowID() []byte   { return m.EscrowID }
func (m *SubmitProofMsg) escrowID() []byte     { return m.EscrowID }
func (m *ConfirmDeliveryMsg) escrowID() []byte { return m.EscrowID }
func (m *RaiseDisputeMsg) escrowID() []byte    { return m.EscrowID }
func (m *ReleaseMsg) escrowID() []byte         { return m.EscrowID }
func (m *RefundMsg) escrowID() []byte          { return m.EscrowID }

// operation binds a message to a state machine call.
type operation struct {
	newMsg func() operationMsg
	// deposit returns the value that is moved into custody before apply.
	deposit func(operationMsg) coin.Amount
	apply   func(*Escrow, Ledger, operationMsg) (string, error)
}

var (
	depositOp = operation{
		newMsg:  func() operationMsg { return &DepositMsg{} },
		deposit: func(m operationMsg) coin.Amount { return m.(*DepositMsg).Amount },
		apply: func(e *Escrow, l Ledger, _ operationMsg) (string, error) {
			if err := e.Deposit(l); err != nil {
				return "", err
			}
			return fmt.Sprintf("deposited %s, balance %s", l.TransferredValue(), e.Balance), nil
		},
	}
	markDeliveredOp = operation{
		newMsg: func() operationMsg { return &MarkDeliveredMsg{} },
		apply: func(e *Escrow, _ Ledger, _ operationMsg) (string, error) {
			e.MarkDelivered()
			return "marked as delivered", nil
		},
	}
	submitProofOp = operation{
		newMsg: func() operationMsg { return &SubmitProofMsg{} },
		apply: func(e *Escrow, l Ledger, m operationMsg) (string, error) {
			if err := e.SubmitProof(l, m.(*SubmitProofMsg).Proof); err != nil {
				return "", err
			}
			return fmt.Sprintf("proof %X submitted", e.ProofOfDelivery), nil
		},
	}
	confirmDeliveryOp = operation{
		newMsg: func() operationMsg { return &ConfirmDeliveryMsg{} },
		apply: func(e *Escrow, l Ledger, _ operationMsg) (string, error) {
			return "delivery confirmed", e.ConfirmDelivery(l)
		},
	}
	raiseDisputeOp = operation{
		newMsg: func() operationMsg { return &RaiseDisputeMsg{} },
		apply: func(e *Escrow, l Ledger, _ operationMsg) (string, error) {
			return "dispute raised", e.RaiseDispute(l)
		},
	}
	releaseOp = operation{
		newMsg: func() operationMsg { return &ReleaseMsg{} },
		apply: func(e *Escrow, l Ledger, m operationMsg) (string, error) {
			balance := e.Balance
			seller := m.(*ReleaseMsg).Seller
			if err := e.Release(l, seller); err != nil {
				return "", err
			}
			// cannot fail after a successful release
			toTransporter, toSeller, _ := Split(balance)
			return fmt.Sprintf("released %s to transporter and %s to %s", toTransporter, toSeller, seller), nil
		},
	}
	refundOp = operation{
		newMsg: func() operationMsg { return &RefundMsg{} },
		apply: func(e *Escrow, l Ledger, _ operationMsg) (string, error) {
			amount := e.Balance
			if err := e.Refund(l); err != nil {
				return "", err
			}
			return fmt.Sprintf("refunded %s", amount), nil
		},
	}
)

// OperationHandler runs a single state machine operation on a stored
// escrow.
type OperationHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   bank.Controller
	op     operation
}

var _ descrow.Handler = OperationHandler{}

func newOperationHandler(auth x.Authenticator, bucket Bucket, control bank.Controller, op operation) OperationHandler {
	return OperationHandler{
		auth:   auth,
		bucket: bucket,
		bank:   control,
		op:     op,
	}
}

// Check verifies the message and that the escrow exists.
func (h OperationHandler) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.CheckResult, error) {
	msg, _, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Has(db, msg.escrowID()); err != nil {
		return nil, errors.Wrapf(err, "escrow %X", msg.escrowID())
	}
	return &descrow.CheckResult{}, nil
}

// Deliver runs the operation and stores the escrow if it succeeded. A
// failed operation may leave funds moved, so the store must be discarded
// by the caller.
func (h OperationHandler) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id := msg.escrowID()
	escrow, err := h.bucket.Load(db, id)
	if err != nil {
		return nil, err
	}
	now, err := descrow.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	ledger := &hostLedger{
		db:      db,
		bank:    h.bank,
		caller:  caller,
		custody: Condition(id).Address(),
		now:     descrow.AsUnixTime(now),
	}
	if h.op.deposit != nil {
		if err := ledger.receive(h.op.deposit(msg)); err != nil {
			return nil, err
		}
	}

	info, err := h.op.apply(escrow, ledger, msg)
	if err != nil {
		return nil, err
	}
	if _, err := h.bucket.Put(db, id, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &descrow.DeliverResult{
		Data: id,
		Log:  fmt.Sprintf("escrow %X: %s", id, info),
		Tags: []common.KVPair{descrow.Tag(TagKey, idTag(id))},
	}, nil
}

func (h OperationHandler) validate(ctx descrow.Context, tx descrow.Tx) (operationMsg, descrow.Address, error) {
	msg := h.op.newMsg()
	if err := descrow.LoadMsg(tx, msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	return msg, signer.Address(), nil
}

func idTag(id []byte) []byte {
	return []byte(fmt.Sprintf("%X", id))
}

// hostLedger provides the Ledger to a single operation call. Funds are held
// by the custody account of the escrow.
type hostLedger struct {
	db      descrow.KVStore
	bank    bank.Controller
	caller  descrow.Address
	custody descrow.Address
	now     descrow.UnixTime
	value   coin.Amount
}

var _ Ledger = (*hostLedger)(nil)

func (l *hostLedger) Caller() descrow.Address       { return l.caller }
func (l *hostLedger) Now() descrow.UnixTime         { return l.now }
func (l *hostLedger) TransferredValue() coin.Amount { return l.value }

// Transfer pays from the custody account. Paying nothing always succeeds.
func (l *hostLedger) Transfer(to descrow.Address, amount coin.Amount) error {
	if amount == 0 {
		return nil
	}
	return l.bank.MoveCoins(l.db, l.custody, to, amount)
}

// receive moves the value attached to the call from the caller into the
// custody account.
func (l *hostLedger) receive(amount coin.Amount) error {
	if amount == 0 {
		return nil
	}
	if err := l.bank.MoveCoins(l.db, l.caller, l.custody, amount); err != nil {
		return errors.Wrap(err, "deposit")
	}
	l.value = amount
	return nil
}
