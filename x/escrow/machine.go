package escrow

import (
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
)

// TransporterPercent is the share of a released balance paid to the
// transporter.
const TransporterPercent = 10

// New returns an escrow without funds and without delivery.
func New(buyer, transporter descrow.Address) *Escrow {
	return &Escrow{
		Buyer:       buyer,
		Transporter: transporter,
	}
}

// Deposit adds the value attached to the call to the balance. Anyone can
// deposit at any time.
func (e *Escrow) Deposit(l Ledger) error {
	value := l.TransferredValue()
	if !value.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "deposit")
	}
	balance, err := e.Balance.Add(value)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	e.Balance = balance
	return nil
}

// MarkDelivered marks the delivery as done without any proof.
func (e *Escrow) MarkDelivered() bool {
	e.Delivered = true
	return e.Delivered
}

// IsDelivered returns true if the delivery was marked or proven.
func (e *Escrow) IsDelivered() bool {
	return e.Delivered
}

// SubmitProof stores the proof of delivery together with the current time.
// Anyone but the buyer can submit it, once.
func (e *Escrow) SubmitProof(l Ledger, proof []byte) error {
	if l.Caller().Equals(e.Buyer) {
		return errors.Wrap(errors.ErrUnauthorized, "buyer cannot submit proof")
	}
	if e.Delivered {
		return errors.Wrap(ErrAlreadyDelivered, "submit proof")
	}
	e.ProofOfDelivery = append([]byte{}, proof...)
	e.DeliveryTimestamp = l.Now()
	e.Delivered = true
	return nil
}

// ConfirmDelivery is the buyer accepting the submitted proof. It clears the
// dispute flag.
func (e *Escrow) ConfirmDelivery(l Ledger) error {
	if !l.Caller().Equals(e.Buyer) {
		return errors.Wrap(errors.ErrUnauthorized, "only buyer can confirm")
	}
	if e.ProofOfDelivery == nil {
		return errors.Wrap(ErrMissingProof, "confirm")
	}
	e.Delivered = true
	e.Dispute = false
	return nil
}

// RaiseDispute flags a delivered escrow as disputed by the buyer. The flag
// does not block a release.
func (e *Escrow) RaiseDispute(l Ledger) error {
	if !l.Caller().Equals(e.Buyer) {
		return errors.Wrap(errors.ErrUnauthorized, "only buyer can dispute")
	}
	if !e.Delivered {
		return errors.Wrap(ErrNotYetDelivered, "dispute")
	}
	e.Dispute = true
	return nil
}

// Release pays out the whole balance of a delivered escrow. The transporter
// receives its share and the remainder goes to the seller chosen by the
// caller.
//
// The balance is cleared before any transfer is made. If a transfer fails
// the escrow is left modified and the caller must discard all changes.
func (e *Escrow) Release(l Ledger, seller descrow.Address) error {
	if !e.Delivered {
		return errors.Wrap(ErrDeliveryNotConfirmed, "release")
	}
	if e.Balance == 0 {
		return errors.Wrap(ErrNoFunds, "release")
	}
	toTransporter, toSeller, err := Split(e.Balance)
	if err != nil {
		return err
	}
	e.Balance = 0
	if err := l.Transfer(e.Transporter, toTransporter); err != nil {
		return &TransferError{Recipient: e.Transporter, Err: err}
	}
	if err := l.Transfer(seller, toSeller); err != nil {
		return &TransferError{Recipient: seller, Err: err}
	}
	return nil
}

// Refund returns the whole balance to the buyer. It is only possible before
// the delivery.
func (e *Escrow) Refund(l Ledger) error {
	if !l.Caller().Equals(e.Buyer) {
		return errors.Wrap(errors.ErrUnauthorized, "only buyer can refund")
	}
	if e.Delivered {
		return errors.Wrap(ErrAlreadyDelivered, "refund")
	}
	if e.Balance == 0 {
		return errors.Wrap(ErrNoFunds, "refund")
	}
	amount := e.Balance
	e.Balance = 0
	if err := l.Transfer(e.Buyer, amount); err != nil {
		return &TransferError{Recipient: e.Buyer, Err: err}
	}
	return nil
}

// Split divides a balance into the transporter and the seller share. The
// transporter share is rounded down so both always add up to the balance.
func Split(balance coin.Amount) (transporter, seller coin.Amount, err error) {
	scaled, err := balance.Mul(TransporterPercent)
	if err != nil {
		return 0, 0, errors.Wrap(err, "transporter share")
	}
	transporter = scaled / 100
	seller, err = balance.Sub(transporter)
	if err != nil {
		return 0, 0, errors.Wrap(err, "seller share")
	}
	return transporter, seller, nil
}
