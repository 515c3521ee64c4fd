package escrow

import (
	"fmt"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
)

var (
	ErrAlreadyDelivered     = errors.Register(1010, "already delivered")
	ErrNotYetDelivered      = errors.Register(1011, "not yet delivered")
	ErrDeliveryNotConfirmed = errors.Register(1012, "delivery not confirmed")
	ErrMissingProof         = errors.Register(1013, "missing proof of delivery")
	ErrNoFunds              = errors.Register(1014, "no funds")
	ErrTransferFailed       = errors.Register(1015, "transfer failed")
)

// TransferError is returned when the ledger refused to pay out funds. It is
// always an ErrTransferFailed.
type TransferError struct {
	Recipient descrow.Address
	// Err is the reason given by the ledger.
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s to %s: %s", ErrTransferFailed.Error(), e.Recipient, e.Err)
}

// Cause allows to match the error with ErrTransferFailed.
func (e *TransferError) Cause() error {
	return ErrTransferFailed
}
