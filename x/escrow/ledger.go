package escrow

import (
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
)

// Ledger is everything an escrow needs to know about the environment of a
// single operation call.
type Ledger interface {
	// Caller is the account that invoked the operation.
	Caller() descrow.Address
	// Now is the current time.
	Now() descrow.UnixTime
	// TransferredValue is the value attached to the call. It is already in
	// the custody of the escrow.
	TransferredValue() coin.Amount
	// Transfer pays given amount out of the escrow custody.
	Transfer(to descrow.Address, amount coin.Amount) error
}
