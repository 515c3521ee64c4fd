package escrow

import (
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
)

const optKey = "escrow"

// GenesisEscrow is an escrow created at chain start.
type GenesisEscrow struct {
	Buyer       descrow.Address `json:"buyer"`
	Transporter descrow.Address `json:"transporter"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ descrow.Initializer = Initializer{}

// FromGenesis creates the listed escrows in order, so the first one
// receives the first id.
func (Initializer) FromGenesis(opts descrow.Options, db descrow.KVStore) error {
	var escrows []GenesisEscrow
	if err := opts.ReadOptions(optKey, &escrows); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	bucket := NewBucket()
	for i, e := range escrows {
		if _, err := bucket.Create(db, New(e.Buyer, e.Transporter)); err != nil {
			return errors.Wrapf(err, "escrow %d", i)
		}
	}
	return nil
}
