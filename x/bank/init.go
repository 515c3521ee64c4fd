package bank

import (
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
)

const optKey = "bank"

// GenesisAccount is used to parse the json from genesis file
// use descrow.Address, so address in hex, not base64
type GenesisAccount struct {
	Address descrow.Address `json:"address"`
	Amount  coin.Amount     `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ descrow.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts descrow.Options, kv descrow.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	control := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := control.IssueCoins(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
