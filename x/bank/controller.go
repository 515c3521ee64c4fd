package bank

import (
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
)

// Controller is the functionality needed by other extensions to read and
// move balances.
type Controller interface {
	Balance(descrow.ReadOnlyKVStore, descrow.Address) (coin.Amount, error)
	MoveCoins(descrow.KVStore, descrow.Address, descrow.Address, coin.Amount) error
	IssueCoins(descrow.KVStore, descrow.Address, coin.Amount) error
}

// BaseController is a simple implementation of Controller
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by the address. ErrNotFound is returned if
// the account was never funded.
func (c BaseController) Balance(db descrow.ReadOnlyKVStore, addr descrow.Address) (coin.Amount, error) {
	acct, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if acct == nil {
		return 0, errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}
	return acct.Amount, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db descrow.KVStore, src, dest descrow.Address, amount coin.Amount) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrNotFound, "empty account %s", src)
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has %s, need %s", src, sender.Amount, amount)
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Amount, err = recipient.Amount.Add(amount); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if sender.Amount, err = sender.Amount.Sub(amount); err != nil {
		return errors.Wrap(err, "sender")
	}

	// save them and return
	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the account.
func (c BaseController) IssueCoins(db descrow.KVStore, dest descrow.Address, amount coin.Amount) error {
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Amount, err = recipient.Amount.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}
