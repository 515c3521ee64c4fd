package x

import (
	"github.com/iov-one/descrow"
)

// Authenticator tells who authorized the current transaction. Handlers get
// one in their constructor instead of reading signatures themselves.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled by the transaction.
	GetConditions(descrow.Context) []descrow.Condition
	// HasAddress returns true if any of the conditions has this address.
	HasAddress(descrow.Context, descrow.Address) bool
}

// MultiAuth merges several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator accepting the conditions of all given
// ones.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions returns the conditions of all authenticators, in order.
func (m MultiAuth) GetConditions(ctx descrow.Context) []descrow.Condition {
	var conds []descrow.Condition
	for _, a := range m {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (m MultiAuth) HasAddress(ctx descrow.Context, addr descrow.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all authenticated conditions.
func GetAddresses(ctx descrow.Context, auth Authenticator) []descrow.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]descrow.Address, 0, len(conds))
	for _, c := range conds {
		addrs = append(addrs, c.Address())
	}
	return addrs
}

// MainSigner returns the first authenticated condition or nil. Its address
// is the caller of every escrow operation.
func MainSigner(ctx descrow.Context, auth Authenticator) descrow.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}
