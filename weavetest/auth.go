package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/descrow"
)

// Auth authenticates a fixed set of conditions, no matter the context.
//
// Signer and Signers are merged, so a single signer can be declared without
// building a slice.
type Auth struct {
	Signer  descrow.Condition
	Signers []descrow.Condition
}

func (a *Auth) GetConditions(descrow.Context) []descrow.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]descrow.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx descrow.Context, addr descrow.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates conditions stored in the context under Key. It is
// used where each call is made by a different signer.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx descrow.Context, conds ...descrow.Condition) descrow.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx descrow.Context) []descrow.Condition {
	switch conds := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []descrow.Condition:
		return conds
	default:
		panic(fmt.Sprintf("%q holds %T instead of conditions", a.Key, conds))
	}
}

func (a *CtxAuth) HasAddress(ctx descrow.Context, addr descrow.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []descrow.Condition, addr descrow.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
