package sigs

import (
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/weavetest"
)

// StdTx is a signed transaction usable in tests.
type StdTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ descrow.Tx = (*StdTx)(nil)

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return tx.Msg.Marshal()
}

func newStdTx(payload []byte) *StdTx {
	return &StdTx{Tx: weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/sign", Serialized: payload}}}
}
