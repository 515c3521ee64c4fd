package weavetest

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/crypto"
)

// NewKey returns a new random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() descrow.Condition {
	return NewKey().PublicKey().Condition()
}

// DecodeAddr decodes a hex encoded address and fails the test if the result
// is not a valid address.
func DecodeAddr(t testing.TB, encoded string) descrow.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode %q: %s", encoded, err)
	}
	addr := descrow.Address(raw)
	if err := addr.Validate(); err != nil {
		t.Fatalf("%q is not an address: %s", encoded, err)
	}
	return addr
}
