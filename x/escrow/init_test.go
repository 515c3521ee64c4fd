package escrow

import (
	"testing"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/store"
	"github.com/iov-one/descrow/weavetest"
	"github.com/iov-one/descrow/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	const genesis = `[
		{"buyer": "0102030405060708090021222324252627282930", "transporter": "hex:0000000000000000000000000000000000000001"},
		{"buyer": "0000000000000000000000000000000000000002", "transporter": "0000000000000000000000000000000000000003"}
	]`

	db := store.MemStore()
	err := Initializer{}.FromGenesis(descrow.Options{"escrow": []byte(genesis)}, db)
	assert.Nil(t, err)

	bucket := NewBucket()
	first, err := bucket.Load(db, weavetest.SequenceID(1))
	assert.Nil(t, err)
	assert.Equal(t, weavetest.DecodeAddr(t, "0102030405060708090021222324252627282930"), first.Buyer)
	assert.Equal(t, weavetest.DecodeAddr(t, "0000000000000000000000000000000000000001"), first.Transporter)
	assert.Equal(t, false, first.IsDelivered())

	second, err := bucket.Load(db, weavetest.SequenceID(2))
	assert.Nil(t, err)
	assert.Equal(t, weavetest.DecodeAddr(t, "0000000000000000000000000000000000000002"), second.Buyer)

	_, err = bucket.Load(db, weavetest.SequenceID(3))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestGenesisErrors(t *testing.T) {
	cases := map[string]string{
		"not a list":      `{"buyer": "0102030405060708090021222324252627282930"}`,
		"missing carrier": `[{"buyer": "0102030405060708090021222324252627282930"}]`,
		"bad address":     `[{"buyer": "zz", "transporter": "0102030405060708090021222324252627282930"}]`,
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Initializer{}.FromGenesis(descrow.Options{"escrow": []byte(raw)}, store.MemStore())
			if err == nil {
				t.Fatal("want an error")
			}
		})
	}

	assert.Nil(t, Initializer{}.FromGenesis(descrow.Options{}, store.MemStore()))
}
