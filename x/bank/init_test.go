package bank

import (
	"testing"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitState(t *testing.T) {
	addr := descrow.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x29, 0x30}

	cases := map[string]struct {
		opts    descrow.Options
		isError bool
		acct    descrow.Address
		amount  coin.Amount
	}{
		"no data":       {descrow.Options{}, false, nil, 0},
		"other options": {descrow.Options{"foo": []byte(`"bar"`)}, false, nil, 0},
		"bad format":    {descrow.Options{"bank": []byte(`{"address": 1}`)}, true, nil, 0},
		"bad address":   {descrow.Options{"bank": []byte(`[{"address": "1234", "amount": 5}]`)}, true, nil, 0},
		"number amount": {
			descrow.Options{"bank": []byte(`[{"address":"0102030405060708090021222324252627282930","amount":50}]`)},
			false, addr, 50,
		},
		"string amount": {
			descrow.Options{"bank": []byte(`[{"address":"0102030405060708090021222324252627282930","amount":"18446744073709551615"}]`)},
			false, addr, coin.MaxAmount,
		},
		"duplicate overflows": {
			descrow.Options{"bank": []byte(`[
				{"address":"0102030405060708090021222324252627282930","amount":"18446744073709551615"},
				{"address":"0102030405060708090021222324252627282930","amount":1}]`)},
			true, nil, 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			err := Initializer{}.FromGenesis(tc.opts, kv)
			if tc.isError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.acct != nil {
				got, err := NewController(NewBucket()).Balance(kv, tc.acct)
				require.NoError(t, err)
				assert.Equal(t, tc.amount, got)
			}
		})
	}
}
