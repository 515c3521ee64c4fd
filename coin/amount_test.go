package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/weavetest/assert"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestAmountArithmetic(t *testing.T) {
	cases := map[string]struct {
		op      func() (Amount, error)
		want    Amount
		wantErr *errors.Error
	}{
		"add": {
			op:   func() (Amount, error) { return Amount(7).Add(5) },
			want: 12,
		},
		"add overflow": {
			op:      func() (Amount, error) { return MaxAmount.Add(1) },
			wantErr: errors.ErrOverflow,
		},
		"add zero to max": {
			op:   func() (Amount, error) { return MaxAmount.Add(0) },
			want: MaxAmount,
		},
		"sub": {
			op:   func() (Amount, error) { return Amount(100).Sub(10) },
			want: 90,
		},
		"sub below zero": {
			op:      func() (Amount, error) { return Amount(1).Sub(2) },
			wantErr: errors.ErrOverflow,
		},
		"mul": {
			op:   func() (Amount, error) { return Amount(1000).Mul(10) },
			want: 10000,
		},
		"mul by zero": {
			op:   func() (Amount, error) { return MaxAmount.Mul(0) },
			want: 0,
		},
		"mul overflow": {
			op:      func() (Amount, error) { return (MaxAmount/10 + 1).Mul(10) },
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.op()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestAmountCompare(t *testing.T) {
	assert.Equal(t, -1, Amount(1).Compare(2))
	assert.Equal(t, 0, Amount(2).Compare(2))
	assert.Equal(t, 1, Amount(3).Compare(2))
	assert.Equal(t, true, Amount(0).IsZero())
	assert.Equal(t, false, Amount(0).IsPositive())
	assert.Equal(t, true, Amount(1).IsPositive())
}

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Amount
		wantErr *errors.Error
	}{
		"zero":         {raw: "0", want: 0},
		"padded":       {raw: " 42 ", want: 42},
		"max":          {raw: "18446744073709551615", want: MaxAmount},
		"too big":      {raw: "18446744073709551616", wantErr: errors.ErrOverflow},
		"negative":     {raw: "-1", wantErr: errors.ErrInvalidAmount},
		"not a number": {raw: "ten", wantErr: errors.ErrInvalidAmount},
		"empty":        {raw: "", wantErr: errors.ErrEmpty},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAmountUnmarshalJSON(t *testing.T) {
	var values []Amount
	err := json.Unmarshal([]byte(`[1, "2", "18446744073709551615"]`), &values)
	assert.Nil(t, err)
	assert.Equal(t, []Amount{1, 2, MaxAmount}, values)

	var a Amount
	if err := json.Unmarshal([]byte(`{}`), &a); !errors.ErrInvalidAmount.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestAmountAddSubProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("sub reverts a non overflowing add", prop.ForAll(
		func(a, b uint64) bool {
			sum, err := Amount(a).Add(Amount(b))
			if err != nil {
				// Overflow must only be reported when it really happens.
				return a > uint64(MaxAmount)-b
			}
			back, err := sum.Sub(Amount(b))
			return err == nil && back == Amount(a)
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("mul agrees with repeated add", prop.ForAll(
		func(a uint64, times uint8) bool {
			want := Amount(0)
			for i := uint8(0); i < times; i++ {
				var err error
				if want, err = want.Add(Amount(a)); err != nil {
					_, merr := Amount(a).Mul(uint64(times))
					return errors.ErrOverflow.Is(merr)
				}
			}
			got, err := Amount(a).Mul(uint64(times))
			return err == nil && got == want
		},
		gen.UInt64Range(0, 1<<60),
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
