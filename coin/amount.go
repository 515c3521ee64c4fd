/*
Package coin provides the value type used for everything that is held or
moved by the escrow: a non-negative integer amount of the smallest unit of the
host currency.

All arithmetic is checked. An operation that would leave the uint64 range
returns ErrOverflow instead of wrapping around.
*/
package coin

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/iov-one/descrow/errors"
)

// Amount is a quantity of the smallest unit of value.
type Amount uint64

// MaxAmount is the largest representable amount.
const MaxAmount = Amount(^uint64(0))

// Add returns the sum of both amounts.
func (a Amount) Add(o Amount) (Amount, error) {
	c := a + o
	if c < a {
		return c, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, o)
	}
	return c, nil
}

// Sub returns the difference of both amounts. Subtracting more than is
// available is an overflow.
func (a Amount) Sub(o Amount) (Amount, error) {
	if o > a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d - %d", a, o)
	}
	return a - o, nil
}

// Mul returns the amount multiplied by given factor.
func (a Amount) Mul(times uint64) (Amount, error) {
	c, err := mul64(uint64(a), times)
	if err != nil {
		return 0, errors.Wrapf(err, "%d * %d", a, times)
	}
	return Amount(c), nil
}

// mul64 multiplies two uint64 numbers. If the result overflows the uint64
// size the ErrOverflow is returned.
func mul64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/a != b {
		return c, errors.ErrOverflow
	}
	return c, nil
}

// IsZero returns true if there is no value.
func (a Amount) IsZero() bool {
	return a == 0
}

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// Compare returns -1 if a is less than o, 0 if they are equal and 1 otherwise.
func (a Amount) Compare(o Amount) int {
	switch {
	case a < o:
		return -1
	case a > o:
		return 1
	default:
		return 0
	}
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// ParseAmount parses a decimal representation of an amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(errors.ErrEmpty, "amount")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, errors.Wrapf(errors.ErrOverflow, "amount %q", s)
		}
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "amount %q", s)
	}
	return Amount(n), nil
}

// Set updates this amount value to what is provided. This method implements
// flag.Value interface.
func (a *Amount) Set(raw string) error {
	val, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = val
	return nil
}

// UnmarshalJSON accepts both a JSON number and a decimal string. Amounts close
// to the uint64 limit cannot be represented by a JSON number in most clients,
// so the string form is preferred.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return a.Set(s)
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		return errors.Wrapf(errors.ErrInvalidAmount, "cannot decode %s", raw)
	}
	*a = Amount(n)
	return nil
}
