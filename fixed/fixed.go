/*
Package fixed implements the fixed-point percentage arithmetic used to split
token amounts.

A rate is an integer numerator over a base of 10^decimalPlaces, so with two
decimal places a rate of 50 represents 50%. All computations use 256-bit
integers and fail instead of wrapping around.
*/
package fixed

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/splitter/errors"
)

// MaxDecimalPlaces is the biggest precision for which the base still fits
// into 256 bits.
//
// A single rate is a uint64, so one share can be at most 18446744073709551615.
// A table that gives 100% to one recipient is limited to 19 decimal places.
// Above that the base can only be reached by summing several rates.
const MaxDecimalPlaces = 77

// MaxSingleShareDecimalPlaces is the biggest precision for which a single
// uint64 rate can still be equal to the base.
const MaxSingleShareDecimalPlaces = 19

var ten = uint256.NewInt(10)

// Base returns 10^decimalPlaces. Precision for which the result does not fit
// into 256 bits is rejected with errors.ErrOverflow.
func Base(decimalPlaces uint32) (*uint256.Int, error) {
	res := uint256.NewInt(1)
	for i := uint32(0); i < decimalPlaces; i++ {
		if _, overflow := res.MulOverflow(res, ten); overflow {
			return nil, errors.Wrapf(errors.ErrOverflow, "10^%d does not fit 256 bits", decimalPlaces)
		}
	}
	return res, nil
}

// Sum adds all rates together. Result is always exact or an
// errors.ErrOverflow is returned.
func Sum(rates ...uint64) (*uint256.Int, error) {
	total := new(uint256.Int)
	for _, r := range rates {
		if _, overflow := total.AddOverflow(total, uint256.NewInt(r)); overflow {
			return nil, errors.Wrap(errors.ErrOverflow, "sum of rates")
		}
	}
	return total, nil
}

// Share returns floor(amount * rate / base). The multiplication result is
// kept in 512 bits, so it never overflows for any input. The quotient
// overflows only if rate is greater than base.
func Share(amount, rate, base *uint256.Int) (*uint256.Int, error) {
	if base.IsZero() {
		return nil, errors.Wrap(errors.ErrInput, "zero base")
	}
	res, overflow := new(uint256.Int).MulDivOverflow(amount, rate, base)
	if overflow {
		return nil, errors.Wrapf(errors.ErrOverflow, "%s * %s / %s", amount.ToBig(), rate.ToBig(), base.ToBig())
	}
	return res, nil
}

// ParseAmount parses a decimal representation of a token quantity. Only
// digits are accepted.
func ParseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "amount")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return nil, errors.Wrapf(errors.ErrInput, "invalid amount %q", s)
		}
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrOverflow, "amount %q: %s", s, err)
	}
	return v, nil
}
