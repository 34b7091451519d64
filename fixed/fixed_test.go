package fixed

import (
	"math"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/splittest/assert"
)

const maxUint256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

func mustParse(t testing.TB, s string) *uint256.Int {
	t.Helper()
	v, err := ParseAmount(s)
	if err != nil {
		t.Fatalf("cannot parse %q: %s", s, err)
	}
	return v
}

func TestBase(t *testing.T) {
	cases := map[string]struct {
		decimals uint32
		want     string
		wantErr  *errors.Error
	}{
		"no decimals": {
			decimals: 0,
			want:     "1",
		},
		"percent": {
			decimals: 2,
			want:     "100",
		},
		"largest that fits": {
			decimals: MaxDecimalPlaces,
			want:     "1" + strings.Repeat("0", 77),
		},
		"one too many": {
			decimals: MaxDecimalPlaces + 1,
			wantErr:  errors.ErrOverflow,
		},
		"absurd precision": {
			decimals: math.MaxUint32,
			wantErr:  errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Base(tc.decimals)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Amount(t, tc.want, got)
		})
	}
}

func TestSum(t *testing.T) {
	got, err := Sum()
	assert.Nil(t, err)
	assert.Equal(t, true, got.IsZero())

	got, err = Sum(50, 50)
	assert.Nil(t, err)
	assert.Amount(t, "100", got)

	// uint64 rates never wrap when added in 256 bits
	got, err = Sum(math.MaxUint64, math.MaxUint64, 2)
	assert.Nil(t, err)
	assert.Amount(t, "36893488147419103232", got)
}

func TestShare(t *testing.T) {
	cases := map[string]struct {
		amount  string
		rate    uint64
		base    uint64
		want    string
		wantErr *errors.Error
	}{
		"single recipient gets everything": {
			amount: "10",
			rate:   10,
			base:   10,
			want:   "10",
		},
		"half of an odd amount is floored": {
			amount: "101",
			rate:   50,
			base:   100,
			want:   "50",
		},
		"zero rate": {
			amount: "1000",
			rate:   0,
			base:   100,
			want:   "0",
		},
		"zero amount": {
			amount: "0",
			rate:   33,
			base:   100,
			want:   "0",
		},
		"max amount full share does not overflow": {
			amount: maxUint256,
			rate:   math.MaxUint64,
			base:   math.MaxUint64,
			want:   maxUint256,
		},
		"max amount half share": {
			amount: maxUint256,
			rate:   1,
			base:   2,
			want:   "57896044618658097711785492504343953926634992332820282019728792003956564819967",
		},
		"rate above base overflows": {
			amount:  maxUint256,
			rate:    2,
			base:    1,
			wantErr: errors.ErrOverflow,
		},
		"zero base": {
			amount:  "10",
			rate:    1,
			base:    0,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Share(mustParse(t, tc.amount), uint256.NewInt(tc.rate), uint256.NewInt(tc.base))
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Amount(t, tc.want, got)
		})
	}
}

// TestShareConservation checks that the shares computed for a table summing
// to 100% never exceed the amount and lose less than one unit per recipient.
func TestShareConservation(t *testing.T) {
	tables := map[string]struct {
		decimals uint32
		rates    []uint64
	}{
		"thirds":       {decimals: 3, rates: []uint64{333, 333, 334}},
		"uneven":       {decimals: 4, rates: []uint64{1, 9999}},
		"many":         {decimals: 2, rates: []uint64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}},
		"high precise": {decimals: 18, rates: []uint64{333333333333333333, 666666666666666667}},
	}
	amounts := []string{"0", "1", "7", "101", "999999999999", maxUint256}

	for testName, tc := range tables {
		t.Run(testName, func(t *testing.T) {
			base, err := Base(tc.decimals)
			assert.Nil(t, err)
			total, err := Sum(tc.rates...)
			assert.Nil(t, err)
			assert.Equal(t, base, total)

			for _, a := range amounts {
				amount := mustParse(t, a)
				paid := new(uint256.Int)
				for _, r := range tc.rates {
					share, err := Share(amount, uint256.NewInt(r), base)
					assert.Nil(t, err)
					paid.Add(paid, share)
				}
				if paid.Gt(amount) {
					t.Fatalf("paid %s out of %s", paid.ToBig(), amount.ToBig())
				}
				dust := new(uint256.Int).Sub(amount, paid)
				if !dust.Lt(uint256.NewInt(uint64(len(tc.rates)))) && !dust.IsZero() {
					t.Fatalf("dust %s too big for %d recipients", dust.ToBig(), len(tc.rates))
				}
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantErr *errors.Error
	}{
		"zero":          {raw: "0"},
		"simple":        {raw: "12345"},
		"max":           {raw: maxUint256},
		"empty":         {raw: "", wantErr: errors.ErrEmpty},
		"negative":      {raw: "-1", wantErr: errors.ErrInput},
		"plus sign":     {raw: "+1", wantErr: errors.ErrInput},
		"fraction":      {raw: "1.5", wantErr: errors.ErrInput},
		"hex":           {raw: "0x10", wantErr: errors.ErrInput},
		"spaces":        {raw: " 1", wantErr: errors.ErrInput},
		"max plus one":  {raw: "115792089237316195423570985008687907853269984665640564039457584007913129639936", wantErr: errors.ErrOverflow},
		"way too large": {raw: "1" + strings.Repeat("0", 100), wantErr: errors.ErrOverflow},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.raw)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil && got.ToBig().String() != tc.raw {
				t.Fatalf("want %s, got %s", tc.raw, got.ToBig())
			}
		})
	}
}
