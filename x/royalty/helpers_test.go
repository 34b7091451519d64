package royalty

import (
	"testing"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/splittest"
	"github.com/iov-one/splitter/store"
)

// fixture is an initialized store with one registered token.
type fixture struct {
	db    splitter.CacheableKVStore
	codec splitter.Bech32
	admin splitter.Address
	token splitter.Address
}

func newFixture(t testing.TB, d *Distribution) fixture {
	t.Helper()
	f := fixture{
		db:    store.MemStore(),
		codec: splitter.NewBech32(),
		admin: splittest.NewAddress(),
		token: splittest.NewAddress(),
	}
	_, err := Init(f.db, f.codec, InitParams{
		Admin:         splittest.Human(t, f.admin),
		Distribution:  d,
		Token:         splittest.Human(t, f.token),
		TokenCallback: "token-code-hash",
		CodeHash:      "splitter-code-hash",
	})
	if err != nil {
		t.Fatalf("cannot initialize: %s", err)
	}
	return f
}

func table(decimalPlaces uint32, royalties ...*Royalty) *Distribution {
	return &Distribution{DecimalPlaces: decimalPlaces, Royalties: royalties}
}

func royalty(t testing.TB, recipient splitter.Address, rate uint64) *Royalty {
	return &Royalty{Recipient: splittest.Human(t, recipient), Rate: rate}
}

// transfers returns recipient and amount of every transfer instruction.
func transfers(t testing.TB, ins []*Instruction) [][2]string {
	t.Helper()
	res := make([][2]string, 0, len(ins))
	for i, in := range ins {
		if in.Transfer == nil {
			t.Fatalf("instruction %d is not a transfer: %v", i, in)
		}
		res = append(res, [2]string{in.Transfer.Recipient, in.Transfer.Amount})
	}
	return res
}
