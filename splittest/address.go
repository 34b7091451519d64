package splittest

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/splitter"
)

var addrSeq uint64

// NewAddress returns a unique address. Addresses are deterministic for the
// order of calls within a test binary.
func NewAddress() splitter.Address {
	addrSeq++
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], addrSeq)
	return splitter.NewCondition("test", "seq", raw[:]).Address()
}

// Human returns the bech32 representation of the address using the
// default prefix.
func Human(t testing.TB, addr splitter.Address) string {
	t.Helper()
	h, err := splitter.NewBech32().Human(addr)
	if err != nil {
		t.Fatalf("cannot encode %s address: %s", addr, err)
	}
	return h
}

// Canonical decodes a bech32 address with the default prefix.
func Canonical(t testing.TB, human string) splitter.Address {
	t.Helper()
	addr, err := splitter.NewBech32().Canonical(human)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", human, err)
	}
	return addr
}
