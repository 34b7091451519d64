package splitter

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/splitter/errors"
)

var (
	// AddressLength is the length of all addresses
	// You can modify it in init() before any addresses are calculated,
	// but it must not change during the lifetime of the kvstore
	AddressLength = 20

	// it must have (?s) flags, otherwise it errors when last section contains 0x20 (newline)
	perm = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)
)

// Condition is a specially formatted array, containing
// information on who can authorize an action.
// It is of the format:
//
//   sprintf("%s/%s/%s", extension, type, data)
type Condition []byte

// NewCondition builds a condition for the given extension and type.
func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse will extract the sections from the Condition bytes
// and verify it is properly formatted
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := perm.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address will convert a Condition into an Address
func (c Condition) Address() Address {
	return NewAddress(c)
}

// String returns a human readable string.
// We keep the extension and type in ascii and
// hex-encode the binary data
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Address represents a collision-free, one-way digest of a Condition. This is
// the canonical, binary form of an identity that is persisted in the store.
//
// It will be of size AddressLength
type Address []byte

// NewAddress hashes and truncates into the proper size
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// String returns a hex representation of the address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts the hex representation created by MarshalJSON.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if enc == "" || enc == "(nil)" {
		*a = nil
		return nil
	}
	val, err := hex.DecodeString(enc)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	if err := Address(val).Validate(); err != nil {
		return err
	}
	*a = val
	return nil
}

// AddressCodec converts between the human readable representation of an
// identity and its canonical binary form. Both directions may fail.
type AddressCodec interface {
	Canonical(human string) (Address, error)
	Human(Address) (string, error)
}

// DefaultHRP is the human readable part of all addresses used by the
// application.
const DefaultHRP = "split"

// Bech32 is the AddressCodec representing human readable addresses as bech32
// strings with a fixed human readable part.
type Bech32 struct {
	HRP string
}

var _ AddressCodec = Bech32{}

// NewBech32 returns a codec using the default human readable part.
func NewBech32() Bech32 {
	return Bech32{HRP: DefaultHRP}
}

// Canonical decodes a bech32 string into an address. The human readable part
// must match the one configured for this codec.
func (c Bech32) Canonical(human string) (Address, error) {
	if human == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "address")
	}
	hrp, data, err := bech32.Decode(human)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 decode: %s", err)
	}
	if hrp != c.HRP {
		return nil, errors.Wrapf(errors.ErrInput, "unexpected address prefix %q", hrp)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	addr := Address(payload)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// Human encodes a valid address into its bech32 representation.
func (c Bech32) Human(addr Address) (string, error) {
	if err := addr.Validate(); err != nil {
		return "", err
	}
	data, err := bech32.ConvertBits(addr, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	raw, err := bech32.Encode(c.HRP, data)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "bech32 encode: %s", err)
	}
	return raw, nil
}

// MustHuman returns the human readable form of an address or panics. Use it
// only for addresses that were already validated.
func (c Bech32) MustHuman(addr Address) string {
	h, err := c.Human(addr)
	if err != nil {
		panic(err)
	}
	return h
}
