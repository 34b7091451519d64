package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/orm"
	"golang.org/x/crypto/ed25519"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is the greatest sequence supported by javascript
// clients (Number.MAX_SAFE_INTEGER).
const maxSequenceValue = (1 << 53) - 1

// StdSignature is a signature of a transaction together with the public key
// and the sequence it was made with.
type StdSignature struct {
	Sequence  int64  `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence"`
	Pubkey    []byte `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey"`
	Signature []byte `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.Pubkey) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.Pubkey) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrUnauthorized, "public key length %d", len(s.Pubkey))
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// UserData is the state of a signer.
type UserData struct {
	Pubkey   []byte `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey"`
	Sequence int64  `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	if len(u.Pubkey) != ed25519.PublicKeySize {
		errs = errors.Append(errs, errors.Field("Pubkey", errors.ErrModel, "public key length %d", len(u.Pubkey)))
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// KeyAddress returns the address controlled by the given public key.
func KeyAddress(pubkey ed25519.PublicKey) splitter.Address {
	return KeyCondition(pubkey).Address()
}

// KeyCondition returns the condition fulfilled by signatures of the key.
func KeyCondition(pubkey ed25519.PublicKey) splitter.Condition {
	return splitter.NewCondition("sigs", "ed25519", pubkey)
}

// NewBucket returns the bucket holding the state of every signer, keyed
// by the signer address.
func NewBucket() orm.Bucket {
	return orm.NewBucket(BucketName)
}

// GetSequence returns the next sequence expected from the address. Unknown
// signers start at zero.
func GetSequence(db splitter.ReadOnlyKVStore, addr splitter.Address) (int64, error) {
	var user UserData
	switch err := NewBucket().One(db, addr, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}
