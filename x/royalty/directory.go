package royalty

import (
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/orm"
)

// NewTokenBucket returns the bucket holding registered token entries. Each
// entry is stored under the canonical token address.
func NewTokenBucket() orm.Bucket {
	return orm.NewBucket("tokeninfo")
}

// RegisterToken stores the callback credential of a token contract. Any
// existing entry for the same token is overwritten.
func RegisterToken(db splitter.KVStore, token splitter.Address, callback string) error {
	if err := token.Validate(); err != nil {
		return errors.Wrap(err, "token")
	}
	return NewTokenBucket().Save(db, token, &TokenInfo{Callback: callback})
}

// LookupToken returns the callback credential of a registered token. It
// fails with ErrNotRegistered if the token is unknown.
func LookupToken(db splitter.ReadOnlyKVStore, token splitter.Address) (string, error) {
	var info TokenInfo
	switch err := NewTokenBucket().One(db, token, &info); {
	case err == nil:
		return info.Callback, nil
	case errors.ErrNotFound.Is(err):
		return "", errors.Wrapf(ErrNotRegistered, "token %s", token)
	default:
		return "", err
	}
}
