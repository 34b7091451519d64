package gconf

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/splitter/errors"
)

// ReadStore is a subset of splitter.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
}

// Store is a subset of splitter.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
	Delete([]byte) error
}

// ValidMessage is implemented by a protobuf message that can validate its
// own state.
type ValidMessage interface {
	proto.Message
	Validate() error
}

// Save will Validate the object, before writing it under the singleton key.
func Save(db Store, key string, src ValidMessage) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := proto.Marshal(src)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal: key %q: %s", key, err)
	}
	if err := db.Set([]byte(key), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "set %q: %s", key, err)
	}
	return nil
}

// Load reads the singleton stored under the given key into dst.
func Load(db ReadStore, key string, dst proto.Message) error {
	raw, err := db.Get([]byte(key))
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "get %q: %s", key, err)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := proto.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal: key %q: %s", key, err)
	}
	return nil
}

// Exists returns true if a singleton is stored under the given key.
func Exists(db ReadStore, key string) (bool, error) {
	ok, err := db.Has([]byte(key))
	if err != nil {
		return false, errors.Wrapf(errors.ErrDatabase, "has %q: %s", key, err)
	}
	return ok, nil
}

// Delete removes the singleton. Deleting a missing singleton is not an
// error.
func Delete(db Store, key string) error {
	if err := db.Delete([]byte(key)); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "delete %q: %s", key, err)
	}
	return nil
}
