package utils

import (
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
)

// Savepoint isolates all writes done inside of the call. They are written
// to the parent store only if the call succeeds. Like Postgresql
// SAVEPOINT / ROLLBACK TO SAVEPOINT.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ splitter.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx splitter.Context, store splitter.KVStore, tx splitter.Tx, next splitter.Checker) (*splitter.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *splitter.CheckResult
	err := inSavepoint(store, func(db splitter.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx splitter.Context, store splitter.KVStore, tx splitter.Tx, next splitter.Deliverer) (*splitter.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *splitter.DeliverResult
	err := inSavepoint(store, func(db splitter.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// inSavepoint runs fn on a cache of the store. Stores that cannot be cache
// wrapped are passed to fn directly.
func inSavepoint(store splitter.KVStore, fn func(splitter.KVStore) error) error {
	cstore, ok := store.(splitter.CacheableKVStore)
	if !ok {
		return fn(store)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
