package app

import (
	"github.com/iov-one/splitter"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...splitter.Initializer) splitter.Initializer {
	return chainInitializers{inits}
}

type chainInitializers struct {
	inits []splitter.Initializer
}

var _ splitter.Initializer = chainInitializers{}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializers) FromGenesis(ctx splitter.Context, opts splitter.Options, kv splitter.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(ctx, opts, kv); err != nil {
			return err
		}
	}
	return nil
}
