/*
Package app wires the royalty extension into an ABCI application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/app"
	"github.com/iov-one/splitter/commands/server"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/store/iavl"
	"github.com/iov-one/splitter/x/royalty"
	"github.com/iov-one/splitter/x/sigs"
	"github.com/iov-one/splitter/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Name is returned by the ABCI Info call.
const Name = "splitter"

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewKeyTagger(),
		// a failed tx leaves no state behind, not even the signer's sequence
		utils.NewSavepoint().OnCheck().OnDeliver(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching to all royalty messages.
func Router(codec splitter.AddressCodec) *app.Router {
	r := app.NewRouter()
	royalty.RegisterRoutes(r, codec)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/distribution", "/tokens", "/config" and "/auth"
func QueryRouter(codec splitter.AddressCodec) splitter.QueryRouter {
	r := splitter.NewQueryRouter()
	r.RegisterAll(
		sigs.RegisterQuery,
		func(qr splitter.QueryRouter) { royalty.RegisterQuery(qr, codec) },
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(codec splitter.AddressCodec) splitter.Handler {
	return Chain().WithHandler(Router(codec))
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, h splitter.Handler, tx splitter.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	codec := splitter.NewBech32()
	store := app.NewStoreApp(name, kv, QueryRouter(codec), context.Background())
	store.WithInit(app.ChainInitializers(
		&royalty.Initializer{Codec: codec},
	))
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (splitter.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	application, err := Application(Name, Stack(splitter.NewBech32()), TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(options.Logger)
	return application, nil
}

// Initializer returns the initializer used for the genesis file.
func Initializer() splitter.Initializer {
	return app.ChainInitializers(&royalty.Initializer{Codec: splitter.NewBech32()})
}
