package app

import (
	"fmt"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/crypto/tmhash"
)

// BaseApp dispatches DeliverTx and CheckTx to the handler. Storage, queries
// and the block lifecycle come from the embedded StoreApp.
type BaseApp struct {
	*StoreApp
	decoder splitter.TxDecoder
	handler splitter.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(store *StoreApp, decoder splitter.TxDecoder, handler splitter.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - runs the transaction against the block state.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare("deliver_tx", txBytes)
	if err != nil {
		return splitter.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return splitter.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - validates the transaction against the mempool state.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare("check_tx", txBytes)
	if err != nil {
		return splitter.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return splitter.CheckOrError(res, err, b.debug)
}

// prepare decodes the transaction. The returned context logs the call, the
// transaction hash and the message path with every entry.
func (b BaseApp) prepare(call string, txBytes []byte) (splitter.Context, splitter.Tx, error) {
	hash := fmt.Sprintf("%X", tmhash.Sum(txBytes))
	tx, err := b.loadTx(txBytes)
	if err != nil {
		splitter.GetLogger(b.BlockContext()).Debug("cannot decode tx",
			"call", call,
			"tx", hash,
			"err", err)
		return nil, nil, err
	}
	ctx := splitter.WithLogInfo(b.BlockContext(),
		"call", call,
		"tx", hash,
		"path", splitter.GetPath(tx))
	return ctx, tx, nil
}

// loadTx calls the decoder. A panicking decoder results in errors.ErrPanic.
func (b BaseApp) loadTx(txBytes []byte) (tx splitter.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
