package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/splittest"
	"github.com/iov-one/splitter/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	h := splittest.PanicHandler{Value: "boom"}
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { h.Check(ctx, s, nil) })
	assert.Panics(t, func() { h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestRecoveryLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	signer := splittest.NewAddress()
	ctx := splitter.WithLogger(context.Background(), log.NewTMLogger(&buf))
	ctx = splitter.WithSigner(ctx, signer)
	tx := &splittest.Tx{Msg: &splittest.Msg{RoutePath: "royalty/receive"}}

	_, err := NewRecovery().Deliver(ctx, store.MemStore(), tx, splittest.PanicHandler{Value: "boom"})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "royalty/receive: boom")

	assert.Contains(t, buf.String(), "transaction panic")
	assert.Contains(t, buf.String(), "path=royalty/receive")
	assert.Contains(t, buf.String(), "signer="+signer.String())

	// A transaction without a readable message is still recovered.
	buf.Reset()
	broken := &splittest.Tx{Err: errors.Wrap(errors.ErrInput, "no message")}
	_, err = NewRecovery().Check(ctx, store.MemStore(), broken, splittest.PanicHandler{Value: "boom"})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, buf.String(), "transaction panic")
}
