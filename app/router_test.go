package app

import (
	"context"
	"testing"

	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/splittest"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &splittest.Handler{}
	bad := &splittest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	}
	r.Handle("good", good)
	r.Handle("bad", bad)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })

	ctx := context.Background()
	tx := func(path string) *splittest.Tx {
		return &splittest.Tx{Msg: &splittest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, nil, tx("good"))
	assert.NoError(t, err)
	_, err = r.Deliver(ctx, nil, tx("good"))
	assert.NoError(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, nil, tx("bad"))
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, bad.CallCount())

	// not found returns an error handler as well
	_, err = r.Check(ctx, nil, tx("missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, nil, tx("missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, 2, good.CallCount())

	// a transaction must carry a message
	_, err = r.Deliver(ctx, nil, &splittest.Tx{})
	assert.True(t, errors.ErrMsg.Is(err))
	_, err = r.Check(ctx, nil, &splittest.Tx{Err: errors.ErrInput})
	assert.True(t, errors.ErrInput.Is(err))
}
