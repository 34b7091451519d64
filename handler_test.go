package splitter

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/splittest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestReadOptions(t *testing.T) {
	opts := Options{
		"royalty": json.RawMessage(`{"code_hash": "abc"}`),
		"broken":  json.RawMessage(`{"code_hash": `),
	}

	var got struct {
		CodeHash string `json:"code_hash"`
	}
	assert.Nil(t, opts.ReadOptions("royalty", &got))
	assert.Equal(t, "abc", got.CodeHash)

	// missing key is not an error and leaves the value untouched
	assert.Nil(t, opts.ReadOptions("missing", &got))
	assert.Equal(t, "abc", got.CodeHash)

	if err := opts.ReadOptions("broken", &got); err == nil {
		t.Fatal("want an error for broken json")
	}
}

func TestDeliverOrError(t *testing.T) {
	res := DeliverOrError(nil, errors.Wrap(errors.ErrUnauthorized, "admin only"), false)
	assert.Equal(t, uint32(2), res.Code)
	assert.Equal(t, "cannot deliver tx: admin only: unauthorized", res.Log)
	assert.IsErr(t, errors.ErrUnauthorized, errors.ABCIError(res.Code, res.Log))

	ok := DeliverOrError(&DeliverResult{Data: []byte("data"), Log: "fine"}, nil, false)
	assert.Equal(t, abci.ResponseDeliverTx{Data: []byte("data"), Log: "fine"}, ok)
}

func TestCheckOrError(t *testing.T) {
	res := CheckOrError(nil, errors.ErrInput.New("bad"), false)
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)
	assert.Equal(t, "cannot check tx: bad: invalid input", res.Log)

	ok := CheckOrError(&CheckResult{GasAllocated: 10, Log: "ok"}, nil, false)
	assert.Equal(t, abci.ResponseCheckTx{Log: "ok", GasWanted: 10}, ok)
}

type nopQuery struct{}

func (nopQuery) Query(ReadOnlyKVStore, []byte) ([]byte, error) { return nil, nil }

func TestQueryRouter(t *testing.T) {
	r := NewQueryRouter()
	r.RegisterAll(func(qr QueryRouter) {
		qr.Register("/foo", nopQuery{})
	})
	if r.Handler("/foo") == nil {
		t.Fatal("handler not registered")
	}
	if r.Handler("/bar") != nil {
		t.Fatal("unexpected handler")
	}
	assert.Panics(t, func() { r.Register("/foo", nopQuery{}) })
}
