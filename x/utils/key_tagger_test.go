package utils

import (
	"context"
	"testing"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/splittest"
	"github.com/iov-one/splitter/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestKeyTagger(t *testing.T) {
	cases := map[string]struct {
		handler splitter.Handler
		wantErr *errors.Error
		tags    []common.KVPair
	}{
		"no writes": {
			handler: &splittest.Handler{},
		},
		"bucket key is hex encoded": {
			handler: splittest.WriteHandler{Key: []byte("tokeninfo:\x01\xab"), Value: []byte("x")},
			tags: []common.KVPair{
				{Key: []byte("tokeninfo:01AB"), Value: []byte("s")},
			},
		},
		"plain key is kept": {
			handler: splittest.WriteHandler{Key: []byte("distribution"), Value: []byte("x")},
			tags: []common.KVPair{
				{Key: []byte("distribution"), Value: []byte("s")},
			},
		},
		"failure has no tags": {
			handler: splittest.WriteHandler{Key: []byte("config"), Value: []byte("x"), Err: errors.ErrState},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			res, err := NewKeyTagger().Deliver(context.Background(), db, nil, tc.handler)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.tags, res.Tags)
		})
	}
}

func TestKeyTaggerRecordsDeletes(t *testing.T) {
	db := store.MemStore()
	require.NoError(t, db.Set([]byte("distribution"), []byte("x")))

	res, err := NewKeyTagger().Deliver(context.Background(), db, nil, deleteHandler{key: []byte("distribution")})
	require.NoError(t, err)
	assert.Equal(t, []common.KVPair{{Key: []byte("distribution"), Value: []byte("d")}}, res.Tags)
}

type deleteHandler struct {
	key []byte
}

func (h deleteHandler) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.CheckResult, error) {
	return &splitter.CheckResult{}, db.Delete(h.key)
}

func (h deleteHandler) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx) (*splitter.DeliverResult, error) {
	return &splitter.DeliverResult{}, db.Delete(h.key)
}
