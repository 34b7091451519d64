package utils

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/store"
	"github.com/tendermint/tendermint/libs/common"
)

// KeyTagger is a decorator that records all Set/Delete
// operations performed by its children and adds all those keys
// as DeliverTx tags
type KeyTagger struct{}

var _ splitter.Decorator = KeyTagger{}

// NewKeyTagger creates a KeyTagger decorator
func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

// Check does nothing
func (KeyTagger) Check(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx, next splitter.Checker) (*splitter.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver passes in a recording KVStore into the child and
// uses that to calculate tags to add to DeliverResult
func (KeyTagger) Deliver(ctx splitter.Context, db splitter.KVStore, tx splitter.Tx, next splitter.Deliverer) (*splitter.DeliverResult, error) {
	record := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, record, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, kvPairs(record)...)
	return res, nil
}

var (
	recordSet    = []byte("s")
	recordDelete = []byte("d")
)

// kvPairs will get the kvpairs from an underlying store if possible
func kvPairs(db splitter.KVStore) common.KVPairs {
	r, ok := db.(store.Recorder)
	if !ok {
		return nil
	}
	return changesToTags(r.KVPairs())
}

// changesToTags turns every changed key into a tag. The bucket name
// prefix is kept readable, the rest of the key is hex encoded.
func changesToTags(changes map[string][]byte) common.KVPairs {
	if len(changes) == 0 {
		return nil
	}
	res := make(common.KVPairs, 0, len(changes))
	for k, v := range changes {
		tag := recordSet
		if v == nil {
			tag = recordDelete
		}
		res = append(res, common.KVPair{
			Key:   []byte(tagKey(k)),
			Value: tag,
		})
	}
	res.Sort()
	return res
}

func tagKey(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i] + ":" + strings.ToUpper(hex.EncodeToString([]byte(key[i+1:])))
	}
	return key
}
