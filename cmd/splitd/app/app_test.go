package app_test

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/splitter"
	splitApp "github.com/iov-one/splitter/app"
	"github.com/iov-one/splitter/cmd/splitd/app"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/splittest"
	"github.com/iov-one/splitter/splittest/assert"
	"github.com/iov-one/splitter/x/royalty"
	"github.com/iov-one/splitter/x/sigs"
	abci "github.com/tendermint/tendermint/abci/types"
	"golang.org/x/crypto/ed25519"
)

const chainID = "split-test-chain"

type account struct {
	key   ed25519.PrivateKey
	addr  splitter.Address
	human string
	seq   int64
}

func newAccount(t testing.TB) *account {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	assert.Nil(t, err)
	addr := sigs.KeyAddress(pub)
	return &account{
		key:   priv,
		addr:  addr,
		human: splitter.NewBech32().MustHuman(addr),
	}
}

// signedTx builds a transaction carrying msg and signed by the account.
func (a *account) signedTx(t testing.TB, msg splitter.Msg) []byte {
	t.Helper()
	var tx app.Tx
	assert.Nil(t, tx.SetMsg(msg))
	sig, err := sigs.SignTx(a.key, &tx, chainID, a.seq)
	assert.Nil(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	a.seq++
	raw, err := proto.Marshal(&tx)
	assert.Nil(t, err)
	return raw
}

func newApp(t testing.TB, admin, token *account) splitApp.BaseApp {
	t.Helper()
	appState, err := app.GenInitOptions([]string{admin.human, token.human, "token-callback", "splitter-hash"})
	assert.Nil(t, err)

	myApp, err := app.Application(app.Name, app.Stack(splitter.NewBech32()), app.TxDecoder, "", false)
	assert.Nil(t, err)
	myApp.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: appState})
	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	return myApp
}

func TestApp(t *testing.T) {
	admin := newAccount(t)
	token := newAccount(t)
	myApp := newApp(t, admin, token)

	// by default the whole amount goes to the admin
	dres := myApp.DeliverTx(token.signedTx(t, &royalty.ReceiveMsg{
		Sender: "sender", From: "sender", Amount: "1000",
	}))
	assert.Equal(t, uint32(0), dres.Code)
	ins, err := royalty.DecodeInstructions(dres.Data)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(ins))
	assert.Equal(t, admin.human, ins[0].Transfer.Recipient)
	assert.Equal(t, "1000", ins[0].Transfer.Amount)
	assert.Equal(t, token.human, ins[0].Transfer.Token)
	assert.Equal(t, "token-callback", ins[0].Transfer.Callback)

	// new distribution by the admin
	other := newAccount(t)
	dres = myApp.DeliverTx(admin.signedTx(t, &royalty.ChangeDistributionMsg{
		Distribution: &royalty.Distribution{
			DecimalPlaces: 1,
			Royalties: []*royalty.Royalty{
				{Recipient: admin.human, Rate: 3},
				{Recipient: other.human, Rate: 7},
			},
		},
	}))
	assert.Equal(t, uint32(0), dres.Code)
	myApp.EndBlock(abci.RequestEndBlock{})
	cres := myApp.Commit()
	assert.Equal(t, true, len(cres.Data) > 0)

	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 2}})
	dres = myApp.DeliverTx(token.signedTx(t, &royalty.ReceiveMsg{
		Sender: "sender", From: "sender", Amount: "99",
	}))
	assert.Equal(t, uint32(0), dres.Code)
	ins, err = royalty.DecodeInstructions(dres.Data)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(ins))
	assert.Equal(t, "29", ins[0].Transfer.Amount)
	assert.Equal(t, other.human, ins[1].Transfer.Recipient)
	assert.Equal(t, "69", ins[1].Transfer.Amount)
	myApp.Commit()

	qres := myApp.Query(abci.RequestQuery{Path: "/config"})
	assert.Equal(t, uint32(0), qres.Code)
	var conf struct {
		Admin    string `json:"admin"`
		CodeHash string `json:"code_hash"`
	}
	assert.Nil(t, json.Unmarshal(qres.Value, &conf))
	assert.Equal(t, admin.human, conf.Admin)
	assert.Equal(t, "splitter-hash", conf.CodeHash)

	qres = myApp.Query(abci.RequestQuery{Path: "/auth", Data: token.addr})
	assert.Equal(t, uint32(0), qres.Code)
	var user sigs.UserData
	assert.Nil(t, proto.Unmarshal(qres.Value, &user))
	assert.Equal(t, int64(2), user.Sequence)

	qres = myApp.Query(abci.RequestQuery{Path: "/tokens", Data: token.addr})
	assert.Equal(t, uint32(0), qres.Code)
	assert.Equal(t, "token-callback", string(qres.Value))
}

func TestAppRejections(t *testing.T) {
	admin := newAccount(t)
	token := newAccount(t)
	myApp := newApp(t, admin, token)

	// only the admin may change the distribution
	dres := myApp.DeliverTx(token.signedTx(t, &royalty.ChangeDistributionMsg{}))
	assert.ABCICode(t, errors.ErrUnauthorized, dres.Code, dres.Log)
	myApp.EndBlock(abci.RequestEndBlock{})
	myApp.Commit()

	// the failed tx did not consume the sequence
	qres := myApp.Query(abci.RequestQuery{Path: "/auth", Data: token.addr})
	assert.Equal(t, uint32(0), qres.Code)
	assert.Equal(t, 0, len(qres.Value))
	token.seq = 0
	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 2}})
	dres = myApp.DeliverTx(token.signedTx(t, &royalty.ReceiveMsg{
		Sender: "sender", From: "sender", Amount: "10",
	}))
	assert.Equal(t, uint32(0), dres.Code)

	// receiving from an unknown token
	stranger := newAccount(t)
	dres = myApp.DeliverTx(stranger.signedTx(t, &royalty.ReceiveMsg{Amount: "10"}))
	assert.ABCICode(t, royalty.ErrNotRegistered, dres.Code, dres.Log)

	// replayed transaction
	tx := admin.signedTx(t, &royalty.ChangeAdminMsg{Admin: admin.human})
	assert.Equal(t, uint32(0), myApp.DeliverTx(tx).Code)
	dres = myApp.DeliverTx(tx)
	assert.ABCICode(t, sigs.ErrInvalidSequence, dres.Code, dres.Log)

	// unsigned transaction
	var unsigned app.Tx
	assert.Nil(t, unsigned.SetMsg(&royalty.ReceiveMsg{Amount: "10"}))
	raw, err := proto.Marshal(&unsigned)
	assert.Nil(t, err)
	cres := myApp.CheckTx(raw)
	assert.ABCICode(t, errors.ErrUnauthorized, cres.Code, cres.Log)

	// garbage
	cres = myApp.CheckTx([]byte("not a transaction"))
	assert.ABCICode(t, errors.ErrInput, cres.Code, cres.Log)
}

func TestTxMessage(t *testing.T) {
	var tx app.Tx
	_, err := tx.GetMsg()
	assert.IsErr(t, errors.ErrInput, err)

	assert.Nil(t, tx.SetMsg(&royalty.ChangeAdminMsg{Admin: "x"}))
	assert.Nil(t, tx.SetMsg(&royalty.RegisterTokenMsg{Token: "y"}))
	msg, err := tx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, &royalty.RegisterTokenMsg{Token: "y"}, msg)

	tx.ChangeAdminMsg = &royalty.ChangeAdminMsg{Admin: "x"}
	_, err = tx.GetMsg()
	assert.IsErr(t, errors.ErrInput, err)

	assert.IsErr(t, errors.ErrType, tx.SetMsg(&splittest.Msg{RoutePath: "test"}))
}

func TestGenInitOptions(t *testing.T) {
	admin := newAccount(t)
	token := newAccount(t)

	_, err := app.GenInitOptions([]string{admin.human})
	assert.IsErr(t, errors.ErrInput, err)
	_, err = app.GenInitOptions([]string{"cosmos1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnrk363e", token.human, "cb"})
	assert.IsErr(t, errors.ErrInput, err)

	raw, err := app.GenInitOptions([]string{admin.human, token.human, "cb"})
	assert.Nil(t, err)
	var opts splitter.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))
	var params royalty.InitParams
	assert.Nil(t, opts.ReadOptions("royalty", &params))
	assert.Equal(t, admin.human, params.Admin)
	assert.Equal(t, "cb", params.TokenCallback)
	assert.Equal(t, 1, len(params.Distribution.Royalties))
}
