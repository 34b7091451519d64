package client

import (
	"sync"

	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/p2p"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Conn is the part of the tendermint rpc client that is used to talk to
// a splitter node. rpcclient.Client implements it.
type Conn interface {
	Status() (*ctypes.ResultStatus, error)
	Genesis() (*ctypes.ResultGenesis, error)
	ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error)
	BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error)
}

var _ Conn = (rpcclient.Client)(nil)

// NewHTTPConnection takes a URL and sends all requests to the remote node
func NewHTTPConnection(remote string) Conn {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// NewLocalConnection drives an in-process application that was already
// initialized with InitChain. Every broadcast transaction is put in its own
// block. This is useful for tests.
func NewLocalConnection(app abci.Application, chainID string) Conn {
	return &localConn{app: app, chainID: chainID}
}

type localConn struct {
	mu      sync.Mutex
	app     abci.Application
	chainID string
	height  int64
}

func (c *localConn) Status() (*ctypes.ResultStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &ctypes.ResultStatus{
		NodeInfo: p2p.DefaultNodeInfo{Network: c.chainID},
		SyncInfo: ctypes.SyncInfo{LatestBlockHeight: c.height},
	}, nil
}

func (c *localConn) Genesis() (*ctypes.ResultGenesis, error) {
	return &ctypes.ResultGenesis{
		Genesis: &tmtypes.GenesisDoc{ChainID: c.chainID},
	}, nil
}

func (c *localConn) ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	return &ctypes.ResultABCIQuery{Response: res}, nil
}

func (c *localConn) BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := &ctypes.ResultBroadcastTxCommit{
		CheckTx: c.app.CheckTx(tx),
		Hash:    tx.Hash(),
	}
	if res.CheckTx.Code != abci.CodeTypeOK {
		return res, nil
	}

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: c.chainID, Height: c.height},
	})
	res.DeliverTx = c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	res.Height = c.height
	return res, nil
}
