package client

import (
	"context"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/errors"
	"github.com/iov-one/splitter/x/sigs"
)

// Client is a tendermint client wrapped to provide simple access to a
// splitter node.
type Client struct {
	conn Conn
}

// NewClient wraps a Client around an existing tendermint client connection.
func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// Status returns current height and other (subjective) status info from this node
func (c *Client) Status(ctx context.Context) (*Status, error) {
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "status: %s", err.Error())
	}
	return &Status{
		ChainID:    status.NodeInfo.Network,
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// ChainID returns the chain id from the genesis of the node.
func (c *Client) ChainID(ctx context.Context) (string, error) {
	gen, err := c.conn.Genesis()
	if err != nil {
		return "", errors.Wrapf(errors.ErrNetwork, "genesis: %s", err.Error())
	}
	return gen.Genesis.ChainID, nil
}

// Query runs an application query and returns the raw value. An empty value
// means nothing was found.
func (c *Client) Query(ctx context.Context, path string, data []byte) ([]byte, error) {
	res, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "query: %s", err.Error())
	}
	if res.Response.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Response.Code, res.Response.Log)
	}
	return res.Response.Value, nil
}

// NextSequence returns the sequence that the next signature of the given
// address must use.
func (c *Client) NextSequence(ctx context.Context, addr splitter.Address) (int64, error) {
	raw, err := c.Query(ctx, "/auth", addr)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		// new account starts at 0
		return 0, nil
	}
	var user sigs.UserData
	if err := proto.Unmarshal(raw, &user); err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "user data: %s", err)
	}
	return user.Sequence, nil
}

// SubmitTx broadcasts the transaction and waits until it is included in a
// block. A transaction rejected by either CheckTx or DeliverTx returns the
// error reported by the application.
func (c *Client) SubmitTx(ctx context.Context, tx splitter.Tx) (*CommitResult, error) {
	bz, err := proto.Marshal(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "marshaling: %s", err.Error())
	}
	res, err := c.conn.BroadcastTxCommit(bz)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "submit tx: %s", err.Error())
	}
	// a checktx error didn't make it into mempool and will not make it into block
	if res.CheckTx.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log)
	}
	if res.DeliverTx.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.DeliverTx.Code, res.DeliverTx.Log)
	}
	return &CommitResult{
		ID:     res.Hash,
		Height: res.Height,
		Data:   res.DeliverTx.Data,
		Tags:   res.DeliverTx.Tags,
	}, nil
}
