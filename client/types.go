package client

import (
	cmn "github.com/tendermint/tendermint/libs/common"
)

// TransactionID is the hash used to identify the transaction
type TransactionID = cmn.HexBytes

// CommitResult is the outcome of a transaction included in a block.
type CommitResult struct {
	ID     TransactionID
	Height int64
	Data   []byte
	Tags   []cmn.KVPair
}

// Status is the current status of the node we connect to.
// Latest block height is a useful info
type Status struct {
	ChainID    string
	Height     int64
	CatchingUp bool
}
