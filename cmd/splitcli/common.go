package main

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/splitter/cmd/splitd/app"
)

// maxTxSize matches the default mempool limit of a tendermint node. Bigger
// transactions would be rejected anyway.
const maxTxSize = 1 << 20

// writeTx writes the protobuf encoded transaction prefixed with its varint
// encoded length, so that commands can be piped together.
func writeTx(w io.Writer, tx *app.Tx) error {
	raw, err := proto.Marshal(tx)
	if err != nil {
		return err
	}
	if len(raw) > maxTxSize {
		return fmt.Errorf("transaction of %d bytes exceeds %d", len(raw), maxTxSize)
	}
	var size [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(size[:], uint64(len(raw)))
	if _, err := w.Write(size[:n]); err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}

// readTx reads a single transaction written by writeTx. Nothing past that
// transaction is consumed from r.
func readTx(r io.Reader) (*app.Tx, error) {
	size, err := binary.ReadUvarint(byteReader{r})
	if err != nil {
		return nil, fmt.Errorf("cannot read size: %s", err)
	}
	if size > maxTxSize {
		return nil, fmt.Errorf("declared size %d exceeds %d", size, maxTxSize)
	}
	raw := make([]byte, size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	var tx app.Tx
	if err := proto.Unmarshal(raw, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// byteReader reads one byte at a time, so that the length prefix can be
// decoded without buffering the rest of the input.
type byteReader struct {
	io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var c [1]byte
	_, err := io.ReadFull(b.Reader, c[:])
	return c[0], err
}
