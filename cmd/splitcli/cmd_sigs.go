package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/splitter/client"
	"github.com/iov-one/splitter/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

The chain id and the sequence of the signer are fetched from the node.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", tmAddr(),
			"Tendermint node address. You can use SPLITCLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", privKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use SPLITCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}

	tx, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	ctx := context.Background()
	c := client.NewClient(newConnection(*tmAddrFl))
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("cannot fetch chain id: %s", err)
	}
	seq, err := c.NextSequence(ctx, keyAddress(key))
	if err != nil {
		return fmt.Errorf("cannot get the next sequence number: %s", err)
	}

	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	return writeTx(output, tx)
}
