package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/splitter/client"
	"github.com/iov-one/splitter/x/royalty"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it.

When the transaction is included in a block, all outbound instructions it
produced are written out as JSON.

Make sure to sign the transaction before submitting it.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", tmAddr(),
			"Tendermint node address. You can use SPLITCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	c := client.NewClient(newConnection(*tmAddrFl))
	res, err := c.SubmitTx(context.Background(), tx)
	if err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}

	ins, err := royalty.DecodeInstructions(res.Data)
	if err != nil {
		return fmt.Errorf("cannot decode instructions: %s", err)
	}
	if ins == nil {
		ins = []*royalty.Instruction{}
	}
	pretty, err := json.MarshalIndent(ins, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}
