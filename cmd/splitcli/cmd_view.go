package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/x/sigs"
	"golang.org/x/crypto/ed25519"
)

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Decode and display a transaction: the message it carries and the addresses
that signed it. Check what operation you are authorizing before signing.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return fmt.Errorf("cannot read message: %s", err)
	}

	type signer struct {
		Address  string `json:"address"`
		Sequence int64  `json:"sequence"`
	}
	view := struct {
		Path    string       `json:"path"`
		Message splitter.Msg `json:"message"`
		Signers []signer     `json:"signers"`
	}{
		Path:    msg.Path(),
		Message: msg,
		Signers: make([]signer, 0, len(tx.Signatures)),
	}
	codec := splitter.NewBech32()
	for _, sig := range tx.Signatures {
		if len(sig.Pubkey) != ed25519.PublicKeySize {
			return fmt.Errorf("invalid public key of %d bytes", len(sig.Pubkey))
		}
		addr, err := codec.Human(sigs.KeyAddress(ed25519.PublicKey(sig.Pubkey)))
		if err != nil {
			return fmt.Errorf("cannot encode signer address: %s", err)
		}
		view.Signers = append(view.Signers, signer{Address: addr, Sequence: sig.Sequence})
	}

	pretty, err := json.MarshalIndent(view, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}
