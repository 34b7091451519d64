package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/cmd/splitd/app"
	"github.com/iov-one/splitter/x/royalty"
)

func cmdRegisterToken(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for registering a token contract. Only the admin can
register tokens. Tokens that are not registered cannot be split.
`)
		fl.PrintDefaults()
	}
	var (
		tokenFl    = fl.String("token", "", "Bech32 address of the token contract.")
		callbackFl = fl.String("callback", "", "Callback credential of the token contract.")
	)
	fl.Parse(args)

	return writeMsg(output, &royalty.RegisterTokenMsg{
		Token:    *tokenFl,
		Callback: *callbackFl,
	})
}

func cmdChangeAdmin(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for handing over the administration to another address.
`)
		fl.PrintDefaults()
	}
	var (
		adminFl = fl.String("admin", "", "Bech32 address of the new admin.")
	)
	fl.Parse(args)

	return writeMsg(output, &royalty.ChangeAdminMsg{Admin: *adminFl})
}

func cmdChangeDistribution(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for replacing the distribution table. Every royalty is
given as <recipient>:<rate> and the rates must sum up to 10^decimals.
Without any royalty and with -clear the stored table is removed.

  $ splitcli change-distribution -decimals 2 \
      -royalty split1...:60 \
      -royalty split1...:40
`)
		fl.PrintDefaults()
	}
	var (
		royalties  royaltiesFlag
		decimalsFl = fl.Uint64("decimals", 0, "Number of decimal places of all rates.")
		clearFl    = fl.Bool("clear", false, "Remove the distribution table.")
	)
	fl.Var(&royalties, "royalty", "Recipient share in <recipient>:<rate> format. Can be used multiple times.")
	fl.Parse(args)

	msg := &royalty.ChangeDistributionMsg{}
	switch {
	case *decimalsFl > math.MaxUint32:
		return fmt.Errorf("decimals %d out of range", *decimalsFl)
	case *clearFl && len(royalties) != 0:
		return errors.New("cannot clear and set royalties at the same time")
	case *clearFl:
	case len(royalties) == 0:
		return errors.New("at least one royalty is required")
	default:
		msg.Distribution = &royalty.Distribution{
			DecimalPlaces: uint32(*decimalsFl),
			Royalties:     royalties,
		}
	}
	return writeMsg(output, msg)
}

func cmdReceive(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction notifying about received tokens. It must be signed with
the key of a registered token contract.
`)
		fl.PrintDefaults()
	}
	var (
		senderFl = fl.String("sender", "", "Address that initiated the transfer.")
		fromFl   = fl.String("from", "", "Address whose tokens were transferred.")
		amountFl = fl.String("amount", "", "Received amount as a decimal integer.")
		memoFl   = fl.String("memo", "", "Optional memo.")
	)
	fl.Parse(args)

	msg := &royalty.ReceiveMsg{
		Sender: *senderFl,
		From:   *fromFl,
		Amount: *amountFl,
	}
	if *memoFl != "" {
		msg.Memo = []byte(*memoFl)
	}
	return writeMsg(output, msg)
}

// writeMsg validates the message and writes a transaction carrying it.
func writeMsg(output io.Writer, msg splitter.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	var tx app.Tx
	if err := tx.SetMsg(msg); err != nil {
		return fmt.Errorf("cannot create transaction: %s", err)
	}
	return writeTx(output, &tx)
}
