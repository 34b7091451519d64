package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/cmd/splitd/app"
	"github.com/iov-one/splitter/x/royalty"
)

func TestCmdTransactionView(t *testing.T) {
	codec := splitter.NewBech32()
	admin, adminPath := mustCreateKey(t, 1)
	token, _ := mustCreateKey(t, 2)
	useLocalNode(t, admin, token)
	adminHuman := codec.MustHuman(keyAddress(admin))

	tx := run(t, cmdChangeAdmin, nil, "-admin", adminHuman)
	signed := run(t, cmdSignTransaction, tx, "-key", adminPath)
	out := run(t, cmdTransactionView, signed)

	var view struct {
		Path    string `json:"path"`
		Message struct {
			Admin string `json:"admin"`
		} `json:"message"`
		Signers []struct {
			Address  string `json:"address"`
			Sequence int64  `json:"sequence"`
		} `json:"signers"`
	}
	if err := json.Unmarshal(out, &view); err != nil {
		t.Fatalf("cannot decode view: %s\n%s", err, out)
	}
	if view.Path != "royalty/change_admin" {
		t.Fatalf("unexpected path %q", view.Path)
	}
	if view.Message.Admin != adminHuman {
		t.Fatalf("unexpected admin %q", view.Message.Admin)
	}
	if len(view.Signers) != 1 || view.Signers[0].Address != adminHuman || view.Signers[0].Sequence != 0 {
		t.Fatalf("unexpected signers: %+v", view.Signers)
	}

	// an unsigned transaction has no signers
	out = run(t, cmdTransactionView, tx)
	if err := json.Unmarshal(out, &view); err != nil {
		t.Fatalf("cannot decode view: %s", err)
	}
	if len(view.Signers) != 0 {
		t.Fatalf("want no signers, got %+v", view.Signers)
	}
}

func TestTxStream(t *testing.T) {
	var buf bytes.Buffer
	for _, admin := range []string{"first", "second"} {
		var tx app.Tx
		if err := tx.SetMsg(&royalty.ChangeAdminMsg{Admin: admin}); err != nil {
			t.Fatal(err)
		}
		if err := writeTx(&buf, &tx); err != nil {
			t.Fatalf("cannot write: %s", err)
		}
	}

	// every read consumes exactly one transaction
	for _, want := range []string{"first", "second"} {
		tx, err := readTx(&buf)
		if err != nil {
			t.Fatalf("cannot read: %s", err)
		}
		if got := tx.ChangeAdminMsg.Admin; got != want {
			t.Fatalf("want %q, got %q", want, got)
		}
	}
	if _, err := readTx(&buf); err == nil {
		t.Fatal("want an error for an empty stream")
	}

	var size [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(size[:], maxTxSize+1)
	if _, err := readTx(bytes.NewReader(size[:n])); err == nil {
		t.Fatal("want an error for an oversized transaction")
	}
}
