package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/x/royalty"
)

func TestSignSubmitAndQuery(t *testing.T) {
	codec := splitter.NewBech32()
	admin, adminPath := mustCreateKey(t, 1)
	token, tokenPath := mustCreateKey(t, 2)
	recipient, _ := mustCreateKey(t, 3)
	useLocalNode(t, admin, token)

	adminHuman := codec.MustHuman(keyAddress(admin))
	recipientHuman := codec.MustHuman(keyAddress(recipient))

	// admin splits between itself and the recipient
	tx := run(t, cmdChangeDistribution, nil,
		"-decimals", "2",
		"-royalty", adminHuman+":25",
		"-royalty", recipientHuman+":75",
	)
	signed := run(t, cmdSignTransaction, tx, "-key", adminPath)
	signedTx, err := readTx(bytes.NewReader(signed))
	if err != nil {
		t.Fatalf("cannot read signed transaction: %s", err)
	}
	if n := len(signedTx.Signatures); n != 1 {
		t.Fatalf("want one signature, got %d", n)
	}
	out := run(t, cmdSubmitTransaction, signed)
	if got := strings.TrimSpace(string(out)); got != "[]" {
		t.Fatalf("unexpected instructions: %s", got)
	}

	// token notifies about received funds, signed twice in a row to check
	// the sequence is taken from the node
	for i := 0; i < 2; i++ {
		tx = run(t, cmdReceive, nil, "-sender", "s", "-from", "f", "-amount", "1000")
		out = run(t, cmdSubmitTransaction, run(t, cmdSignTransaction, tx, "-key", tokenPath))

		var ins []*royalty.Instruction
		if err := json.Unmarshal(out, &ins); err != nil {
			t.Fatalf("cannot decode instructions: %s", err)
		}
		if len(ins) != 2 {
			t.Fatalf("want two instructions, got %d", len(ins))
		}
		if ins[0].Transfer.Recipient != adminHuman || ins[0].Transfer.Amount != "250" {
			t.Fatalf("unexpected first transfer: %v", ins[0])
		}
		if ins[1].Transfer.Recipient != recipientHuman || ins[1].Transfer.Amount != "750" {
			t.Fatalf("unexpected second transfer: %v", ins[1])
		}
	}

	out = run(t, cmdQuery, nil, "-path", "/auth", "-address", codec.MustHuman(keyAddress(token)))
	var user struct {
		Sequence int64 `json:"sequence"`
	}
	if err := json.Unmarshal(out, &user); err != nil {
		t.Fatalf("cannot decode user: %s", err)
	}
	if user.Sequence != 2 {
		t.Fatalf("unexpected sequence %d", user.Sequence)
	}

	out = run(t, cmdQuery, nil, "-path", "/config")
	var conf struct {
		Admin string `json:"admin"`
	}
	if err := json.Unmarshal(out, &conf); err != nil {
		t.Fatalf("cannot decode config: %s", err)
	}
	if conf.Admin != adminHuman {
		t.Fatalf("unexpected admin %q", conf.Admin)
	}

	out = run(t, cmdQuery, nil, "-path", "/tokens", "-address", codec.MustHuman(keyAddress(token)))
	if !strings.Contains(string(out), "token-callback") {
		t.Fatalf("unexpected token query result: %s", out)
	}
}

func TestSubmitRejected(t *testing.T) {
	admin, _ := mustCreateKey(t, 1)
	token, tokenPath := mustCreateKey(t, 2)
	useLocalNode(t, admin, token)

	// only the admin can hand over the administration
	tx := run(t, cmdChangeAdmin, nil, "-admin", splitter.NewBech32().MustHuman(keyAddress(token)))
	signed := run(t, cmdSignTransaction, tx, "-key", tokenPath)

	var out bytes.Buffer
	if err := cmdSubmitTransaction(bytes.NewReader(signed), &out, nil); err == nil {
		t.Fatal("want an unauthorized error")
	}

	// the rejected transaction did not use up the sequence
	out.Reset()
	err := cmdQuery(nil, &out, []string{"-path", "/auth", "-address", splitter.NewBech32().MustHuman(keyAddress(token))})
	if err == nil || !strings.Contains(err.Error(), "nothing found") {
		t.Fatalf("want no sequence stored, got %v: %s", err, out.String())
	}
	tx = run(t, cmdReceive, nil, "-sender", "s", "-from", "f", "-amount", "10")
	signed = run(t, cmdSignTransaction, tx, "-key", tokenPath)
	signedTx, err := readTx(bytes.NewReader(signed))
	if err != nil {
		t.Fatalf("cannot read signed transaction: %s", err)
	}
	if seq := signedTx.Signatures[0].Sequence; seq != 0 {
		t.Fatalf("want sequence 0, got %d", seq)
	}
	run(t, cmdSubmitTransaction, signed)
}

func TestQueryUnknownPath(t *testing.T) {
	var out bytes.Buffer
	err := cmdQuery(nil, &out, []string{"-path", "/unknown"})
	if err == nil || !strings.Contains(err.Error(), "/distribution") {
		t.Fatalf("want a list of paths, got %v", err)
	}
}
