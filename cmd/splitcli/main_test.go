package main

import (
	"bytes"
	"encoding/hex"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/client"
	"github.com/iov-one/splitter/cmd/splitd/app"
	abci "github.com/tendermint/tendermint/abci/types"
	"golang.org/x/crypto/ed25519"
)

const testChainID = "splitcli-test"

// useLocalNode points all commands to an in-process node. The admin and the
// token of the genesis are the given keys.
func useLocalNode(t testing.TB, admin, token ed25519.PrivateKey) {
	t.Helper()
	codec := splitter.NewBech32()
	appState, err := app.GenInitOptions([]string{
		codec.MustHuman(keyAddress(admin)),
		codec.MustHuman(keyAddress(token)),
		"token-callback",
	})
	if err != nil {
		t.Fatalf("cannot create genesis: %s", err)
	}
	myApp, err := app.Application(app.Name, app.Stack(codec), app.TxDecoder, "", false)
	if err != nil {
		t.Fatalf("cannot create application: %s", err)
	}
	myApp.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: appState})

	conn := client.NewLocalConnection(myApp, testChainID)
	prev := newConnection
	newConnection = func(string) client.Conn { return conn }
	t.Cleanup(func() { newConnection = prev })
}

func mustCreateKey(t testing.TB, seed byte) (ed25519.PrivateKey, string) {
	t.Helper()
	priv, err := keygen(bytes.Repeat([]byte{seed}, ed25519.SeedSize), "")
	if err != nil {
		t.Fatalf("cannot create key: %s", err)
	}
	return priv, mustCreateFile(t, bytes.NewReader(priv))
}

func mustCreateFile(t testing.TB, r io.Reader) string {
	t.Helper()

	fd, err := ioutil.TempFile("", filepath.Base(t.Name()))
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	if _, err := io.Copy(fd, r); err != nil {
		t.Fatal(err)
	}
	if err := fd.Close(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(fd.Name()) })
	return fd.Name()
}

func fromHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// run executes the command and returns its output.
func run(t testing.TB, cmd func(io.Reader, io.Writer, []string) error, input []byte, args ...string) []byte {
	t.Helper()
	var output bytes.Buffer
	if err := cmd(bytes.NewReader(input), &output, args); err != nil {
		t.Fatalf("command failed: %s", err)
	}
	return output.Bytes()
}
