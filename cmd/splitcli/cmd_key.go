package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/x/sigs"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.

The key is derived from the hex encoded seed when given, otherwise from a
random seed. A bip44 derivation path can be used with any seed.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", privKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use SPLITCLI_PRIV_KEY environment variable to set it.")
		seedFl = fl.String("seed", "", "Hex encoded seed. Random if not given.")
		pathFl = fl.String("path", "", `Derivation path, for example "m/44'/234'/0'". No derivation if empty.`)
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	var seed []byte
	if *seedFl != "" {
		b, err := hex.DecodeString(*seedFl)
		if err != nil {
			return fmt.Errorf("cannot decode seed: %s", err)
		}
		seed = b
	} else {
		seed = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			return fmt.Errorf("cannot generate seed: %s", err)
		}
	}

	priv, err := keygen(seed, *pathFl)
	if err != nil {
		return err
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

// keygen returns the private key for the given seed. When a path is given,
// the key is derived for it first.
func keygen(seed []byte, path string) (ed25519.PrivateKey, error) {
	if path != "" {
		k, err := derivation.DeriveForPath(path, seed)
		if err != nil {
			return nil, fmt.Errorf("cannot derive key for %q: %s", path, err)
		}
		seed = k.Key
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed length: %d", len(seed))
	}
	_, priv, err := ed25519.GenerateKey(bytes.NewReader(seed))
	if err != nil {
		return nil, fmt.Errorf("cannot generate ed25519 key: %s", err)
	}
	return priv, nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out a bech32 address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", privKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use SPLITCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	human, err := splitter.NewBech32().Human(keyAddress(key))
	if err != nil {
		return fmt.Errorf("cannot serialize to bech32: %s", err)
	}
	_, err = fmt.Fprintln(output, human)
	return err
}

func decodePrivateKey(filepath string) (ed25519.PrivateKey, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q file: %s", filepath, err)
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(data))
	}
	return ed25519.PrivateKey(data), nil
}

func keyAddress(key ed25519.PrivateKey) splitter.Address {
	return sigs.KeyAddress(key.Public().(ed25519.PublicKey))
}
