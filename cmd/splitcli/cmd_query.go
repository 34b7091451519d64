package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/splitter"
	"github.com/iov-one/splitter/client"
	"github.com/iov-one/splitter/x/sigs"
)

// queries maps the supported query paths to the function that turns the raw
// response into a value that can be JSON serialized.
var queries = map[string]struct {
	needAddress bool
	decode      func([]byte) (interface{}, error)
}{
	"/config": {
		decode: rawJSON,
	},
	"/distribution": {
		decode: rawJSON,
	},
	"/tokens": {
		needAddress: true,
		decode: func(raw []byte) (interface{}, error) {
			return map[string]string{"callback": string(raw)}, nil
		},
	},
	"/auth": {
		needAddress: true,
		decode: func(raw []byte) (interface{}, error) {
			var u sigs.UserData
			if err := proto.Unmarshal(raw, &u); err != nil {
				return nil, err
			}
			return &u, nil
		},
	},
}

func rawJSON(raw []byte) (interface{}, error) {
	return json.RawMessage(raw), nil
}

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute a ABCI query and print JSON encoded result.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", tmAddr(),
			"Tendermint node address. You can use SPLITCLI_TM_ADDR environment variable to set it.")
		pathFl = fl.String("path", "", "Path to be queried. Must be one of the supported.")
		addrFl = fl.String("address", "", "Bech32 address, required by /tokens and /auth.")
	)
	fl.Parse(args)

	conf, ok := queries[*pathFl]
	if !ok {
		var paths []string
		for p := range queries {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		return fmt.Errorf("available query paths:\n\t- %s", strings.Join(paths, "\n\t- "))
	}

	var data []byte
	if conf.needAddress {
		addr, err := splitter.NewBech32().Canonical(*addrFl)
		if err != nil {
			return fmt.Errorf("invalid address: %s", err)
		}
		data = addr
	}

	c := client.NewClient(newConnection(*tmAddrFl))
	raw, err := c.Query(context.Background(), *pathFl, data)
	if err != nil {
		return fmt.Errorf("failed to run query: %s", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("nothing found")
	}

	res, err := conf.decode(raw)
	if err != nil {
		return fmt.Errorf("cannot decode result: %s", err)
	}
	pretty, err := json.MarshalIndent(res, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}
