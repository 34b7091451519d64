package main

import (
	"os"

	"github.com/iov-one/splitter/client"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// newConnection returns a connection to the tendermint node at the given
// address. Tests replace it with an in-process connection.
var newConnection = client.NewHTTPConnection

func tmAddr() string {
	return env("SPLITCLI_TM_ADDR", "http://localhost:26657")
}

func privKeyPath() string {
	return env("SPLITCLI_PRIV_KEY", os.Getenv("HOME")+"/.splitd.priv.key")
}
