/*
Package client talks to a running splitter node over the tendermint rpc.
*/
package client
