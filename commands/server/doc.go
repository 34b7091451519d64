/*
Package server contains the commands of the application daemon: writing
the initial application state into a tendermint genesis file, validating
it and running the ABCI server.
*/
package server
