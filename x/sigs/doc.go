/*
Package sigs provides basic authentication
middleware to verify the ed25519 signatures on the transaction,
and maintain nonces for replay protection.

The first signer of a transaction becomes the authenticated caller that
handlers read with splitter.GetSigner.
*/
package sigs
