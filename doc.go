/*
Package splitter defines the interfaces used throughout the royalty splitter
application, such as storage, transactions, handlers and addresses.

The application receives token transfers from registered token contracts and
splits every received amount between the recipients of a distribution table.
Domain logic lives in the x/royalty extension, authentication in x/sigs, and
the ABCI plumbing in the app package.

We pass context through context.Context between app, decorators and
handlers. There should exist two functions for every XYZ of type T that we
want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package splitter
