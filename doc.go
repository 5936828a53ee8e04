/*
Package liquid defines the interfaces shared by every extension of the
liquid infrastructure ledger: storage, transactions, handlers, addresses and
the execution context.

A liquid token represents fractional ownership of a portfolio of revenue
producing accounts. Extensions living under x/ implement the custody of those
accounts, the holder allow list, the managed portfolio and the pro-rata
distribution of collected revenue. The app package glues them together into
a Tendermint ABCI application.

Context carries the block height, the chain ID and a logger. For every value
XYZ of type T that the context supports there are two functions:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was already set, so that lower level modules
cannot overwrite the block information.
*/
package liquid
