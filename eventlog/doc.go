/*
Package eventlog keeps an append-only, ordered log of ledger events.

Every state transition of custody accounts, portfolios and distribution
tokens is recorded as an Event. Events are stored under increasing sequence
keys, so iterating the bucket returns them in emission order. Each event is
also written to the context logger.

Events written by a failed transaction are reverted together with the rest
of its state changes.
*/
package eventlog
