/*
Package operator periodically asks a running liquid chain to collect the
revenue of managed accounts and to distribute it to token holders.

Both operations are open to any signer, so the operator only needs a funded
key for its nonce. Jobs run on cron schedules and every submission is
serialized, so nonces are always used in order.
*/
package operator
