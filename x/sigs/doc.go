/*
Package sigs provides basic authentication middleware to verify the
signatures on the transaction, and maintain nonces for replay protection.

Each signature carries the public key of the signer and the current nonce
of that signer. Every successfully verified signature increments the nonce,
so that the same signed transaction cannot be executed twice.
*/
package sigs
