/*
Package liquid implements the distribution token.

A token tracks fractional ownership of a portfolio of custody accounts.
Units can be held only by addresses approved by the token administrator.
Revenue is withdrawn from all managed accounts into the token address and
then distributed to the holders proportionally to their balances.

Every token owns an address derived from its ID. Managed custody accounts
are owned by that address and the token authorizes itself, using the
Authenticate type of this package, when it withdraws or releases them.
*/
package liquid
