/*
Package distribution implements the pro-rata payout of collected revenue.

A pool address accumulates coins of any number of reward currencies. On
request, and not more often than the minimal period allows, every reward
currency balance is split between holders proportionally to their weight:

	share = floor(balance * weight / supply)

Shares are computed with a 128 bit intermediate product, so no amount can
overflow. Whatever cannot be split exactly stays on the pool address and is
included in the next distribution.

Distribution never fails because of a holder. A holder whose share is zero is
still reported in the emitted events.
*/
package distribution
