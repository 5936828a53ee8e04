/*
Package custody implements revenue-producing accounts.

Each account owns a wallet under an address derived from its identifier.
The owner, or a single delegate approved by the owner, can configure per
currency withdrawal thresholds and withdraw the part of the balance above
them. Ownership can be transferred, which always clears the delegate.

A custody account can be owned by a distribution token. In that case the
token acts as the owner through its own derived condition.
*/
package custody
