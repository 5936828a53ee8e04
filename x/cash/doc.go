/*
Package cash implements the currency primitive of the ledger.

Every address may own a wallet holding any number of currencies. Custody
accounts and distribution tokens keep their balances here under their
derived addresses. Coins enter the system through the genesis file or
through an IssueMsg signed by the configured issuer.
*/
package cash
