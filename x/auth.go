package x

import (
	"github.com/iov-one/liquid"
)

// Authenticator exposes who signed the transaction being processed.
// Handlers receive it in their constructor so that the signature scheme
// (x/sigs in liquidd, mocks in tests) stays pluggable.
type Authenticator interface {
	// GetConditions returns every condition satisfied by the
	// transaction.
	GetConditions(liquid.Context) []liquid.Condition
	// HasAddress is true if any satisfied condition maps to given address.
	HasAddress(liquid.Context, liquid.Address) bool
}

// ChainAuth merges several authenticators. A transaction is signed by an
// address if any of them says so.
func ChainAuth(impls ...Authenticator) Authenticator {
	return authChain(impls)
}

type authChain []Authenticator

func (chain authChain) GetConditions(ctx liquid.Context) []liquid.Condition {
	var conds []liquid.Condition
	for _, a := range chain {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (chain authChain) HasAddress(ctx liquid.Context, addr liquid.Address) bool {
	for _, a := range chain {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}
