package sigs

import (
	"context"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx liquid.Context, signers []liquid.Condition) liquid.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate grants the conditions of all verified signers.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx liquid.Context) []liquid.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]liquid.Condition)
	return val
}

// HasAddress returns true if the given address signed the current Context.
func (a Authenticate) HasAddress(ctx liquid.Context, addr liquid.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
