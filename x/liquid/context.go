package liquid

import (
	"context"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/x"
)

type contextKey int

const (
	contextKeyToken contextKey = iota
)

// withToken is private, as only this package may act as a token.
func withToken(ctx liquid.Context, id []byte) liquid.Context {
	return context.WithValue(ctx, contextKeyToken, Condition(id))
}

// Authenticate grants the condition of the token that is currently
// executing an operation.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the token condition set on this context.
func (Authenticate) GetConditions(ctx liquid.Context) []liquid.Condition {
	val, _ := ctx.Value(contextKeyToken).(liquid.Condition)
	if val == nil {
		return nil
	}
	return []liquid.Condition{val}
}

// HasAddress returns true iff this address is in GetConditions
func (a Authenticate) HasAddress(ctx liquid.Context, addr liquid.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
