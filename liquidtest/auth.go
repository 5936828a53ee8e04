package liquidtest

import (
	"context"
	"fmt"

	"github.com/iov-one/liquid"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer liquid.Condition
	// Signers represents an authentication of multiple signers.
	Signers []liquid.Condition
}

func (a *Auth) GetConditions(liquid.Context) []liquid.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx liquid.Context, addr liquid.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx liquid.Context, permissions ...liquid.Condition) liquid.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx liquid.Context) []liquid.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]liquid.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []liquid.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx liquid.Context, addr liquid.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
