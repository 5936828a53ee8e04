package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/liquidtest"
	"github.com/iov-one/liquid/x"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	owner := liquidtest.NewCondition()
	delegate := liquidtest.NewCondition()
	admin := liquidtest.NewCondition()
	stranger := liquidtest.NewCondition()

	roles := x.Roles{
		Owner:    owner.Address(),
		Delegate: delegate.Address(),
		Admin:    admin.Address(),
	}

	cases := map[string]struct {
		signer  liquid.Condition
		roles   x.Roles
		cap     x.Capability
		wantErr *errors.Error
	}{
		"owner as owner":             {signer: owner, roles: roles, cap: x.OwnerOnly},
		"delegate as owner only":     {signer: delegate, roles: roles, cap: x.OwnerOnly, wantErr: errors.ErrUnauthorized},
		"delegate as owner/delegate": {signer: delegate, roles: roles, cap: x.OwnerOrDelegate},
		"admin":                      {signer: admin, roles: roles, cap: x.AdminOnly},
		"owner as admin":             {signer: owner, roles: roles, cap: x.AdminOnly, wantErr: errors.ErrUnauthorized},
		"stranger":                   {signer: stranger, roles: roles, cap: x.OwnerOrDelegate | x.AdminOnly, wantErr: errors.ErrUnauthorized},
		"no delegate set":            {signer: stranger, roles: x.Roles{Owner: owner.Address()}, cap: x.OwnerOrDelegate, wantErr: errors.ErrUnauthorized},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &liquidtest.Auth{Signer: tc.signer}
			err := x.Authorize(context.Background(), auth, tc.roles, tc.cap)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			}
		})
	}
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "owner or delegate", x.OwnerOrDelegate.String())
	assert.Equal(t, "admin", x.AdminOnly.String())
	assert.Equal(t, "nobody", x.Capability(0).String())
}

func TestChainAuth(t *testing.T) {
	a := liquidtest.NewCondition()
	b := liquidtest.NewCondition()
	c := liquidtest.NewCondition()

	ctxAuth := &liquidtest.CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), b)
	auth := x.ChainAuth(&liquidtest.Auth{Signer: a}, ctxAuth)

	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, c.Address()))
	assert.Equal(t, []liquid.Condition{a, b}, auth.GetConditions(ctx))
}
