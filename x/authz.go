package x

import (
	"strings"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

// Capability is a set of roles allowed to execute an operation.
type Capability uint8

const (
	// RoleOwner is the address with full control over an entity.
	RoleOwner Capability = 1 << iota
	// RoleDelegate is the single operator approved by the owner.
	RoleDelegate
	// RoleAdmin is the administrator of a distribution token.
	RoleAdmin
)

// Common capabilities.
const (
	OwnerOnly       = RoleOwner
	OwnerOrDelegate = RoleOwner | RoleDelegate
	AdminOnly       = RoleAdmin
)

func (c Capability) String() string {
	var names []string
	if c&RoleOwner != 0 {
		names = append(names, "owner")
	}
	if c&RoleDelegate != 0 {
		names = append(names, "delegate")
	}
	if c&RoleAdmin != 0 {
		names = append(names, "admin")
	}
	if len(names) == 0 {
		return "nobody"
	}
	return strings.Join(names, " or ")
}

// Roles binds role holders of a single entity. Empty addresses are never
// authorized.
type Roles struct {
	Owner    liquid.Address
	Delegate liquid.Address
	Admin    liquid.Address
}

// Authorize returns nil if the transaction was signed by any holder of a
// role allowed by the capability. Otherwise ErrUnauthorized is returned.
func Authorize(ctx liquid.Context, auth Authenticator, roles Roles, c Capability) error {
	check := []struct {
		role Capability
		addr liquid.Address
	}{
		{RoleOwner, roles.Owner},
		{RoleDelegate, roles.Delegate},
		{RoleAdmin, roles.Admin},
	}
	for _, r := range check {
		if c&r.role == 0 || len(r.addr) == 0 {
			continue
		}
		if auth.HasAddress(ctx, r.addr) {
			return nil
		}
	}
	return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", c)
}
