/*
Package holders implements the allow list of a distribution token.

Only approved addresses may acquire distribution units. Removing an address
from the list does not touch its balance. Administrator authorization is the
responsibility of the caller.
*/
package holders

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/eventlog"
	"github.com/iov-one/liquid/orm"
)

// Holder marks an address as approved for a token.
type Holder struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Address liquid.Address `protobuf:"bytes,2,opt,name=address,proto3" json:"address,omitempty"`
}

func (m *Holder) Reset()         { *m = Holder{} }
func (m *Holder) String() string { return proto.CompactTextString(m) }
func (*Holder) ProtoMessage()    {}

func (m *Holder) Validate() error {
	if len(m.TokenID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	return errors.Wrap(m.Address.Validate(), "address")
}

// AllowList manages approved holders of all tokens.
type AllowList struct {
	bucket orm.ModelBucket
}

// NewAllowList returns an allow list using the default bucket.
func NewAllowList() AllowList {
	return AllowList{bucket: orm.NewModelBucket("holders", &Holder{})}
}

func key(tokenID []byte, addr liquid.Address) []byte {
	return append(append([]byte{}, tokenID...), addr...)
}

// Approve adds the address to the allow list of the token. source is the
// token address recorded in the event.
func (l AllowList) Approve(ctx liquid.Context, db liquid.KVStore, tokenID []byte, source, addr liquid.Address) error {
	ok, err := l.IsApproved(db, tokenID, addr)
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrapf(errors.ErrAlreadyApproved, "address %s", addr)
	}
	if err := l.bucket.Put(db, key(tokenID, addr), &Holder{TokenID: tokenID, Address: addr}); err != nil {
		return err
	}
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     eventlog.HolderApproved,
		Source:   source,
		Accounts: []liquid.Address{addr},
	})
}

// Disapprove removes the address from the allow list of the token.
// ErrNotApprovedHolder is returned if the address is not on the list.
func (l AllowList) Disapprove(ctx liquid.Context, db liquid.KVStore, tokenID []byte, source, addr liquid.Address) error {
	ok, err := l.IsApproved(db, tokenID, addr)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotApprovedHolder, "address %s", addr)
	}
	if err := l.bucket.Delete(db, key(tokenID, addr)); err != nil {
		return err
	}
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     eventlog.HolderDisapproved,
		Source:   source,
		Accounts: []liquid.Address{addr},
	})
}

// IsApproved returns true if the address may hold units of the token.
func (l AllowList) IsApproved(db liquid.ReadOnlyKVStore, tokenID []byte, addr liquid.Address) (bool, error) {
	if len(addr) == 0 {
		return false, nil
	}
	return l.bucket.Has(db, key(tokenID, addr))
}

// RequireApproved returns ErrNotApprovedHolder unless the address is
// approved.
func (l AllowList) RequireApproved(db liquid.ReadOnlyKVStore, tokenID []byte, addr liquid.Address) error {
	ok, err := l.IsApproved(db, tokenID, addr)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotApprovedHolder, "address %s", addr)
	}
	return nil
}

// RegisterQuery will register the allow list as "/holders". Query by token
// ID prefix to list holders of a token.
func (l AllowList) RegisterQuery(qr liquid.QueryRouter) {
	l.bucket.Register("holders", qr)
}
