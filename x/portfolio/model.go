package portfolio

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid/errors"
)

// Member binds a custody account to the token managing it.
type Member struct {
	TokenID   []byte `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	AccountID []byte `protobuf:"bytes,2,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	// Position orders members of a single token. It only grows, so a
	// re-added account goes to the end.
	Position uint64 `protobuf:"varint,3,opt,name=position,proto3" json:"position,omitempty"`
}

func (m *Member) Reset()         { *m = Member{} }
func (m *Member) String() string { return proto.CompactTextString(m) }
func (*Member) ProtoMessage()    {}

func (m *Member) Validate() error {
	if len(m.TokenID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	if len(m.AccountID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "account id")
	}
	if m.Position == 0 {
		return errors.Wrap(errors.ErrModel, "position")
	}
	return nil
}
