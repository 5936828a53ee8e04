package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
)

const (
	sendTxCost  int64 = 100
	maxMemoSize int   = 128
)

var (
	_ liquid.Msg = (*SendMsg)(nil)
	_ liquid.Msg = (*IssueMsg)(nil)
	_ liquid.Msg = (*UpdateConfigurationMsg)(nil)
)

// SendMsg moves coins between two wallets.
type SendMsg struct {
	Source      liquid.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination liquid.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string         `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if m.Amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrState, "memo too long")
	}
	return nil
}

// IssueMsg creates new coins. Only the configured issuer can sign it.
type IssueMsg struct {
	Destination liquid.Address `protobuf:"bytes,1,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin     `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *IssueMsg) Reset()         { *m = IssueMsg{} }
func (m *IssueMsg) String() string { return proto.CompactTextString(m) }
func (*IssueMsg) ProtoMessage()    {}

func (IssueMsg) Path() string {
	return "cash/issue"
}

func (m *IssueMsg) Validate() error {
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if m.Amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

// UpdateConfigurationMsg patches the cash configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func (*UpdateConfigurationMsg) Path() string {
	return "cash/update_configuration"
}

// Validate will skip any zero fields and validate the set ones
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}
