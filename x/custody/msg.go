package custody

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
)

var (
	_ liquid.Msg = (*CreateAccountMsg)(nil)
	_ liquid.Msg = (*SetThresholdsMsg)(nil)
	_ liquid.Msg = (*WithdrawMsg)(nil)
	_ liquid.Msg = (*TransferOwnershipMsg)(nil)
	_ liquid.Msg = (*ApproveMsg)(nil)
	_ liquid.Msg = (*RecoverMsg)(nil)
)

func validateID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "account id: %X", id)
	}
	return nil
}

// CreateAccountMsg registers a new custody account.
type CreateAccountMsg struct {
	Owner liquid.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *CreateAccountMsg) Reset()         { *m = CreateAccountMsg{} }
func (m *CreateAccountMsg) String() string { return proto.CompactTextString(m) }
func (*CreateAccountMsg) ProtoMessage()    {}
func (CreateAccountMsg) Path() string      { return "custody/create" }

func (m *CreateAccountMsg) Validate() error {
	return errors.Wrap(m.Owner.Validate(), "owner")
}

// SetThresholdsMsg replaces all thresholds of an account.
type SetThresholdsMsg struct {
	AccountID  []byte       `protobuf:"bytes,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Thresholds []*coin.Coin `protobuf:"bytes,2,rep,name=thresholds,proto3" json:"thresholds,omitempty"`
}

func (m *SetThresholdsMsg) Reset()         { *m = SetThresholdsMsg{} }
func (m *SetThresholdsMsg) String() string { return proto.CompactTextString(m) }
func (*SetThresholdsMsg) ProtoMessage()    {}
func (SetThresholdsMsg) Path() string      { return "custody/set_thresholds" }

func (m *SetThresholdsMsg) Validate() error {
	if err := validateID(m.AccountID); err != nil {
		return err
	}
	return errors.Wrap(coin.Coins(m.Thresholds).Validate(), "thresholds")
}

// WithdrawMsg withdraws the balance above thresholds. When recipient is
// not set, funds go to the account owner.
type WithdrawMsg struct {
	AccountID []byte         `protobuf:"bytes,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Tickers   []string       `protobuf:"bytes,2,rep,name=tickers,proto3" json:"tickers,omitempty"`
	Recipient liquid.Address `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient,omitempty"`
}

func (m *WithdrawMsg) Reset()         { *m = WithdrawMsg{} }
func (m *WithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawMsg) ProtoMessage()    {}
func (WithdrawMsg) Path() string      { return "custody/withdraw" }

func (m *WithdrawMsg) Validate() error {
	if err := validateID(m.AccountID); err != nil {
		return err
	}
	if len(m.Tickers) == 0 {
		return errors.Wrap(errors.ErrEmpty, "tickers")
	}
	if err := coin.ValidateTickers(m.Tickers); err != nil {
		return err
	}
	if len(m.Recipient) != 0 {
		if err := m.Recipient.Validate(); err != nil {
			return errors.Wrap(err, "recipient")
		}
		if m.Recipient.Equals(AccountAddress(m.AccountID)) {
			return errors.Wrap(errors.ErrInput, "recipient is the account itself")
		}
	}
	return nil
}

// TransferOwnershipMsg sets a new account owner.
type TransferOwnershipMsg struct {
	AccountID []byte         `protobuf:"bytes,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	NewOwner  liquid.Address `protobuf:"bytes,2,opt,name=new_owner,json=newOwner,proto3" json:"new_owner,omitempty"`
}

func (m *TransferOwnershipMsg) Reset()         { *m = TransferOwnershipMsg{} }
func (m *TransferOwnershipMsg) String() string { return proto.CompactTextString(m) }
func (*TransferOwnershipMsg) ProtoMessage()    {}
func (TransferOwnershipMsg) Path() string      { return "custody/transfer" }

func (m *TransferOwnershipMsg) Validate() error {
	if err := validateID(m.AccountID); err != nil {
		return err
	}
	return errors.Wrap(m.NewOwner.Validate(), "new owner")
}

// ApproveMsg sets or clears the account delegate.
type ApproveMsg struct {
	AccountID []byte         `protobuf:"bytes,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Delegate  liquid.Address `protobuf:"bytes,2,opt,name=delegate,proto3" json:"delegate,omitempty"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}
func (ApproveMsg) Path() string      { return "custody/approve" }

func (m *ApproveMsg) Validate() error {
	if err := validateID(m.AccountID); err != nil {
		return err
	}
	if len(m.Delegate) != 0 {
		return errors.Wrap(m.Delegate.Validate(), "delegate")
	}
	return nil
}

// RecoverMsg requests an off-chain recovery of the account.
type RecoverMsg struct {
	AccountID []byte `protobuf:"bytes,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
}

func (m *RecoverMsg) Reset()         { *m = RecoverMsg{} }
func (m *RecoverMsg) String() string { return proto.CompactTextString(m) }
func (*RecoverMsg) ProtoMessage()    {}
func (RecoverMsg) Path() string      { return "custody/recover" }

func (m *RecoverMsg) Validate() error {
	return validateID(m.AccountID)
}
