package liquid

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
)

var (
	_ liquid.Msg = (*CreateTokenMsg)(nil)
	_ liquid.Msg = (*MintMsg)(nil)
	_ liquid.Msg = (*MintAndDistributeMsg)(nil)
	_ liquid.Msg = (*BurnMsg)(nil)
	_ liquid.Msg = (*BurnAndDistributeMsg)(nil)
	_ liquid.Msg = (*BurnFromMsg)(nil)
	_ liquid.Msg = (*TransferMsg)(nil)
	_ liquid.Msg = (*TransferFromMsg)(nil)
	_ liquid.Msg = (*ApproveMsg)(nil)
	_ liquid.Msg = (*ApproveHolderMsg)(nil)
	_ liquid.Msg = (*DisapproveHolderMsg)(nil)
	_ liquid.Msg = (*AddManagedAccountMsg)(nil)
	_ liquid.Msg = (*ReleaseManagedAccountMsg)(nil)
	_ liquid.Msg = (*WithdrawFromAllMsg)(nil)
	_ liquid.Msg = (*DistributeMsg)(nil)
	_ liquid.Msg = (*SetRewardTickersMsg)(nil)
	_ liquid.Msg = (*TransferAdminMsg)(nil)
	_ liquid.Msg = (*UpdateConfigurationMsg)(nil)
)

// CreateTokenMsg creates a new distribution token.
type CreateTokenMsg struct {
	Admin                 liquid.Address   `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin,omitempty"`
	Name                  string           `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Symbol                string           `protobuf:"bytes,3,opt,name=symbol,proto3" json:"symbol,omitempty"`
	RewardTickers         []string         `protobuf:"bytes,4,rep,name=reward_tickers,json=rewardTickers,proto3" json:"reward_tickers,omitempty"`
	MinDistributionPeriod int64            `protobuf:"varint,5,opt,name=min_distribution_period,json=minDistributionPeriod,proto3" json:"min_distribution_period,omitempty"`
	ApprovedHolders       []liquid.Address `protobuf:"bytes,6,rep,name=approved_holders,json=approvedHolders,proto3" json:"approved_holders,omitempty"`
}

func (m *CreateTokenMsg) Reset()         { *m = CreateTokenMsg{} }
func (m *CreateTokenMsg) String() string { return proto.CompactTextString(m) }
func (*CreateTokenMsg) ProtoMessage()    {}
func (CreateTokenMsg) Path() string      { return "liquid/create_token" }

func (m *CreateTokenMsg) Validate() error {
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if err := validateMetadata(m.Name, m.Symbol); err != nil {
		return err
	}
	if err := coin.ValidateTickers(m.RewardTickers); err != nil {
		return errors.Wrap(err, "reward tickers")
	}
	if m.MinDistributionPeriod < 0 {
		return errors.Wrap(errors.ErrInput, "negative min distribution period")
	}
	seen := make(map[string]struct{}, len(m.ApprovedHolders))
	for i, h := range m.ApprovedHolders {
		if err := h.Validate(); err != nil {
			return errors.Wrapf(err, "approved holder %d", i)
		}
		if _, ok := seen[string(h)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "approved holder %s", h)
		}
		seen[string(h)] = struct{}{}
	}
	return nil
}

// MintMsg creates new units for an approved holder.
type MintMsg struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Holder  liquid.Address `protobuf:"bytes,2,opt,name=holder,proto3" json:"holder,omitempty"`
	Amount  uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *MintMsg) Reset()         { *m = MintMsg{} }
func (m *MintMsg) String() string { return proto.CompactTextString(m) }
func (*MintMsg) ProtoMessage()    {}
func (MintMsg) Path() string      { return "liquid/mint" }

func (m *MintMsg) Validate() error {
	return validateAmount(m.TokenID, m.Amount, "holder", m.Holder)
}

// MintAndDistributeMsg mints new units and distributes the collected revenue.
type MintAndDistributeMsg struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Holder  liquid.Address `protobuf:"bytes,2,opt,name=holder,proto3" json:"holder,omitempty"`
	Amount  uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *MintAndDistributeMsg) Reset()         { *m = MintAndDistributeMsg{} }
func (m *MintAndDistributeMsg) String() string { return proto.CompactTextString(m) }
func (*MintAndDistributeMsg) ProtoMessage()    {}
func (MintAndDistributeMsg) Path() string      { return "liquid/mint_and_distribute" }

func (m *MintAndDistributeMsg) Validate() error {
	return validateAmount(m.TokenID, m.Amount, "holder", m.Holder)
}

// BurnMsg destroys units of the signing holder.
type BurnMsg struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Holder  liquid.Address `protobuf:"bytes,2,opt,name=holder,proto3" json:"holder,omitempty"`
	Amount  uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *BurnMsg) Reset()         { *m = BurnMsg{} }
func (m *BurnMsg) String() string { return proto.CompactTextString(m) }
func (*BurnMsg) ProtoMessage()    {}
func (BurnMsg) Path() string      { return "liquid/burn" }

func (m *BurnMsg) Validate() error {
	return validateAmount(m.TokenID, m.Amount, "holder", m.Holder)
}

// BurnAndDistributeMsg burns units and distributes the collected revenue.
type BurnAndDistributeMsg struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Holder  liquid.Address `protobuf:"bytes,2,opt,name=holder,proto3" json:"holder,omitempty"`
	Amount  uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *BurnAndDistributeMsg) Reset()         { *m = BurnAndDistributeMsg{} }
func (m *BurnAndDistributeMsg) String() string { return proto.CompactTextString(m) }
func (*BurnAndDistributeMsg) ProtoMessage()    {}
func (BurnAndDistributeMsg) Path() string      { return "liquid/burn_and_distribute" }

func (m *BurnAndDistributeMsg) Validate() error {
	return validateAmount(m.TokenID, m.Amount, "holder", m.Holder)
}

// BurnFromMsg destroys units of the owner using the spender allowance.
type BurnFromMsg struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Owner   liquid.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Spender liquid.Address `protobuf:"bytes,3,opt,name=spender,proto3" json:"spender,omitempty"`
	Amount  uint64         `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *BurnFromMsg) Reset()         { *m = BurnFromMsg{} }
func (m *BurnFromMsg) String() string { return proto.CompactTextString(m) }
func (*BurnFromMsg) ProtoMessage()    {}
func (BurnFromMsg) Path() string      { return "liquid/burn_from" }

func (m *BurnFromMsg) Validate() error {
	return validateAmount(m.TokenID, m.Amount, "owner", m.Owner, "spender", m.Spender)
}

// TransferMsg moves units to an approved holder.
type TransferMsg struct {
	TokenID     []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Source      liquid.Address `protobuf:"bytes,2,opt,name=source,proto3" json:"source,omitempty"`
	Destination liquid.Address `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64         `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}
func (TransferMsg) Path() string      { return "liquid/transfer" }

func (m *TransferMsg) Validate() error {
	return validateAmount(m.TokenID, m.Amount, "source", m.Source, "destination", m.Destination)
}

// TransferFromMsg moves units of the owner using the spender allowance.
type TransferFromMsg struct {
	TokenID     []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Owner       liquid.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Spender     liquid.Address `protobuf:"bytes,3,opt,name=spender,proto3" json:"spender,omitempty"`
	Destination liquid.Address `protobuf:"bytes,4,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64         `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *TransferFromMsg) Reset()         { *m = TransferFromMsg{} }
func (m *TransferFromMsg) String() string { return proto.CompactTextString(m) }
func (*TransferFromMsg) ProtoMessage()    {}
func (TransferFromMsg) Path() string      { return "liquid/transfer_from" }

func (m *TransferFromMsg) Validate() error {
	return validateAmount(m.TokenID, m.Amount, "owner", m.Owner, "spender", m.Spender, "destination", m.Destination)
}

// ApproveMsg sets the spender allowance. Zero amount revokes it.
type ApproveMsg struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Owner   liquid.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Spender liquid.Address `protobuf:"bytes,3,opt,name=spender,proto3" json:"spender,omitempty"`
	Amount  uint64         `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}
func (ApproveMsg) Path() string      { return "liquid/approve" }

func (m *ApproveMsg) Validate() error {
	return validateAddresses(m.TokenID, "owner", m.Owner, "spender", m.Spender)
}

// ApproveHolderMsg adds an address to the allow list.
type ApproveHolderMsg struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Holder  liquid.Address `protobuf:"bytes,2,opt,name=holder,proto3" json:"holder,omitempty"`
}

func (m *ApproveHolderMsg) Reset()         { *m = ApproveHolderMsg{} }
func (m *ApproveHolderMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveHolderMsg) ProtoMessage()    {}
func (ApproveHolderMsg) Path() string      { return "liquid/approve_holder" }

func (m *ApproveHolderMsg) Validate() error {
	return validateAddresses(m.TokenID, "holder", m.Holder)
}

// DisapproveHolderMsg removes an address from the allow list.
type DisapproveHolderMsg struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Holder  liquid.Address `protobuf:"bytes,2,opt,name=holder,proto3" json:"holder,omitempty"`
}

func (m *DisapproveHolderMsg) Reset()         { *m = DisapproveHolderMsg{} }
func (m *DisapproveHolderMsg) String() string { return proto.CompactTextString(m) }
func (*DisapproveHolderMsg) ProtoMessage()    {}
func (DisapproveHolderMsg) Path() string      { return "liquid/disapprove_holder" }

func (m *DisapproveHolderMsg) Validate() error {
	return validateAddresses(m.TokenID, "holder", m.Holder)
}

// AddManagedAccountMsg registers a custody account owned by the token.
type AddManagedAccountMsg struct {
	TokenID   []byte `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	AccountID []byte `protobuf:"bytes,2,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
}

func (m *AddManagedAccountMsg) Reset()         { *m = AddManagedAccountMsg{} }
func (m *AddManagedAccountMsg) String() string { return proto.CompactTextString(m) }
func (*AddManagedAccountMsg) ProtoMessage()    {}
func (AddManagedAccountMsg) Path() string      { return "liquid/add_managed_account" }

func (m *AddManagedAccountMsg) Validate() error {
	if err := validateID(m.TokenID); err != nil {
		return err
	}
	return validateAccountID(m.AccountID)
}

// ReleaseManagedAccountMsg returns a managed custody account to the recipient.
type ReleaseManagedAccountMsg struct {
	TokenID   []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	AccountID []byte         `protobuf:"bytes,2,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Recipient liquid.Address `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient,omitempty"`
}

func (m *ReleaseManagedAccountMsg) Reset()         { *m = ReleaseManagedAccountMsg{} }
func (m *ReleaseManagedAccountMsg) String() string { return proto.CompactTextString(m) }
func (*ReleaseManagedAccountMsg) ProtoMessage()    {}
func (ReleaseManagedAccountMsg) Path() string      { return "liquid/release_managed_account" }

func (m *ReleaseManagedAccountMsg) Validate() error {
	if err := validateAccountID(m.AccountID); err != nil {
		return err
	}
	return validateAddresses(m.TokenID, "recipient", m.Recipient)
}

// WithdrawFromAllMsg collects the revenue of all managed accounts.
type WithdrawFromAllMsg struct {
	TokenID []byte `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
}

func (m *WithdrawFromAllMsg) Reset()         { *m = WithdrawFromAllMsg{} }
func (m *WithdrawFromAllMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawFromAllMsg) ProtoMessage()    {}
func (WithdrawFromAllMsg) Path() string      { return "liquid/withdraw_from_all" }

func (m *WithdrawFromAllMsg) Validate() error {
	return validateID(m.TokenID)
}

// DistributeMsg pays the collected revenue out to all holders.
type DistributeMsg struct {
	TokenID []byte `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
}

func (m *DistributeMsg) Reset()         { *m = DistributeMsg{} }
func (m *DistributeMsg) String() string { return proto.CompactTextString(m) }
func (*DistributeMsg) ProtoMessage()    {}
func (DistributeMsg) Path() string      { return "liquid/distribute" }

func (m *DistributeMsg) Validate() error {
	return validateID(m.TokenID)
}

// SetRewardTickersMsg replaces the reward currencies.
type SetRewardTickersMsg struct {
	TokenID []byte   `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Tickers []string `protobuf:"bytes,2,rep,name=tickers,proto3" json:"tickers,omitempty"`
}

func (m *SetRewardTickersMsg) Reset()         { *m = SetRewardTickersMsg{} }
func (m *SetRewardTickersMsg) String() string { return proto.CompactTextString(m) }
func (*SetRewardTickersMsg) ProtoMessage()    {}
func (SetRewardTickersMsg) Path() string      { return "liquid/set_reward_tickers" }

func (m *SetRewardTickersMsg) Validate() error {
	if err := validateID(m.TokenID); err != nil {
		return err
	}
	return errors.Wrap(coin.ValidateTickers(m.Tickers), "tickers")
}

// TransferAdminMsg sets a new token administrator.
type TransferAdminMsg struct {
	TokenID  []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	NewAdmin liquid.Address `protobuf:"bytes,2,opt,name=new_admin,json=newAdmin,proto3" json:"new_admin,omitempty"`
}

func (m *TransferAdminMsg) Reset()         { *m = TransferAdminMsg{} }
func (m *TransferAdminMsg) String() string { return proto.CompactTextString(m) }
func (*TransferAdminMsg) ProtoMessage()    {}
func (TransferAdminMsg) Path() string      { return "liquid/transfer_admin" }

func (m *TransferAdminMsg) Validate() error {
	return validateAddresses(m.TokenID, "new admin", m.NewAdmin)
}

// UpdateConfigurationMsg patches the liquid configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}
func (UpdateConfigurationMsg) Path() string      { return "liquid/update_configuration" }

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}

func validateID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "token id: %X", id)
	}
	return nil
}

func validateAccountID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "account id: %X", id)
	}
	return nil
}

// validateAddresses checks the token ID and every named address given as
// name, address pairs.
func validateAddresses(id []byte, named ...interface{}) error {
	if err := validateID(id); err != nil {
		return err
	}
	for i := 0; i+1 < len(named); i += 2 {
		name, _ := named[i].(string)
		addr, _ := named[i+1].(liquid.Address)
		if err := addr.Validate(); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}

func validateAmount(id []byte, amount uint64, named ...interface{}) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	return validateAddresses(id, named...)
}
