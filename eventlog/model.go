package eventlog

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

// Event kinds.
const (
	ThresholdsChanged     = "ThresholdsChanged"
	SuccessfulWithdrawal  = "SuccessfulWithdrawal"
	Transfer              = "Transfer"
	Approval              = "Approval"
	TryRecover            = "TryRecover"
	HolderApproved        = "HolderApproved"
	HolderDisapproved     = "HolderDisapproved"
	AddManagedAccount     = "AddManagedAccount"
	ReleaseManagedAccount = "ReleaseManagedAccount"
	WithdrawalStarted     = "WithdrawalStarted"
	Withdrawal            = "Withdrawal"
	WithdrawalFinished    = "WithdrawalFinished"
	DistributionStarted   = "DistributionStarted"
	Distribution          = "Distribution"
	DistributionFinished  = "DistributionFinished"
	TokenTransfer         = "TokenTransfer"
	TokenApproval         = "TokenApproval"
	TokenMint             = "TokenMint"
	TokenBurn             = "TokenBurn"
	AdminTransferred      = "AdminTransferred"
	RewardTickersChanged  = "RewardTickersChanged"
)

// Event is a single log entry.
type Event struct {
	// Height is the block height at which the event was emitted.
	Height int64  `protobuf:"varint,1,opt,name=height,proto3" json:"height,omitempty"`
	Kind   string `protobuf:"bytes,2,opt,name=kind,proto3" json:"kind,omitempty"`
	// Source is the address of the entity that emitted the event, for
	// example a custody account or a distribution token.
	Source liquid.Address `protobuf:"bytes,3,opt,name=source,proto3" json:"source,omitempty"`
	// Accounts lists addresses involved, in an order specific to the kind.
	Accounts []liquid.Address `protobuf:"bytes,4,rep,name=accounts,proto3" json:"accounts,omitempty"`
	// Tickers and Amounts are of the same length unless Amounts is empty.
	Tickers []string `protobuf:"bytes,5,rep,name=tickers,proto3" json:"tickers,omitempty"`
	Amounts []uint64 `protobuf:"varint,6,rep,packed,name=amounts,proto3" json:"amounts,omitempty"`
	Failed  bool     `protobuf:"varint,7,opt,name=failed,proto3" json:"failed,omitempty"`
	Reason  string   `protobuf:"bytes,8,opt,name=reason,proto3" json:"reason,omitempty"`
}

func (m *Event) Reset()         { *m = Event{} }
func (m *Event) String() string { return proto.CompactTextString(m) }
func (*Event) ProtoMessage()    {}

// Validate ensures the event is complete.
func (m *Event) Validate() error {
	if m.Kind == "" {
		return errors.Wrap(errors.ErrModel, "kind is required")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	for i, a := range m.Accounts {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	if len(m.Amounts) != 0 && len(m.Amounts) != len(m.Tickers) {
		return errors.Wrap(errors.ErrModel, "amounts do not match tickers")
	}
	return nil
}

// AmountOf returns the amount recorded for given ticker.
func (m *Event) AmountOf(ticker string) uint64 {
	for i, t := range m.Tickers {
		if t == ticker && i < len(m.Amounts) {
			return m.Amounts[i]
		}
	}
	return 0
}
