package custody

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/orm"
)

const bucketName = "custody"

// Account is a single custody record.
type Account struct {
	// Owner has full control over the account.
	Owner liquid.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// Approved is the optional delegate. It is cleared whenever the owner
	// changes.
	Approved liquid.Address `protobuf:"bytes,2,opt,name=approved,proto3" json:"approved,omitempty"`
	// Thresholds is the minimal amount per currency that is never
	// withdrawn.
	Thresholds []*coin.Coin `protobuf:"bytes,3,rep,name=thresholds,proto3" json:"thresholds,omitempty"`
	// Address holds the account balances. It is derived from the
	// account ID.
	Address liquid.Address `protobuf:"bytes,4,opt,name=address,proto3" json:"address,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

func (m *Account) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(m.Approved) != 0 {
		if err := m.Approved.Validate(); err != nil {
			return errors.Wrap(err, "approved")
		}
	}
	if err := coin.Coins(m.Thresholds).Validate(); err != nil {
		return errors.Wrap(err, "thresholds")
	}
	return errors.Wrap(m.Address.Validate(), "address")
}

// Threshold returns the amount of given currency that must stay on the
// account.
func (m *Account) Threshold(ticker string) uint64 {
	return coin.Coins(m.Thresholds).AmountOf(ticker)
}

// transfer changes the owner and drops the delegate approval.
func (m *Account) transfer(newOwner liquid.Address) {
	m.Owner = newOwner
	m.Approved = nil
}

// Condition returns the condition that the account address is derived
// from.
func Condition(id []byte) liquid.Condition {
	return liquid.NewCondition("custody", "account", id)
}

// AccountAddress returns the address holding balances of the account with
// given ID.
func AccountAddress(id []byte) liquid.Address {
	return Condition(id).Address()
}

// NewBucket returns the bucket of accounts keyed by their sequence ID.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Account{})
}

func newSequence() orm.Sequence {
	return orm.NewSequence(bucketName, "id")
}
