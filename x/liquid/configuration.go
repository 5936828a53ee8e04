package liquid

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/gconf"
)

const confPkg = "liquid"

// Configuration bounds the iteration done by a single transaction.
type Configuration struct {
	// Owner may update this configuration.
	Owner liquid.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// MaxHolders is the maximal number of addresses holding units of a
	// single token at the same time.
	MaxHolders uint64 `protobuf:"varint,2,opt,name=max_holders,json=maxHolders,proto3" json:"max_holders,omitempty"`
	// MaxManagedAccounts is the maximal portfolio size of a single token.
	MaxManagedAccounts uint64 `protobuf:"varint,3,opt,name=max_managed_accounts,json=maxManagedAccounts,proto3" json:"max_managed_accounts,omitempty"`
	// MaxRewardTickers is the maximal number of reward currencies.
	MaxRewardTickers uint64 `protobuf:"varint,4,opt,name=max_reward_tickers,json=maxRewardTickers,proto3" json:"max_reward_tickers,omitempty"`
}

func (m *Configuration) Reset()                   { *m = Configuration{} }
func (m *Configuration) String() string           { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()              {}
func (m *Configuration) GetOwner() liquid.Address { return m.Owner }

func (m *Configuration) Validate() error {
	if len(m.Owner) != 0 {
		if err := m.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner address")
		}
	}
	if m.MaxHolders == 0 {
		return errors.Wrap(errors.ErrModel, "max holders must be positive")
	}
	if m.MaxManagedAccounts == 0 {
		return errors.Wrap(errors.ErrModel, "max managed accounts must be positive")
	}
	if m.MaxRewardTickers == 0 {
		return errors.Wrap(errors.ErrModel, "max reward tickers must be positive")
	}
	return nil
}

// DefaultConfiguration is used when the genesis does not declare one.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxHolders:         1000,
		MaxManagedAccounts: 100,
		MaxRewardTickers:   16,
	}
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		conf = DefaultConfiguration()
		return &conf, nil
	default:
		return nil, err
	}
}
