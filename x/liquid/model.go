package liquid

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/orm"
)

const (
	tokenBucket     = "token"
	balanceBucket   = "balance"
	allowanceBucket = "allowance"
)

var isSymbol = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,15}$`).MatchString

// Token is the distribution token state.
type Token struct {
	// Admin manages holders, accounts and reward currencies.
	Admin  liquid.Address `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin,omitempty"`
	Name   string         `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Symbol string         `protobuf:"bytes,3,opt,name=symbol,proto3" json:"symbol,omitempty"`
	// TotalSupply is always the sum of all balances.
	TotalSupply uint64 `protobuf:"varint,4,opt,name=total_supply,json=totalSupply,proto3" json:"total_supply,omitempty"`
	// RewardTickers are the currencies withdrawn and distributed, in the
	// order they are reported in events.
	RewardTickers []string `protobuf:"bytes,5,rep,name=reward_tickers,json=rewardTickers,proto3" json:"reward_tickers,omitempty"`
	// MinDistributionPeriod is the number of blocks that must pass between
	// two distributions.
	MinDistributionPeriod int64 `protobuf:"varint,6,opt,name=min_distribution_period,json=minDistributionPeriod,proto3" json:"min_distribution_period,omitempty"`
	// LastDistribution is the height of the last executed distribution or
	// the creation height.
	LastDistribution int64 `protobuf:"varint,7,opt,name=last_distribution,json=lastDistribution,proto3" json:"last_distribution,omitempty"`
	// Address owns managed accounts and collects the revenue.
	Address liquid.Address `protobuf:"bytes,8,opt,name=address,proto3" json:"address,omitempty"`
	// Holders is the number of addresses with a positive balance.
	Holders uint64 `protobuf:"varint,9,opt,name=holders,proto3" json:"holders,omitempty"`
}

func (m *Token) Reset()         { *m = Token{} }
func (m *Token) String() string { return proto.CompactTextString(m) }
func (*Token) ProtoMessage()    {}

func (m *Token) Validate() error {
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
		return errors.Wrap(errors.ErrModel, "negative min distribution period")
	}
	if m.LastDistribution < 0 {
		return errors.Wrap(errors.ErrModel, "negative last distribution")
	}
	return errors.Wrap(m.Address.Validate(), "address")
}

func validateMetadata(name, symbol string) error {
	if len(name) == 0 || len(name) > 64 {
		return errors.Wrapf(errors.ErrInput, "name %q", name)
	}
	if !isSymbol(symbol) {
		return errors.Wrapf(errors.ErrInput, "symbol %q", symbol)
	}
	return nil
}

// Balance is the amount of units held by a single address.
type Balance struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Holder  liquid.Address `protobuf:"bytes,2,opt,name=holder,proto3" json:"holder,omitempty"`
	Amount  uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// Position is assigned when the balance becomes positive. It orders
	// holders during a distribution. A holder that leaves and comes back
	// is placed last.
	Position uint64 `protobuf:"varint,4,opt,name=position,proto3" json:"position,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

func (m *Balance) Validate() error {
	if len(m.TokenID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	if err := m.Holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	if m.Position == 0 {
		return errors.Wrap(errors.ErrModel, "position")
	}
	return nil
}

// Allowance is the amount the spender may transfer or burn on behalf of
// the owner.
type Allowance struct {
	TokenID []byte         `protobuf:"bytes,1,opt,name=token_id,json=tokenId,proto3" json:"token_id,omitempty"`
	Owner   liquid.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Spender liquid.Address `protobuf:"bytes,3,opt,name=spender,proto3" json:"spender,omitempty"`
	Amount  uint64         `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Allowance) Reset()         { *m = Allowance{} }
func (m *Allowance) String() string { return proto.CompactTextString(m) }
func (*Allowance) ProtoMessage()    {}

func (m *Allowance) Validate() error {
	if len(m.TokenID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return errors.Wrap(m.Spender.Validate(), "spender")
}

// Condition returns the condition the token address is derived from.
func Condition(id []byte) liquid.Condition {
	return liquid.NewCondition("liquid", "token", id)
}

// TokenAddress returns the address owned by the token with given ID.
func TokenAddress(id []byte) liquid.Address {
	return Condition(id).Address()
}

func cat(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	res := make([]byte, 0, n)
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}

func newTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket(tokenBucket, &Token{})
}

func newBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket(balanceBucket, &Balance{})
}

func newAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket(allowanceBucket, &Allowance{})
}
