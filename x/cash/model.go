package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the set of coins owned by a single address. Zero amounts are
// never stored.
type Wallet struct {
	Coins []*coin.Coin `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Validate requires all coins to be valid and tickers unique.
func (m *Wallet) Validate() error {
	return coin.Coins(m.Coins).Validate()
}

// NewBucket returns the bucket of wallets, keyed by the owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

func loadWallet(db liquid.ReadOnlyKVStore, b orm.ModelBucket, addr liquid.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}
