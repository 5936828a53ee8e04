package custody

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
)

const optKey = "custody"

// GenesisAccount declares an account created at chain start. Accounts get
// consecutive IDs in the declaration order.
type GenesisAccount struct {
	Owner      liquid.Address `json:"owner"`
	Approved   liquid.Address `json:"approved"`
	Thresholds []*coin.Coin   `json:"thresholds"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ liquid.Initializer = Initializer{}

// FromGenesis creates all declared accounts.
func (Initializer) FromGenesis(opts liquid.Options, params liquid.GenesisParams, db liquid.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accounts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q genesis: %s", optKey, err)
	}
	bucket := NewBucket()
	seq := newSequence()
	for i, ga := range accounts {
		id, err := seq.NextVal(db)
		if err != nil {
			return err
		}
		a := &Account{
			Owner:      ga.Owner,
			Approved:   ga.Approved,
			Thresholds: ga.Thresholds,
			Address:    AccountAddress(id),
		}
		if err := bucket.Put(db, id, a); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
