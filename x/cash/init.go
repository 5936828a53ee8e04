package cash

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/gconf"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use liquid.Address, so address in hex, not base64
type GenesisAccount struct {
	Address liquid.Address `json:"address"`
	Coins   []*coin.Coin   `json:"coins"`
}

// Initializer fulfils the InitStater interface to load data from
// the genesis file
type Initializer struct{}

var _ liquid.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts liquid.Options, params liquid.GenesisParams, kv liquid.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q genesis: %s", optKey, err)
	}
	control := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, c := range acct.Coins {
			if err := control.IssueCoins(kv, acct.Address, *c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}

	switch err := gconf.InitConfig(kv, opts, confPkg, &Configuration{}); {
	case err == nil, errors.ErrNotFound.Is(err):
		// Configuration is optional.
		return nil
	default:
		return err
	}
}
