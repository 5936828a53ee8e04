package liquid

import (
	"context"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/gconf"
	"github.com/iov-one/liquid/x/cash"
	"github.com/iov-one/liquid/x/custody"
)

const optKey = "liquid"

// GenesisToken declares a token created at chain start. Tokens get
// consecutive IDs in the declaration order.
type GenesisToken struct {
	Admin                 liquid.Address   `json:"admin"`
	Name                  string           `json:"name"`
	Symbol                string           `json:"symbol"`
	RewardTickers         []string         `json:"reward_tickers"`
	MinDistributionPeriod int64            `json:"min_distribution_period"`
	ApprovedHolders       []liquid.Address `json:"approved_holders"`
	Balances              []GenesisBalance `json:"balances"`
}

// GenesisBalance is minted to an approved holder at chain start.
type GenesisBalance struct {
	Holder liquid.Address `json:"holder"`
	Amount uint64         `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ liquid.Initializer = Initializer{}

// FromGenesis stores the configuration and creates all declared tokens.
func (Initializer) FromGenesis(opts liquid.Options, params liquid.GenesisParams, db liquid.KVStore) error {
	switch err := gconf.InitConfig(db, opts, confPkg, &Configuration{}); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return err
	}

	var tokens []GenesisToken
	if err := opts.ReadOptions(optKey, &tokens); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q genesis: %s", optKey, err)
	}
	cashCtrl := cash.NewController()
	ctrl := NewController(cashCtrl, custody.NewController(cashCtrl))
	ctx := liquid.WithHeight(context.Background(), params.Height)
	for i, gt := range tokens {
		msg := &CreateTokenMsg{
			Admin:                 gt.Admin,
			Name:                  gt.Name,
			Symbol:                gt.Symbol,
			RewardTickers:         gt.RewardTickers,
			MinDistributionPeriod: gt.MinDistributionPeriod,
			ApprovedHolders:       gt.ApprovedHolders,
		}
		if err := msg.Validate(); err != nil {
			return errors.Wrapf(err, "token %d", i)
		}
		id, t, err := ctrl.Create(ctx, db, msg)
		if err != nil {
			return errors.Wrapf(err, "token %d", i)
		}
		for _, b := range gt.Balances {
			if err := ctrl.mint(ctx, db, id, t, b.Holder, b.Amount); err != nil {
				return errors.Wrapf(err, "token %d balance %s", i, b.Holder)
			}
		}
	}
	return nil
}
