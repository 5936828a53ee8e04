package distribution

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/eventlog"
)

// CashController allows to manage coins stored by the accounts without the
// need to directly access the bucket.
// Required functionality is implemented by the x/cash extension.
type CashController interface {
	Balance(liquid.ReadOnlyKVStore, liquid.Address) (coin.Coins, error)
	MoveCoins(liquid.KVStore, liquid.Address, liquid.Address, coin.Coin) error
}

// Recipient is a holder snapshot entry.
type Recipient struct {
	Address liquid.Address
	Weight  uint64
}

// Pool describes a single distribution.
type Pool struct {
	// Address holds the revenue to be distributed.
	Address liquid.Address
	// Tickers lists reward currencies, in the order they are reported.
	Tickers []string
	// Supply must be equal to the sum of all recipient weights.
	Supply uint64
	// Recipients are paid in the given order.
	Recipients []Recipient
	// LastDistribution is the height of the last executed distribution.
	LastDistribution int64
	// MinPeriod is the minimal number of blocks between distributions.
	MinPeriod int64
}

// Due returns true if enough blocks passed since the last distribution.
func Due(height, last, minPeriod int64) bool {
	return height-last >= minPeriod
}

// Distribute pays every recipient its share of each reward currency. It
// returns false if the distribution was skipped, either because it is not
// due yet or because the supply is zero. Skipping emits no event.
func Distribute(ctx liquid.Context, db liquid.KVStore, ctrl CashController, p Pool) (bool, error) {
	height, _ := liquid.GetHeight(ctx)
	if !Due(height, p.LastDistribution, p.MinPeriod) {
		return false, nil
	}
	if p.Supply == 0 {
		return false, nil
	}
	var sum uint64
	for _, r := range p.Recipients {
		sum += r.Weight
		if sum < r.Weight {
			return false, errors.Wrap(errors.ErrOverflow, "recipient weights")
		}
	}
	if sum != p.Supply {
		return false, errors.Wrapf(errors.ErrState, "weights sum to %d, supply is %d", sum, p.Supply)
	}

	balance, err := ctrl.Balance(db, p.Address)
	if err != nil {
		return false, errors.Wrap(err, "cannot acquire pool balance")
	}
	available := make([]uint64, len(p.Tickers))
	for i, t := range p.Tickers {
		available[i] = balance.AmountOf(t)
	}
	err = eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:    eventlog.DistributionStarted,
		Source:  p.Address,
		Tickers: p.Tickers,
		Amounts: available,
	})
	if err != nil {
		return false, err
	}

	// shares[recipient][ticker]
	shares := make([][]uint64, len(p.Recipients))
	for i := range shares {
		shares[i] = make([]uint64, len(p.Tickers))
	}
	paid := make([]uint64, len(p.Tickers))
	for ti, ticker := range p.Tickers {
		if available[ti] == 0 {
			continue
		}
		for ri, r := range p.Recipients {
			share, err := coin.MulDiv(available[ti], r.Weight, p.Supply)
			if err != nil {
				return false, errors.Wrapf(err, "share of %s", r.Address)
			}
			if share == 0 {
				continue
			}
			if err := ctrl.MoveCoins(db, p.Address, r.Address, coin.NewCoin(share, ticker)); err != nil {
				return false, errors.Wrapf(err, "cannot pay %s", r.Address)
			}
			shares[ri][ti] = share
			paid[ti] += share
		}
	}

	for ri, r := range p.Recipients {
		err := eventlog.Emit(ctx, db, &eventlog.Event{
			Kind:     eventlog.Distribution,
			Source:   p.Address,
			Accounts: []liquid.Address{r.Address},
			Tickers:  p.Tickers,
			Amounts:  shares[ri],
		})
		if err != nil {
			return false, err
		}
	}
	err = eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:    eventlog.DistributionFinished,
		Source:  p.Address,
		Tickers: p.Tickers,
		Amounts: paid,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
