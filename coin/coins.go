package coin

import (
	"github.com/iov-one/liquid/errors"
)

// Coins is a set of coins, at most one per currency.
type Coins []*Coin

// Validate requires every coin to be valid and every ticker to be unique.
func (cs Coins) Validate() error {
	seen := make(map[string]struct{}, len(cs))
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if _, ok := seen[c.Ticker]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "ticker %s", c.Ticker)
		}
		seen[c.Ticker] = struct{}{}
	}
	return nil
}

// AmountOf returns the amount of given currency. Zero if not present.
func (cs Coins) AmountOf(ticker string) uint64 {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c.Amount
		}
	}
	return 0
}

// Add returns a copy of the set with given coin added. Coins with zero
// amount are not stored.
func (cs Coins) Add(c Coin) (Coins, error) {
	res := make(Coins, 0, len(cs)+1)
	var found bool
	for _, have := range cs {
		if have.Ticker != c.Ticker {
			cpy := *have
			res = append(res, &cpy)
			continue
		}
		found = true
		sum, err := have.Add(c)
		if err != nil {
			return nil, err
		}
		res = append(res, &sum)
	}
	if !found && !c.IsZero() {
		cpy := c
		res = append(res, &cpy)
	}
	return res, nil
}

// Subtract returns a copy of the set with given coin removed. Fails with
// ErrInsufficientAmount if the set does not hold enough.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	res := make(Coins, 0, len(cs))
	var found bool
	for _, have := range cs {
		if have.Ticker != c.Ticker {
			cpy := *have
			res = append(res, &cpy)
			continue
		}
		found = true
		diff, err := have.Subtract(c)
		if err != nil {
			return nil, err
		}
		if !diff.IsZero() {
			res = append(res, &diff)
		}
	}
	if !found {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	return res, nil
}

// Clone returns a deep copy.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		cpy := *c
		res[i] = &cpy
	}
	return res
}

// ValidateTickers requires every ticker to be a valid currency code and to
// be unique.
func ValidateTickers(tickers []string) error {
	seen := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		if !IsCC(t) {
			return errors.Wrapf(errors.ErrCurrency, "invalid ticker: %q", t)
		}
		if _, ok := seen[t]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "ticker %s", t)
		}
		seen[t] = struct{}{}
	}
	return nil
}
