package cash

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/orm"
)

// Controller is the functionality needed by other extensions to read and
// move balances.
type Controller interface {
	// Balance returns all coins owned by given address.
	Balance(db liquid.ReadOnlyKVStore, addr liquid.Address) (coin.Coins, error)
	// MoveCoins moves a positive amount from src to dest.
	MoveCoins(db liquid.KVStore, src, dest liquid.Address, amount coin.Coin) error
	// IssueCoins creates new coins in the wallet of dest.
	IssueCoins(db liquid.KVStore, dest liquid.Address, amount coin.Coin) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db liquid.ReadOnlyKVStore, addr liquid.Address) (coin.Coins, error) {
	w, err := loadWallet(db, c.bucket, addr)
	if err != nil {
		return nil, err
	}
	return coin.Coins(w.Coins), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db liquid.KVStore, src, dest liquid.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, err := loadWallet(db, c.bucket, src)
	if err != nil {
		return err
	}
	left, err := coin.Coins(sender.Coins).Subtract(amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", src)
	}
	if err := c.save(db, src, left); err != nil {
		return err
	}

	recipient, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return err
	}
	total, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", dest)
	}
	return c.save(db, dest, total)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db liquid.KVStore, dest liquid.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return err
	}
	total, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", dest)
	}
	return c.save(db, dest, total)
}

func (c BaseController) save(db liquid.KVStore, addr liquid.Address, coins coin.Coins) error {
	if len(coins) == 0 {
		if ok, err := c.bucket.Has(db, addr); err != nil || !ok {
			return err
		}
		return c.bucket.Delete(db, addr)
	}
	return c.bucket.Put(db, addr, &Wallet{Coins: coins})
}
