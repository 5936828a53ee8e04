package custody

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/eventlog"
	"github.com/iov-one/liquid/orm"
	"github.com/iov-one/liquid/x"
	"github.com/iov-one/liquid/x/cash"
)

// Controller executes all custody operations. It is used by the message
// handlers and by other extensions that own custody accounts.
//
// Every mutating method authorizes the signers found in the context using
// given authenticator.
type Controller struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
	cash   cash.Controller
}

// NewController returns a controller that keeps balances in given cash
// controller.
func NewController(cashCtrl cash.Controller) *Controller {
	return &Controller{
		bucket: NewBucket(),
		seq:    newSequence(),
		cash:   cashCtrl,
	}
}

// Get returns the account with given ID or ErrNotFound.
func (c *Controller) Get(db liquid.ReadOnlyKVStore, id []byte) (*Account, error) {
	var a Account
	if err := c.bucket.One(db, id, &a); err != nil {
		return nil, errors.Wrapf(err, "account %X", id)
	}
	return &a, nil
}

// Create registers a new account owned by given address. Anyone can create
// an account.
func (c *Controller) Create(ctx liquid.Context, db liquid.KVStore, owner liquid.Address) ([]byte, *Account, error) {
	id, err := c.seq.NextVal(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "account sequence")
	}
	a := &Account{
		Owner:   owner,
		Address: AccountAddress(id),
	}
	if err := c.bucket.Put(db, id, a); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store account")
	}
	return id, a, nil
}

// SetThresholds replaces all thresholds of the account.
func (c *Controller) SetThresholds(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, thresholds coin.Coins) error {
	a, err := c.authorized(ctx, auth, db, id, x.OwnerOrDelegate)
	if err != nil {
		return err
	}
	a.Thresholds = thresholds.Clone()
	if err := c.bucket.Put(db, id, a); err != nil {
		return errors.Wrap(err, "cannot store account")
	}
	e := &eventlog.Event{
		Kind:     eventlog.ThresholdsChanged,
		Source:   a.Address,
		Accounts: []liquid.Address{a.Owner},
	}
	for _, t := range a.Thresholds {
		e.Tickers = append(e.Tickers, t.Ticker)
		e.Amounts = append(e.Amounts, t.Amount)
	}
	return eventlog.Emit(ctx, db, e)
}

// WithdrawTo moves, for every ticker, the balance above the threshold to
// the recipient. Currencies with nothing to withdraw are reported with a
// zero amount. Withdrawn coins are returned. The account cannot withdraw
// to itself.
func (c *Controller) WithdrawTo(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, tickers []string, recipient liquid.Address) (coin.Coins, error) {
	if err := coin.ValidateTickers(tickers); err != nil {
		return nil, err
	}
	if err := recipient.Validate(); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	a, err := c.authorized(ctx, auth, db, id, x.OwnerOrDelegate)
	if err != nil {
		return nil, err
	}
	if recipient.Equals(a.Address) {
		return nil, errors.Wrap(errors.ErrInput, "recipient is the account itself")
	}
	balance, err := c.cash.Balance(db, a.Address)
	if err != nil {
		return nil, errors.Wrap(err, "balance")
	}

	var withdrawn coin.Coins
	amounts := make([]uint64, len(tickers))
	for i, ticker := range tickers {
		available := coin.NewCoin(balance.AmountOf(ticker), ticker)
		amount := available.Above(a.Threshold(ticker))
		amounts[i] = amount.Amount
		if amount.IsZero() {
			continue
		}
		if err := c.cash.MoveCoins(db, a.Address, recipient, amount); err != nil {
			return nil, errors.Wrapf(err, "withdraw %s", ticker)
		}
		withdrawn = append(withdrawn, &amount)
	}

	err = eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     eventlog.SuccessfulWithdrawal,
		Source:   a.Address,
		Accounts: []liquid.Address{recipient},
		Tickers:  tickers,
		Amounts:  amounts,
	})
	if err != nil {
		return nil, err
	}
	return withdrawn, nil
}

// WithdrawToOwner is WithdrawTo with the current owner as the recipient.
func (c *Controller) WithdrawToOwner(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, tickers []string) (coin.Coins, error) {
	a, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	return c.WithdrawTo(ctx, auth, db, id, tickers, a.Owner)
}

// TransferOwnership sets a new owner. The delegate approval is cleared.
func (c *Controller) TransferOwnership(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, newOwner liquid.Address) error {
	if err := newOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	a, err := c.authorized(ctx, auth, db, id, x.OwnerOrDelegate)
	if err != nil {
		return err
	}
	prev := a.Owner
	a.transfer(newOwner)
	if err := c.bucket.Put(db, id, a); err != nil {
		return errors.Wrap(err, "cannot store account")
	}
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     eventlog.Transfer,
		Source:   a.Address,
		Accounts: []liquid.Address{prev, newOwner},
	})
}

// Approve sets the delegate. Empty delegate removes the approval.
func (c *Controller) Approve(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, delegate liquid.Address) error {
	if len(delegate) != 0 {
		if err := delegate.Validate(); err != nil {
			return errors.Wrap(err, "delegate")
		}
	}
	a, err := c.authorized(ctx, auth, db, id, x.OwnerOnly)
	if err != nil {
		return err
	}
	a.Approved = delegate
	if err := c.bucket.Put(db, id, a); err != nil {
		return errors.Wrap(err, "cannot store account")
	}
	accounts := []liquid.Address{a.Owner}
	if len(delegate) != 0 {
		accounts = append(accounts, delegate)
	}
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     eventlog.Approval,
		Source:   a.Address,
		Accounts: accounts,
	})
}

// Recover requests the external recovery process. State is not modified.
func (c *Controller) Recover(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte) error {
	a, err := c.authorized(ctx, auth, db, id, x.OwnerOnly)
	if err != nil {
		return err
	}
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     eventlog.TryRecover,
		Source:   a.Address,
		Accounts: []liquid.Address{a.Owner},
	})
}

func (c *Controller) authorized(ctx liquid.Context, auth x.Authenticator, db liquid.ReadOnlyKVStore, id []byte, cap x.Capability) (*Account, error) {
	a, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	roles := x.Roles{Owner: a.Owner, Delegate: a.Approved}
	if err := x.Authorize(ctx, auth, roles, cap); err != nil {
		return nil, errors.Wrapf(err, "account %X", id)
	}
	return a, nil
}
