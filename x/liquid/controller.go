package liquid

import (
	"fmt"
	"sort"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/eventlog"
	"github.com/iov-one/liquid/orm"
	"github.com/iov-one/liquid/x"
	"github.com/iov-one/liquid/x/cash"
	"github.com/iov-one/liquid/x/custody"
	"github.com/iov-one/liquid/x/distribution"
	"github.com/iov-one/liquid/x/holders"
	"github.com/iov-one/liquid/x/portfolio"
)

// Controller executes all token operations.
//
// Methods that require a signature take an authenticator. Withdrawing from
// managed accounts and distributing can be requested by anyone.
type Controller struct {
	tokens     orm.ModelBucket
	balances   orm.ModelBucket
	allowances orm.ModelBucket
	seq        orm.Sequence
	holders    holders.AllowList
	portfolio  *portfolio.Portfolio
	cash       cash.Controller
}

// NewController returns a controller that pays out using given cash
// controller and manages accounts of given custody controller.
func NewController(cashCtrl cash.Controller, custodyCtrl *custody.Controller) *Controller {
	return &Controller{
		tokens:     newTokenBucket(),
		balances:   newBalanceBucket(),
		allowances: newAllowanceBucket(),
		seq:        orm.NewSequence(tokenBucket, "id"),
		holders:    holders.NewAllowList(),
		portfolio:  portfolio.NewPortfolio(custodyCtrl),
		cash:       cashCtrl,
	}
}

// Portfolio returns the portfolio of managed accounts of all tokens.
func (c *Controller) Portfolio() *portfolio.Portfolio {
	return c.portfolio
}

// AllowList returns the holder allow list of all tokens.
func (c *Controller) AllowList() holders.AllowList {
	return c.holders
}

func positions(tokenID []byte) orm.Sequence {
	return orm.NewSequence(balanceBucket, fmt.Sprintf("%X", tokenID))
}

// Get returns the token with given ID or ErrNotFound.
func (c *Controller) Get(db liquid.ReadOnlyKVStore, id []byte) (*Token, error) {
	var t Token
	if err := c.tokens.One(db, id, &t); err != nil {
		return nil, errors.Wrapf(err, "token %X", id)
	}
	return &t, nil
}

// Create registers a new token. The last distribution mark is set to the
// current height. Anyone can create a token.
func (c *Controller) Create(ctx liquid.Context, db liquid.KVStore, msg *CreateTokenMsg) ([]byte, *Token, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if n := uint64(len(msg.RewardTickers)); n > conf.MaxRewardTickers {
		return nil, nil, errors.Wrapf(errors.ErrResourceExhausted, "at most %d reward tickers", conf.MaxRewardTickers)
	}
	height, _ := liquid.GetHeight(ctx)
	id, err := c.seq.NextVal(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "token sequence")
	}
	t := &Token{
		Admin:                 msg.Admin,
		Name:                  msg.Name,
		Symbol:                msg.Symbol,
		RewardTickers:         msg.RewardTickers,
		MinDistributionPeriod: msg.MinDistributionPeriod,
		LastDistribution:      height,
		Address:               TokenAddress(id),
	}
	if err := c.tokens.Put(db, id, t); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store token")
	}
	for _, h := range msg.ApprovedHolders {
		if err := c.holders.Approve(ctx, db, id, t.Address, h); err != nil {
			return nil, nil, errors.Wrap(err, "approved holders")
		}
	}
	return id, t, nil
}

// BalanceOf returns the amount of units held by the address.
func (c *Controller) BalanceOf(db liquid.ReadOnlyKVStore, id []byte, holder liquid.Address) (uint64, error) {
	b, err := c.loadBalance(db, id, holder)
	if err != nil {
		return 0, err
	}
	return b.Amount, nil
}

// Allowance returns the amount that the spender may use on behalf of the
// owner.
func (c *Controller) Allowance(db liquid.ReadOnlyKVStore, id []byte, owner, spender liquid.Address) (uint64, error) {
	var a Allowance
	switch err := c.allowances.One(db, cat(id, owner, spender), &a); {
	case err == nil:
		return a.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Holders returns all positive balances ordered by position.
// ErrResourceExhausted is returned if there are more than limit holders.
// Zero limit means no bound.
func (c *Controller) Holders(db liquid.ReadOnlyKVStore, id []byte, limit uint64) ([]*Balance, error) {
	it, err := c.balances.PrefixScan(db, id)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*Balance
	for {
		var b Balance
		_, err := it.LoadNext(&b)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		if limit != 0 && uint64(len(res)) >= limit {
			return nil, errors.Wrapf(errors.ErrResourceExhausted, "more than %d holders", limit)
		}
		res = append(res, &b)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Position < res[j].Position })
	return res, nil
}

// Mint creates new units for an approved holder. Only the admin can mint.
func (c *Controller) Mint(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, holder liquid.Address, amount uint64) error {
	t, err := c.adminToken(ctx, auth, db, id)
	if err != nil {
		return err
	}
	return c.mint(ctx, db, id, t, holder, amount)
}

func (c *Controller) mint(ctx liquid.Context, db liquid.KVStore, id []byte, t *Token, holder liquid.Address, amount uint64) error {
	if err := c.holders.RequireApproved(db, id, holder); err != nil {
		return err
	}
	supply := t.TotalSupply + amount
	if supply < t.TotalSupply {
		return errors.Wrap(errors.ErrOverflow, "total supply")
	}
	if err := c.credit(db, id, t, holder, amount); err != nil {
		return err
	}
	t.TotalSupply = supply
	if err := c.tokens.Put(db, id, t); err != nil {
		return errors.Wrap(err, "cannot store token")
	}
	return c.emitAmount(ctx, db, eventlog.TokenMint, t, amount, holder)
}

// MintAndDistribute mints new units and then distributes the collected
// revenue. Distribution follows the same rules as Distribute. It returns
// true if the distribution was executed.
func (c *Controller) MintAndDistribute(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, holder liquid.Address, amount uint64) (bool, error) {
	if err := c.Mint(ctx, auth, db, id, holder, amount); err != nil {
		return false, err
	}
	return c.Distribute(ctx, db, id)
}

// Burn destroys units of the holder. The holder must sign.
func (c *Controller) Burn(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, holder liquid.Address, amount uint64) error {
	if err := x.Authorize(ctx, auth, x.Roles{Owner: holder}, x.OwnerOnly); err != nil {
		return err
	}
	return c.burn(ctx, db, id, holder, amount)
}

// BurnAndDistribute burns units and then distributes the collected revenue.
func (c *Controller) BurnAndDistribute(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, holder liquid.Address, amount uint64) (bool, error) {
	if err := c.Burn(ctx, auth, db, id, holder, amount); err != nil {
		return false, err
	}
	return c.Distribute(ctx, db, id)
}

// BurnFrom destroys units of the owner using the allowance given to the
// spender. The spender must sign.
func (c *Controller) BurnFrom(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, owner, spender liquid.Address, amount uint64) error {
	if err := c.spend(ctx, auth, db, id, owner, spender, amount); err != nil {
		return err
	}
	return c.burn(ctx, db, id, owner, amount)
}

func (c *Controller) burn(ctx liquid.Context, db liquid.KVStore, id []byte, holder liquid.Address, amount uint64) error {
	t, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if err := c.debit(db, id, t, holder, amount); err != nil {
		return err
	}
	t.TotalSupply -= amount
	if err := c.tokens.Put(db, id, t); err != nil {
		return errors.Wrap(err, "cannot store token")
	}
	return c.emitAmount(ctx, db, eventlog.TokenBurn, t, amount, holder)
}

// Transfer moves units between two addresses. The source must sign and the
// destination must be an approved holder. The source does not need to be
// approved, so that a disapproved holder can still get rid of its units.
func (c *Controller) Transfer(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, src, dest liquid.Address, amount uint64) error {
	if err := x.Authorize(ctx, auth, x.Roles{Owner: src}, x.OwnerOnly); err != nil {
		return err
	}
	return c.transfer(ctx, db, id, src, dest, amount)
}

// TransferFrom moves units of the owner using the allowance given to the
// spender. The spender must sign.
func (c *Controller) TransferFrom(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, owner, spender, dest liquid.Address, amount uint64) error {
	if err := c.spend(ctx, auth, db, id, owner, spender, amount); err != nil {
		return err
	}
	return c.transfer(ctx, db, id, owner, dest, amount)
}

func (c *Controller) transfer(ctx liquid.Context, db liquid.KVStore, id []byte, src, dest liquid.Address, amount uint64) error {
	t, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if err := c.holders.RequireApproved(db, id, dest); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := c.debit(db, id, t, src, amount); err != nil {
		return err
	}
	if err := c.credit(db, id, t, dest, amount); err != nil {
		return err
	}
	if err := c.tokens.Put(db, id, t); err != nil {
		return errors.Wrap(err, "cannot store token")
	}
	return c.emitAmount(ctx, db, eventlog.TokenTransfer, t, amount, src, dest)
}

// Approve sets the amount that the spender may use on behalf of the owner.
// The owner must sign. Zero amount removes the allowance.
func (c *Controller) Approve(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, owner, spender liquid.Address, amount uint64) error {
	if err := x.Authorize(ctx, auth, x.Roles{Owner: owner}, x.OwnerOnly); err != nil {
		return err
	}
	t, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if err := c.setAllowance(db, id, owner, spender, amount); err != nil {
		return err
	}
	return c.emitAmount(ctx, db, eventlog.TokenApproval, t, amount, owner, spender)
}

// spend authorizes the spender and decreases its allowance.
func (c *Controller) spend(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, owner, spender liquid.Address, amount uint64) error {
	if err := x.Authorize(ctx, auth, x.Roles{Owner: spender}, x.OwnerOnly); err != nil {
		return err
	}
	allowed, err := c.Allowance(db, id, owner, spender)
	if err != nil {
		return err
	}
	if allowed < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "allowance of %d", allowed)
	}
	return c.setAllowance(db, id, owner, spender, allowed-amount)
}

func (c *Controller) setAllowance(db liquid.KVStore, id []byte, owner, spender liquid.Address, amount uint64) error {
	k := cat(id, owner, spender)
	if amount == 0 {
		switch err := c.allowances.Delete(db, k); {
		case err == nil, errors.ErrNotFound.Is(err):
			return nil
		default:
			return err
		}
	}
	a := &Allowance{TokenID: id, Owner: owner, Spender: spender, Amount: amount}
	if err := c.allowances.Put(db, k, a); err != nil {
		return errors.Wrap(err, "cannot store allowance")
	}
	return nil
}

// ApproveHolder adds the address to the allow list. Admin only.
func (c *Controller) ApproveHolder(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, addr liquid.Address) error {
	t, err := c.adminToken(ctx, auth, db, id)
	if err != nil {
		return err
	}
	return c.holders.Approve(ctx, db, id, t.Address, addr)
}

// DisapproveHolder removes the address from the allow list. Admin only.
// The balance of the address is not modified.
func (c *Controller) DisapproveHolder(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, addr liquid.Address) error {
	t, err := c.adminToken(ctx, auth, db, id)
	if err != nil {
		return err
	}
	return c.holders.Disapprove(ctx, db, id, t.Address, addr)
}

// AddManagedAccount registers a custody account owned by the token
// address. Admin only.
func (c *Controller) AddManagedAccount(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id, accountID []byte) error {
	t, err := c.adminToken(ctx, auth, db, id)
	if err != nil {
		return err
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	return c.portfolio.Register(ctx, db, id, t.Address, accountID, conf.MaxManagedAccounts)
}

// ReleaseManagedAccount returns the custody account to the recipient.
// Admin only.
func (c *Controller) ReleaseManagedAccount(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id, accountID []byte, recipient liquid.Address) error {
	t, err := c.adminToken(ctx, auth, db, id)
	if err != nil {
		return err
	}
	return c.portfolio.Release(withToken(ctx, id), Authenticate{}, db, id, t.Address, accountID, recipient)
}

// WithdrawFromAll withdraws the reward currencies of every managed account
// into the token address. A token without reward tickers has nothing to
// withdraw.
func (c *Controller) WithdrawFromAll(ctx liquid.Context, db liquid.KVStore, id []byte) (coin.Coins, error) {
	t, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if len(t.RewardTickers) == 0 {
		return nil, nil
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return c.portfolio.WithdrawAll(withToken(ctx, id), Authenticate{}, db, id, t.Address, t.RewardTickers, conf.MaxManagedAccounts)
}

// Distribute pays out the revenue collected on the token address to all
// holders. It returns false if the distribution is not due yet or there
// are no units in circulation. In that case nothing is modified.
func (c *Controller) Distribute(ctx liquid.Context, db liquid.KVStore, id []byte) (bool, error) {
	t, err := c.Get(db, id)
	if err != nil {
		return false, err
	}
	height, _ := liquid.GetHeight(ctx)
	if !distribution.Due(height, t.LastDistribution, t.MinDistributionPeriod) {
		return false, nil
	}
	conf, err := loadConf(db)
	if err != nil {
		return false, err
	}
	balances, err := c.Holders(db, id, conf.MaxHolders)
	if err != nil {
		return false, err
	}
	recipients := make([]distribution.Recipient, len(balances))
	for i, b := range balances {
		recipients[i] = distribution.Recipient{Address: b.Holder, Weight: b.Amount}
	}
	executed, err := distribution.Distribute(ctx, db, c.cash, distribution.Pool{
		Address:          t.Address,
		Tickers:          t.RewardTickers,
		Supply:           t.TotalSupply,
		Recipients:       recipients,
		LastDistribution: t.LastDistribution,
		MinPeriod:        t.MinDistributionPeriod,
	})
	if err != nil || !executed {
		return false, err
	}
	t.LastDistribution = height
	if err := c.tokens.Put(db, id, t); err != nil {
		return false, errors.Wrap(err, "cannot store token")
	}
	return true, nil
}

// SetRewardTickers replaces the reward currencies. Admin only.
func (c *Controller) SetRewardTickers(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, tickers []string) error {
	if err := coin.ValidateTickers(tickers); err != nil {
		return err
	}
	t, err := c.adminToken(ctx, auth, db, id)
	if err != nil {
		return err
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if uint64(len(tickers)) > conf.MaxRewardTickers {
		return errors.Wrapf(errors.ErrResourceExhausted, "at most %d reward tickers", conf.MaxRewardTickers)
	}
	t.RewardTickers = tickers
	if err := c.tokens.Put(db, id, t); err != nil {
		return errors.Wrap(err, "cannot store token")
	}
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:    eventlog.RewardTickersChanged,
		Source:  t.Address,
		Tickers: tickers,
	})
}

// TransferAdmin sets a new administrator. Admin only.
func (c *Controller) TransferAdmin(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, id []byte, newAdmin liquid.Address) error {
	if err := newAdmin.Validate(); err != nil {
		return errors.Wrap(err, "new admin")
	}
	t, err := c.adminToken(ctx, auth, db, id)
	if err != nil {
		return err
	}
	prev := t.Admin
	t.Admin = newAdmin
	if err := c.tokens.Put(db, id, t); err != nil {
		return errors.Wrap(err, "cannot store token")
	}
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     eventlog.AdminTransferred,
		Source:   t.Address,
		Accounts: []liquid.Address{prev, newAdmin},
	})
}

func (c *Controller) adminToken(ctx liquid.Context, auth x.Authenticator, db liquid.ReadOnlyKVStore, id []byte) (*Token, error) {
	t, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if err := x.Authorize(ctx, auth, x.Roles{Admin: t.Admin}, x.AdminOnly); err != nil {
		return nil, errors.Wrapf(err, "token %X", id)
	}
	return t, nil
}

func (c *Controller) loadBalance(db liquid.ReadOnlyKVStore, id []byte, holder liquid.Address) (*Balance, error) {
	var b Balance
	switch err := c.balances.One(db, cat(id, holder), &b); {
	case err == nil:
		return &b, nil
	case errors.ErrNotFound.Is(err):
		return &Balance{TokenID: id, Holder: holder}, nil
	default:
		return nil, err
	}
}

// credit adds units to the holder balance. An address without units
// becomes a holder with the next position, unless the holder limit is
// reached. The caller must store the token.
func (c *Controller) credit(db liquid.KVStore, id []byte, t *Token, holder liquid.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	b, err := c.loadBalance(db, id, holder)
	if err != nil {
		return err
	}
	if b.Amount == 0 {
		conf, err := loadConf(db)
		if err != nil {
			return err
		}
		if t.Holders >= conf.MaxHolders {
			return errors.Wrapf(errors.ErrResourceExhausted, "at most %d holders", conf.MaxHolders)
		}
		if b.Position, err = positions(id).NextInt(db); err != nil {
			return err
		}
		t.Holders++
	}
	sum := b.Amount + amount
	if sum < b.Amount {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	b.Amount = sum
	if err := c.balances.Put(db, cat(id, holder), b); err != nil {
		return errors.Wrap(err, "cannot store balance")
	}
	return nil
}

// debit subtracts units from the holder balance. A holder left without
// units is removed. The caller must store the token.
func (c *Controller) debit(db liquid.KVStore, id []byte, t *Token, holder liquid.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	b, err := c.loadBalance(db, id, holder)
	if err != nil {
		return err
	}
	if b.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance of %d", b.Amount)
	}
	b.Amount -= amount
	if b.Amount > 0 {
		if err := c.balances.Put(db, cat(id, holder), b); err != nil {
			return errors.Wrap(err, "cannot store balance")
		}
		return nil
	}
	if err := c.balances.Delete(db, cat(id, holder)); err != nil {
		return errors.Wrap(err, "cannot delete balance")
	}
	t.Holders--
	return nil
}

func (c *Controller) emitAmount(ctx liquid.Context, db liquid.KVStore, kind string, t *Token, amount uint64, accounts ...liquid.Address) error {
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     kind,
		Source:   t.Address,
		Accounts: accounts,
		Tickers:  []string{t.Symbol},
		Amounts:  []uint64{amount},
	})
}
