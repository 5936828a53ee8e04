package liquid

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/eventlog"
	"github.com/iov-one/liquid/gconf"
	"github.com/iov-one/liquid/liquidtest"
	"github.com/iov-one/liquid/store"
	"github.com/iov-one/liquid/x/cash"
	"github.com/iov-one/liquid/x/custody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routes map[string]liquid.Handler

func (r routes) Handle(path string, h liquid.Handler) { r[path] = h }

type action struct {
	height  int64
	signer  liquid.Condition
	msg     liquid.Msg
	wantErr *errors.Error
}

type fixture struct {
	db      liquid.CacheableKVStore
	auth    *liquidtest.CtxAuth
	cash    cash.BaseController
	custody *custody.Controller
	ctrl    *Controller
	routes  routes
}

func newFixture() *fixture {
	f := &fixture{
		db:     store.MemStore(),
		auth:   &liquidtest.CtxAuth{Key: "auth"},
		cash:   cash.NewController(),
		routes: routes{},
	}
	f.custody = custody.NewController(f.cash)
	f.ctrl = NewController(f.cash, f.custody)
	RegisterRoutes(f.routes, f.auth, f.ctrl)
	custody.RegisterRoutes(f.routes, f.auth, f.custody)
	return f
}

func (f *fixture) deliver(t testing.TB, a action) *liquid.DeliverResult {
	t.Helper()
	height := a.height
	if height == 0 {
		height = 1
	}
	ctx := f.auth.SetConditions(liquidtest.Ctx(height), a.signer)
	cache := f.db.CacheWrap()
	res, err := f.routes[a.msg.Path()].Deliver(ctx, cache, &liquidtest.Tx{Msg: a.msg})
	if a.wantErr != nil {
		require.True(t, a.wantErr.Is(err), "%T: got %+v", a.msg, err)
		cache.Discard()
		return nil
	}
	require.NoError(t, err, "%T", a.msg)
	require.NoError(t, cache.Write())
	return res
}

func (f *fixture) run(t testing.TB, actions ...action) {
	t.Helper()
	for _, a := range actions {
		f.deliver(t, a)
	}
}

func (f *fixture) balance(t testing.TB, id []byte, holder liquid.Condition) uint64 {
	t.Helper()
	amount, err := f.ctrl.BalanceOf(f.db, id, holder.Address())
	require.NoError(t, err)
	return amount
}

func (f *fixture) revenue(t testing.TB, addr liquid.Address, ticker string) uint64 {
	t.Helper()
	coins, err := f.cash.Balance(f.db, addr)
	require.NoError(t, err)
	return coins.AmountOf(ticker)
}

func (f *fixture) token(t testing.TB, id []byte) *Token {
	t.Helper()
	tok, err := f.ctrl.Get(f.db, id)
	require.NoError(t, err)
	return tok
}

func createMsg(admin liquid.Condition, holders ...liquid.Condition) *CreateTokenMsg {
	msg := &CreateTokenMsg{
		Admin:                 admin.Address(),
		Name:                  "Liquid infrastructure",
		Symbol:                "LIQ",
		RewardTickers:         []string{"ETH", "IOV"},
		MinDistributionPeriod: 500,
	}
	for _, h := range holders {
		msg.ApprovedHolders = append(msg.ApprovedHolders, h.Address())
	}
	return msg
}

func TestBasicDistribution(t *testing.T) {
	admin := liquidtest.NewCondition()
	holder := liquidtest.NewCondition()
	operator := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)
	addr := TokenAddress(id)

	f := newFixture()
	res := f.deliver(t, action{signer: admin, msg: createMsg(admin, holder)})
	assert.Equal(t, id, res.Data)
	assert.Equal(t, int64(1), f.token(t, id).LastDistribution)

	f.run(t, action{signer: admin, msg: &MintMsg{TokenID: id, Holder: holder.Address(), Amount: 100}})
	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(1000000, "ETH")))

	// Inside of the minimal period nothing happens.
	f.run(t, action{height: 100, signer: operator, msg: &DistributeMsg{TokenID: id}})
	assert.Equal(t, uint64(0), f.revenue(t, holder.Address(), "ETH"))
	assert.Equal(t, int64(1), f.token(t, id).LastDistribution)
	events, err := eventlog.List(f.db, 0, eventlog.DistributionStarted)
	require.NoError(t, err)
	assert.Empty(t, events)

	f.run(t, action{height: 501, signer: operator, msg: &DistributeMsg{TokenID: id}})
	assert.Equal(t, uint64(1000000), f.revenue(t, holder.Address(), "ETH"))
	assert.Equal(t, uint64(0), f.revenue(t, addr, "ETH"))
	assert.Equal(t, int64(501), f.token(t, id).LastDistribution)

	events, err = eventlog.List(f.db, 0, eventlog.Distribution)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []liquid.Address{holder.Address()}, events[0].Accounts)
	assert.Equal(t, []string{"ETH", "IOV"}, events[0].Tickers)
	assert.Equal(t, []uint64{1000000, 0}, events[0].Amounts)

	// Repeated call is a no-op until the period passes again.
	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(10, "ETH")))
	f.run(t, action{height: 1000, signer: operator, msg: &DistributeMsg{TokenID: id}})
	assert.Equal(t, uint64(10), f.revenue(t, addr, "ETH"))
	assert.Equal(t, int64(501), f.token(t, id).LastDistribution)
}

func TestUnevenSplit(t *testing.T) {
	admin := liquidtest.NewCondition()
	alice := liquidtest.NewCondition()
	bob := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)
	addr := TokenAddress(id)

	f := newFixture()
	f.run(t,
		action{signer: admin, msg: createMsg(admin, alice, bob)},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: alice.Address(), Amount: 1}},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: bob.Address(), Amount: 2}},
	)
	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(10, "ETH")))

	f.run(t, action{height: 501, signer: alice, msg: &DistributeMsg{TokenID: id}})
	assert.Equal(t, uint64(3), f.revenue(t, alice.Address(), "ETH"))
	assert.Equal(t, uint64(6), f.revenue(t, bob.Address(), "ETH"))
	assert.Equal(t, uint64(1), f.revenue(t, addr, "ETH"))

	// The residual rolls forward to the next distribution.
	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(2, "ETH")))
	f.run(t, action{height: 1001, signer: alice, msg: &DistributeMsg{TokenID: id}})
	assert.Equal(t, uint64(4), f.revenue(t, alice.Address(), "ETH"))
	assert.Equal(t, uint64(8), f.revenue(t, bob.Address(), "ETH"))
	assert.Equal(t, uint64(0), f.revenue(t, addr, "ETH"))
}

func TestZeroSupplyDistribution(t *testing.T) {
	admin := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)
	addr := TokenAddress(id)

	f := newFixture()
	f.run(t, action{signer: admin, msg: createMsg(admin)})
	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(10, "ETH")))

	res := f.deliver(t, action{height: 501, signer: admin, msg: &DistributeMsg{TokenID: id}})
	assert.Equal(t, "distribution skipped", res.Log)
	assert.Equal(t, uint64(10), f.revenue(t, addr, "ETH"))
	assert.Equal(t, int64(1), f.token(t, id).LastDistribution)
}

func TestDisapprovedHolder(t *testing.T) {
	admin := liquidtest.NewCondition()
	alice := liquidtest.NewCondition()
	bob := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)
	addr := TokenAddress(id)

	f := newFixture()
	f.run(t,
		action{signer: admin, msg: createMsg(admin, alice, bob)},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: alice.Address(), Amount: 10}},
		action{signer: admin, msg: &DisapproveHolderMsg{TokenID: id, Holder: alice.Address()}},
		// Spending down is allowed.
		action{signer: alice, msg: &TransferMsg{TokenID: id, Source: alice.Address(), Destination: bob.Address(), Amount: 4}},
		// Receiving is not.
		action{signer: bob, msg: &TransferMsg{TokenID: id, Source: bob.Address(), Destination: alice.Address(), Amount: 1}, wantErr: errors.ErrNotApprovedHolder},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: alice.Address(), Amount: 1}, wantErr: errors.ErrNotApprovedHolder},
		action{signer: admin, msg: &DisapproveHolderMsg{TokenID: id, Holder: alice.Address()}, wantErr: errors.ErrNotApprovedHolder},
	)
	assert.Equal(t, uint64(6), f.balance(t, id, alice))
	assert.Equal(t, uint64(4), f.balance(t, id, bob))

	// Disapproved holders are still paid.
	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(100, "IOV")))
	f.run(t, action{height: 600, signer: bob, msg: &DistributeMsg{TokenID: id}})
	assert.Equal(t, uint64(60), f.revenue(t, alice.Address(), "IOV"))
	assert.Equal(t, uint64(40), f.revenue(t, bob.Address(), "IOV"))
}

func TestAdminOnlyOperations(t *testing.T) {
	admin := liquidtest.NewCondition()
	newAdmin := liquidtest.NewCondition()
	stranger := liquidtest.NewCondition()
	holder := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)

	f := newFixture()
	f.run(t,
		action{signer: admin, msg: createMsg(admin)},
		action{signer: stranger, msg: &ApproveHolderMsg{TokenID: id, Holder: holder.Address()}, wantErr: errors.ErrUnauthorized},
		action{signer: admin, msg: &ApproveHolderMsg{TokenID: id, Holder: holder.Address()}},
		action{signer: admin, msg: &ApproveHolderMsg{TokenID: id, Holder: holder.Address()}, wantErr: errors.ErrAlreadyApproved},
		action{signer: stranger, msg: &DisapproveHolderMsg{TokenID: id, Holder: holder.Address()}, wantErr: errors.ErrUnauthorized},
		action{signer: stranger, msg: &MintMsg{TokenID: id, Holder: holder.Address(), Amount: 1}, wantErr: errors.ErrUnauthorized},
		action{signer: holder, msg: &MintMsg{TokenID: id, Holder: holder.Address(), Amount: 1}, wantErr: errors.ErrUnauthorized},
		action{signer: stranger, msg: &AddManagedAccountMsg{TokenID: id, AccountID: liquidtest.SequenceID(1)}, wantErr: errors.ErrUnauthorized},
		action{signer: stranger, msg: &ReleaseManagedAccountMsg{TokenID: id, AccountID: liquidtest.SequenceID(1), Recipient: stranger.Address()}, wantErr: errors.ErrUnauthorized},
		action{signer: stranger, msg: &SetRewardTickersMsg{TokenID: id, Tickers: []string{"BTC"}}, wantErr: errors.ErrUnauthorized},
		action{signer: admin, msg: &SetRewardTickersMsg{TokenID: id, Tickers: []string{"BTC"}}},
		action{signer: stranger, msg: &TransferAdminMsg{TokenID: id, NewAdmin: stranger.Address()}, wantErr: errors.ErrUnauthorized},
		action{signer: admin, msg: &TransferAdminMsg{TokenID: id, NewAdmin: newAdmin.Address()}},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: holder.Address(), Amount: 1}, wantErr: errors.ErrUnauthorized},
		action{signer: newAdmin, msg: &MintMsg{TokenID: id, Holder: holder.Address(), Amount: 1}},
	)

	tok := f.token(t, id)
	assert.Equal(t, newAdmin.Address(), tok.Admin)
	assert.Equal(t, []string{"BTC"}, tok.RewardTickers)
	assert.Equal(t, uint64(1), tok.TotalSupply)

	events, err := eventlog.List(f.db, 0, eventlog.AdminTransferred)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []liquid.Address{admin.Address(), newAdmin.Address()}, events[0].Accounts)
}

func TestManagedAccounts(t *testing.T) {
	admin := liquidtest.NewCondition()
	owner := liquidtest.NewCondition()
	operator := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)
	addr := TokenAddress(id)
	accountID := liquidtest.SequenceID(1)
	accountAddr := custody.AccountAddress(accountID)

	f := newFixture()
	f.run(t,
		action{signer: admin, msg: createMsg(admin)},
		action{signer: owner, msg: &custody.CreateAccountMsg{Owner: owner.Address()}},
		action{signer: owner, msg: &custody.SetThresholdsMsg{AccountID: accountID, Thresholds: []*coin.Coin{coin.NewCoinp(10, "ETH")}}},
		// Custody must be transferred first.
		action{signer: admin, msg: &AddManagedAccountMsg{TokenID: id, AccountID: accountID}, wantErr: errors.ErrNotOwnedByPortfolio},
		action{signer: owner, msg: &custody.TransferOwnershipMsg{AccountID: accountID, NewOwner: addr}},
		action{signer: admin, msg: &AddManagedAccountMsg{TokenID: id, AccountID: accountID}},
		action{signer: admin, msg: &AddManagedAccountMsg{TokenID: id, AccountID: accountID}, wantErr: errors.ErrAlreadyManaged},
		// Nobody can impersonate the token.
		action{signer: owner, msg: &custody.WithdrawMsg{AccountID: accountID, Tickers: []string{"ETH"}, Recipient: owner.Address()}, wantErr: errors.ErrUnauthorized},
	)
	require.NoError(t, f.cash.IssueCoins(f.db, accountAddr, coin.NewCoin(100, "ETH")))
	require.NoError(t, f.cash.IssueCoins(f.db, accountAddr, coin.NewCoin(7, "IOV")))

	res := f.deliver(t, action{signer: operator, msg: &WithdrawFromAllMsg{TokenID: id}})
	assert.Equal(t, "90 ETH, 7 IOV", res.Log)
	assert.Equal(t, uint64(90), f.revenue(t, addr, "ETH"))
	assert.Equal(t, uint64(7), f.revenue(t, addr, "IOV"))
	assert.Equal(t, uint64(10), f.revenue(t, accountAddr, "ETH"))

	finished, err := eventlog.List(f.db, 0, eventlog.WithdrawalFinished)
	require.NoError(t, err)
	require.Len(t, finished, 1)
	assert.Equal(t, []uint64{90, 7}, finished[0].Amounts)

	f.run(t,
		action{signer: admin, msg: &ReleaseManagedAccountMsg{TokenID: id, AccountID: accountID, Recipient: owner.Address()}},
		action{signer: admin, msg: &ReleaseManagedAccountMsg{TokenID: id, AccountID: accountID, Recipient: owner.Address()}, wantErr: errors.ErrNotManaged},
		// Re-adding before custody is transferred back fails.
		action{signer: admin, msg: &AddManagedAccountMsg{TokenID: id, AccountID: accountID}, wantErr: errors.ErrNotOwnedByPortfolio},
		action{signer: owner, msg: &custody.TransferOwnershipMsg{AccountID: accountID, NewOwner: addr}},
		action{signer: admin, msg: &AddManagedAccountMsg{TokenID: id, AccountID: accountID}},
	)
	acc, err := f.custody.Get(f.db, accountID)
	require.NoError(t, err)
	assert.Equal(t, addr, acc.Owner)

	managed, err := f.ctrl.Portfolio().IsManaged(f.db, id, accountID)
	require.NoError(t, err)
	assert.True(t, managed)
}

func TestWithdrawWithoutRewardTickers(t *testing.T) {
	admin := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)

	f := newFixture()
	msg := createMsg(admin)
	msg.RewardTickers = nil
	f.run(t,
		action{signer: admin, msg: msg},
		action{signer: admin, msg: &WithdrawFromAllMsg{TokenID: id}},
	)
	events, err := eventlog.List(f.db, 0, eventlog.WithdrawalStarted)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestResourceBounds(t *testing.T) {
	admin := liquidtest.NewCondition()
	a := liquidtest.NewCondition()
	b := liquidtest.NewCondition()
	c := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)

	f := newFixture()
	require.NoError(t, gconf.Save(f.db, confPkg, &Configuration{
		MaxHolders:         2,
		MaxManagedAccounts: 1,
		MaxRewardTickers:   2,
	}))

	tooMany := createMsg(admin)
	tooMany.RewardTickers = []string{"ETH", "IOV", "BTC"}
	f.run(t,
		action{signer: admin, msg: tooMany, wantErr: errors.ErrResourceExhausted},
		action{signer: admin, msg: createMsg(admin, a, b, c)},
		action{signer: admin, msg: &SetRewardTickersMsg{TokenID: id, Tickers: []string{"ETH", "IOV", "BTC"}}, wantErr: errors.ErrResourceExhausted},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: a.Address(), Amount: 1}},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: b.Address(), Amount: 1}},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: c.Address(), Amount: 1}, wantErr: errors.ErrResourceExhausted},
		action{signer: a, msg: &TransferMsg{TokenID: id, Source: a.Address(), Destination: c.Address(), Amount: 1}},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: a.Address(), Amount: 1}, wantErr: errors.ErrResourceExhausted},
		// A holder that spent all its units frees its slot.
		action{signer: b, msg: &BurnMsg{TokenID: id, Holder: b.Address(), Amount: 1}},
		action{signer: c, msg: &BurnMsg{TokenID: id, Holder: c.Address(), Amount: 1}},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: a.Address(), Amount: 1}},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: b.Address(), Amount: 1}},
	)
	assert.Equal(t, uint64(2), f.token(t, id).Holders)
	assert.Equal(t, uint64(2), f.token(t, id).TotalSupply)
}

func TestHoldersLeaveAndReturn(t *testing.T) {
	admin := liquidtest.NewCondition()
	a := liquidtest.NewCondition()
	b := liquidtest.NewCondition()
	c := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)

	f := newFixture()
	require.NoError(t, gconf.Save(f.db, confPkg, &Configuration{
		MaxHolders:         2,
		MaxManagedAccounts: 1,
		MaxRewardTickers:   2,
	}))
	f.run(t,
		action{signer: admin, msg: createMsg(admin, a, b, c)},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: a.Address(), Amount: 1}},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: b.Address(), Amount: 1}},
		action{signer: a, msg: &BurnMsg{TokenID: id, Holder: a.Address(), Amount: 1}},
		action{signer: b, msg: &BurnMsg{TokenID: id, Holder: b.Address(), Amount: 1}},
	)
	tok := f.token(t, id)
	assert.Equal(t, uint64(0), tok.TotalSupply)
	assert.Equal(t, uint64(0), tok.Holders)
	balances, err := f.ctrl.Holders(f.db, id, 2)
	require.NoError(t, err)
	assert.Empty(t, balances)

	f.run(t,
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: c.Address(), Amount: 1}},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: a.Address(), Amount: 1}},
	)
	balances, err = f.ctrl.Holders(f.db, id, 2)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	// The returning holder is placed after the new one.
	assert.Equal(t, c.Address(), balances[0].Holder)
	assert.Equal(t, a.Address(), balances[1].Holder)
	assert.True(t, balances[0].Position < balances[1].Position)
}

func TestAllowances(t *testing.T) {
	admin := liquidtest.NewCondition()
	owner := liquidtest.NewCondition()
	spender := liquidtest.NewCondition()
	dest := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)

	f := newFixture()
	f.run(t,
		action{signer: admin, msg: createMsg(admin, owner, dest)},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: owner.Address(), Amount: 10}},
		action{signer: spender, msg: &ApproveMsg{TokenID: id, Owner: owner.Address(), Spender: spender.Address(), Amount: 5}, wantErr: errors.ErrUnauthorized},
		action{signer: owner, msg: &ApproveMsg{TokenID: id, Owner: owner.Address(), Spender: spender.Address(), Amount: 5}},
		action{signer: owner, msg: &TransferFromMsg{TokenID: id, Owner: owner.Address(), Spender: spender.Address(), Destination: dest.Address(), Amount: 3}, wantErr: errors.ErrUnauthorized},
		action{signer: spender, msg: &TransferFromMsg{TokenID: id, Owner: owner.Address(), Spender: spender.Address(), Destination: dest.Address(), Amount: 3}},
		action{signer: spender, msg: &TransferFromMsg{TokenID: id, Owner: owner.Address(), Spender: spender.Address(), Destination: dest.Address(), Amount: 3}, wantErr: errors.ErrInsufficientAmount},
		// The destination must be approved.
		action{signer: spender, msg: &TransferFromMsg{TokenID: id, Owner: owner.Address(), Spender: spender.Address(), Destination: spender.Address(), Amount: 1}, wantErr: errors.ErrNotApprovedHolder},
		action{signer: spender, msg: &BurnFromMsg{TokenID: id, Owner: owner.Address(), Spender: spender.Address(), Amount: 2}},
	)

	assert.Equal(t, uint64(5), f.balance(t, id, owner))
	assert.Equal(t, uint64(3), f.balance(t, id, dest))
	assert.Equal(t, uint64(8), f.token(t, id).TotalSupply)
	allowed, err := f.ctrl.Allowance(f.db, id, owner.Address(), spender.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), allowed)
}

func TestBurn(t *testing.T) {
	admin := liquidtest.NewCondition()
	alice := liquidtest.NewCondition()
	bob := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)
	addr := TokenAddress(id)

	f := newFixture()
	f.run(t,
		action{signer: admin, msg: createMsg(admin, alice, bob)},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: alice.Address(), Amount: 5}},
		action{signer: bob, msg: &BurnMsg{TokenID: id, Holder: alice.Address(), Amount: 1}, wantErr: errors.ErrUnauthorized},
		action{signer: alice, msg: &BurnMsg{TokenID: id, Holder: alice.Address(), Amount: 6}, wantErr: errors.ErrInsufficientAmount},
		action{signer: alice, msg: &BurnMsg{TokenID: id, Holder: alice.Address(), Amount: 2}},
	)
	assert.Equal(t, uint64(3), f.balance(t, id, alice))
	assert.Equal(t, uint64(3), f.token(t, id).TotalSupply)

	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(30, "ETH")))
	f.run(t, action{height: 600, signer: admin, msg: &MintAndDistributeMsg{TokenID: id, Holder: bob.Address(), Amount: 3}})
	assert.Equal(t, uint64(15), f.revenue(t, alice.Address(), "ETH"))
	assert.Equal(t, uint64(15), f.revenue(t, bob.Address(), "ETH"))

	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(20, "ETH")))
	f.run(t, action{height: 1100, signer: alice, msg: &BurnAndDistributeMsg{TokenID: id, Holder: alice.Address(), Amount: 1}})
	assert.Equal(t, uint64(23), f.revenue(t, alice.Address(), "ETH"))
	assert.Equal(t, uint64(27), f.revenue(t, bob.Address(), "ETH"))
	assert.Equal(t, uint64(0), f.revenue(t, addr, "ETH"))
}

func TestSumOfBalancesIsTotalSupply(t *testing.T) {
	admin := liquidtest.NewCondition()
	holders := []liquid.Condition{
		liquidtest.NewCondition(),
		liquidtest.NewCondition(),
		liquidtest.NewCondition(),
	}
	id := liquidtest.SequenceID(1)

	f := newFixture()
	f.run(t, action{signer: admin, msg: createMsg(admin, holders...)})
	for i, h := range holders {
		f.run(t, action{signer: admin, msg: &MintMsg{TokenID: id, Holder: h.Address(), Amount: uint64(10 * (i + 1))}})
	}
	f.run(t,
		action{signer: holders[2], msg: &TransferMsg{TokenID: id, Source: holders[2].Address(), Destination: holders[0].Address(), Amount: 30}},
		action{signer: holders[1], msg: &BurnMsg{TokenID: id, Holder: holders[1].Address(), Amount: 5}},
	)

	balances, err := f.ctrl.Holders(f.db, id, 0)
	require.NoError(t, err)
	var sum uint64
	for _, b := range balances {
		sum += b.Amount
	}
	assert.Equal(t, f.token(t, id).TotalSupply, sum)
	// The holder with no units left is not listed.
	require.Len(t, balances, 2)
	assert.Equal(t, uint64(2), f.token(t, id).Holders)
	assert.Equal(t, holders[0].Address(), balances[0].Holder)
	assert.Equal(t, holders[1].Address(), balances[1].Holder)
}

func TestGenesis(t *testing.T) {
	admin := liquidtest.NewCondition()
	holder := liquidtest.NewCondition()
	owner := liquidtest.NewCondition()

	raw, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"liquid": map[string]interface{}{
				"owner":                owner.Address(),
				"max_holders":          10,
				"max_managed_accounts": 5,
				"max_reward_tickers":   3,
			},
		},
		"liquid": []interface{}{
			map[string]interface{}{
				"admin":                   admin.Address(),
				"name":                    "Genesis",
				"symbol":                  "GEN",
				"reward_tickers":          []string{"ETH"},
				"min_distribution_period": 10,
				"approved_holders":        []liquid.Address{holder.Address()},
				"balances": []interface{}{
					map[string]interface{}{"holder": holder.Address(), "amount": 42},
				},
			},
		},
	})
	require.NoError(t, err)
	var opts liquid.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, liquid.GenesisParams{Height: 7}, db))

	cashCtrl := cash.NewController()
	ctrl := NewController(cashCtrl, custody.NewController(cashCtrl))
	id := liquidtest.SequenceID(1)
	tok, err := ctrl.Get(db, id)
	require.NoError(t, err)
	assert.Equal(t, "GEN", tok.Symbol)
	assert.Equal(t, uint64(42), tok.TotalSupply)
	assert.Equal(t, int64(7), tok.LastDistribution)
	assert.Equal(t, TokenAddress(id), tok.Address)

	amount, err := ctrl.BalanceOf(db, id, holder.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), amount)

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), conf.MaxHolders)
	assert.Equal(t, owner.Address(), conf.Owner)
}

func TestUpdateConfiguration(t *testing.T) {
	owner := liquidtest.NewCondition()
	stranger := liquidtest.NewCondition()

	f := newFixture()
	conf := DefaultConfiguration()
	conf.Owner = owner.Address()
	require.NoError(t, gconf.Save(f.db, confPkg, &conf))

	f.run(t,
		action{signer: stranger, msg: &UpdateConfigurationMsg{Patch: &Configuration{MaxHolders: 7}}, wantErr: errors.ErrUnauthorized},
		action{signer: owner, msg: &UpdateConfigurationMsg{Patch: &Configuration{MaxHolders: 7}}},
	)
	got, err := loadConf(f.db)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.MaxHolders)
	assert.Equal(t, conf.MaxManagedAccounts, got.MaxManagedAccounts)
}

func TestCheckOnlyAuthorizes(t *testing.T) {
	admin := liquidtest.NewCondition()
	holder := liquidtest.NewCondition()
	stranger := liquidtest.NewCondition()
	id := liquidtest.SequenceID(1)
	addr := TokenAddress(id)

	f := newFixture()
	f.run(t,
		action{signer: admin, msg: createMsg(admin, holder)},
		action{signer: admin, msg: &MintMsg{TokenID: id, Holder: holder.Address(), Amount: 10}},
	)
	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(100, "ETH")))
	before, err := eventlog.Last(f.db)
	require.NoError(t, err)

	cases := map[string]struct {
		signer  liquid.Condition
		msg     liquid.Msg
		wantErr *errors.Error
	}{
		"admin mints":              {signer: admin, msg: &MintMsg{TokenID: id, Holder: holder.Address(), Amount: 5}},
		"stranger mints":           {signer: stranger, msg: &MintMsg{TokenID: id, Holder: holder.Address(), Amount: 5}, wantErr: errors.ErrUnauthorized},
		"burn above balance":       {signer: holder, msg: &BurnMsg{TokenID: id, Holder: holder.Address(), Amount: 100}},
		"stranger burns":           {signer: stranger, msg: &BurnMsg{TokenID: id, Holder: holder.Address(), Amount: 1}, wantErr: errors.ErrUnauthorized},
		"holder transfers":         {signer: holder, msg: &TransferMsg{TokenID: id, Source: holder.Address(), Destination: admin.Address(), Amount: 1}},
		"stranger sets tickers":    {signer: stranger, msg: &SetRewardTickersMsg{TokenID: id, Tickers: []string{"ETH"}}, wantErr: errors.ErrUnauthorized},
		"anyone distributes":       {signer: stranger, msg: &DistributeMsg{TokenID: id}},
		"anyone withdraws":         {signer: stranger, msg: &WithdrawFromAllMsg{TokenID: id}},
		"distribute unknown token": {signer: stranger, msg: &DistributeMsg{TokenID: liquidtest.SequenceID(9)}, wantErr: errors.ErrNotFound},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := f.auth.SetConditions(liquidtest.Ctx(1000), tc.signer)
			res, err := f.routes[tc.msg.Path()].Check(ctx, f.db, &liquidtest.Tx{Msg: tc.msg})
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, res.Log)
		})
	}

	after, err := eventlog.Last(f.db)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	tok := f.token(t, id)
	assert.Equal(t, uint64(10), tok.TotalSupply)
	assert.Equal(t, int64(1), tok.LastDistribution)
	assert.Equal(t, uint64(10), f.balance(t, id, holder))
	assert.Equal(t, uint64(100), f.revenue(t, addr, "ETH"))
}
