package portfolio

import (
	"testing"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/eventlog"
	"github.com/iov-one/liquid/liquidtest"
	"github.com/iov-one/liquid/store"
	"github.com/iov-one/liquid/x/cash"
	"github.com/iov-one/liquid/x/custody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db        liquid.CacheableKVStore
	cash      cash.BaseController
	custody   *custody.Controller
	portfolio *Portfolio
	owner     liquid.Condition
	token     liquid.Condition
	tokenID   []byte
}

func newFixture(t *testing.T) *fixture {
	cashCtrl := cash.NewController()
	custodyCtrl := custody.NewController(cashCtrl)
	return &fixture{
		db:        store.MemStore(),
		cash:      cashCtrl,
		custody:   custodyCtrl,
		portfolio: NewPortfolio(custodyCtrl),
		owner:     liquidtest.NewCondition(),
		token:     liquidtest.NewCondition(),
		tokenID:   liquidtest.SequenceID(1),
	}
}

// account creates an account with given ETH balance and transfers it to the
// token.
func (f *fixture) account(t *testing.T, eth uint64, transfer bool) []byte {
	t.Helper()
	ctx := liquidtest.Ctx(1)
	auth := &liquidtest.Auth{Signer: f.owner}
	id, acc, err := f.custody.Create(ctx, f.db, f.owner.Address())
	require.NoError(t, err)
	require.NoError(t, f.cash.IssueCoins(f.db, acc.Address, coin.NewCoin(eth, "ETH")))
	if transfer {
		require.NoError(t, f.custody.TransferOwnership(ctx, auth, f.db, id, f.token.Address()))
	}
	return id
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := liquidtest.Ctx(2)
	tokenAddr := f.token.Address()

	notTransferred := f.account(t, 10, false)
	err := f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, notTransferred, 0)
	assert.True(t, errors.ErrNotOwnedByPortfolio.Is(err), "got %+v", err)

	a1 := f.account(t, 10, true)
	a2 := f.account(t, 10, true)
	a3 := f.account(t, 10, true)
	require.NoError(t, f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, a2, 2))
	require.NoError(t, f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, a1, 2))

	err = f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, a1, 2)
	assert.True(t, errors.ErrAlreadyManaged.Is(err), "got %+v", err)

	err = f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, a3, 2)
	assert.True(t, errors.ErrResourceExhausted.Is(err), "got %+v", err)

	members, err := f.portfolio.Members(f.db, f.tokenID, 0)
	require.NoError(t, err)
	require.Len(t, members, 2)
	// Registration order, not account ID order.
	assert.Equal(t, a2, members[0].AccountID)
	assert.Equal(t, a1, members[1].AccountID)

	_, err = f.portfolio.Members(f.db, f.tokenID, 1)
	assert.True(t, errors.ErrResourceExhausted.Is(err), "got %+v", err)

	// Other tokens do not see those members.
	others, err := f.portfolio.Members(f.db, liquidtest.SequenceID(2), 0)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestReleaseThenReadd(t *testing.T) {
	f := newFixture(t)
	ctx := liquidtest.Ctx(2)
	tokenAddr := f.token.Address()
	tokenAuth := &liquidtest.Auth{Signer: f.token}
	recipient := liquidtest.NewCondition()

	id := f.account(t, 10, true)
	require.NoError(t, f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, id, 0))

	// Without the token signature the release fails and nothing changes.
	err := f.portfolio.Release(ctx, &liquidtest.Auth{Signer: recipient}, f.db, f.tokenID, tokenAddr, id, recipient.Address())
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	ok, err := f.portfolio.IsManaged(f.db, f.tokenID, id)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.portfolio.Release(ctx, tokenAuth, f.db, f.tokenID, tokenAddr, id, recipient.Address()))
	acc, err := f.custody.Get(f.db, id)
	require.NoError(t, err)
	assert.Equal(t, recipient.Address(), acc.Owner)

	err = f.portfolio.Release(ctx, tokenAuth, f.db, f.tokenID, tokenAddr, id, recipient.Address())
	assert.True(t, errors.ErrNotManaged.Is(err), "got %+v", err)

	// Re-adding requires the custody to be transferred first.
	err = f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, id, 0)
	assert.True(t, errors.ErrNotOwnedByPortfolio.Is(err), "got %+v", err)

	recipientAuth := &liquidtest.Auth{Signer: recipient}
	require.NoError(t, f.custody.TransferOwnership(ctx, recipientAuth, f.db, id, tokenAddr))
	require.NoError(t, f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, id, 0))

	members, err := f.portfolio.Members(f.db, f.tokenID, 0)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, uint64(2), members[0].Position)
}

func TestWithdrawAll(t *testing.T) {
	f := newFixture(t)
	ctx := liquidtest.Ctx(3)
	tokenAddr := f.token.Address()
	tokenAuth := &liquidtest.Auth{Signer: f.token}

	a1 := f.account(t, 100, true)
	a2 := f.account(t, 50, true)
	a3 := f.account(t, 7, true)
	for _, id := range [][]byte{a1, a2, a3} {
		require.NoError(t, f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, id, 0))
	}
	require.NoError(t, f.custody.SetThresholds(ctx, tokenAuth, f.db, a3, coin.Coins{coin.NewCoinp(5, "ETH")}))

	// Ownership of the second account is taken away without releasing it.
	thief := liquidtest.NewCondition().Address()
	require.NoError(t, f.custody.TransferOwnership(ctx, tokenAuth, f.db, a2, thief))

	before, err := eventlog.Last(f.db)
	require.NoError(t, err)

	total, err := f.portfolio.WithdrawAll(ctx, tokenAuth, f.db, f.tokenID, tokenAddr, []string{"ETH", "IOV"}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(102), total.AmountOf("ETH"))

	balance, err := f.cash.Balance(f.db, tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(102), balance.AmountOf("ETH"))

	untouched, err := f.cash.Balance(f.db, custody.AccountAddress(a2))
	require.NoError(t, err)
	assert.Equal(t, uint64(50), untouched.AmountOf("ETH"))

	events, err := eventlog.List(f.db, before, "")
	require.NoError(t, err)
	var kinds []string
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []string{
		eventlog.WithdrawalStarted,
		eventlog.SuccessfulWithdrawal, eventlog.Withdrawal,
		eventlog.Withdrawal,
		eventlog.SuccessfulWithdrawal, eventlog.Withdrawal,
		eventlog.WithdrawalFinished,
	}, kinds)

	failed := events[3]
	assert.True(t, failed.Failed)
	assert.Contains(t, failed.Reason, "token does not own the account")
	assert.Equal(t, []liquid.Address{custody.AccountAddress(a2)}, failed.Accounts)
	assert.Equal(t, uint64(2), events[5].AmountOf("ETH"))
	assert.Equal(t, uint64(102), events[6].AmountOf("ETH"))

	// Running again right away is a successful no-op.
	total, err = f.portfolio.WithdrawAll(ctx, tokenAuth, f.db, f.tokenID, tokenAddr, []string{"ETH"}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total.AmountOf("ETH"))
}

func TestWithdrawAllBound(t *testing.T) {
	f := newFixture(t)
	ctx := liquidtest.Ctx(3)
	tokenAddr := f.token.Address()
	for i := 0; i < 3; i++ {
		id := f.account(t, 10, true)
		require.NoError(t, f.portfolio.Register(ctx, f.db, f.tokenID, tokenAddr, id, 0))
	}
	before, err := eventlog.Last(f.db)
	require.NoError(t, err)

	_, err = f.portfolio.WithdrawAll(ctx, &liquidtest.Auth{Signer: f.token}, f.db, f.tokenID, tokenAddr, []string{"ETH"}, 2)
	assert.True(t, errors.ErrResourceExhausted.Is(err), "got %+v", err)

	after, err := eventlog.Last(f.db)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
