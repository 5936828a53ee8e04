/*
Package portfolio keeps the ordered set of custody accounts managed by a
distribution token.

An account can be registered only after its ownership was transferred to
the token address. The token then withdraws the revenue of all members into
its own address. A member that fails to withdraw does not stop the others.
*/
package portfolio

import (
	"fmt"
	"sort"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/eventlog"
	"github.com/iov-one/liquid/orm"
	"github.com/iov-one/liquid/x"
	"github.com/iov-one/liquid/x/custody"
	"github.com/iov-one/liquid/x/utils"
)

const bucketName = "portfolio"

// Portfolio manages members of every token.
type Portfolio struct {
	bucket  orm.ModelBucket
	custody *custody.Controller
}

// NewPortfolio returns a portfolio operating on accounts of given custody
// controller.
func NewPortfolio(c *custody.Controller) *Portfolio {
	return &Portfolio{
		bucket:  orm.NewModelBucket(bucketName, &Member{}),
		custody: c,
	}
}

func key(tokenID, accountID []byte) []byte {
	return append(append([]byte{}, tokenID...), accountID...)
}

func positions(tokenID []byte) orm.Sequence {
	return orm.NewSequence(bucketName, fmt.Sprintf("%X", tokenID))
}

// Register adds the account to the token portfolio. The account must be
// owned by the token address. limit bounds the number of members, zero
// means no bound.
func (p *Portfolio) Register(ctx liquid.Context, db liquid.KVStore, tokenID []byte, tokenAddr liquid.Address, accountID []byte, limit uint64) error {
	acc, err := p.custody.Get(db, accountID)
	if err != nil {
		return err
	}
	if !acc.Owner.Equals(tokenAddr) {
		return errors.Wrapf(errors.ErrNotOwnedByPortfolio, "account %X", accountID)
	}
	switch ok, err := p.bucket.Has(db, key(tokenID, accountID)); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrAlreadyManaged, "account %X", accountID)
	}
	if limit != 0 {
		members, err := p.Members(db, tokenID, 0)
		if err != nil {
			return err
		}
		if uint64(len(members)) >= limit {
			return errors.Wrapf(errors.ErrResourceExhausted, "at most %d managed accounts", limit)
		}
	}

	seq := positions(tokenID)
	pos, err := seq.NextInt(db)
	if err != nil {
		return err
	}
	m := &Member{TokenID: tokenID, AccountID: accountID, Position: pos}
	if err := p.bucket.Put(db, key(tokenID, accountID), m); err != nil {
		return err
	}
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     eventlog.AddManagedAccount,
		Source:   tokenAddr,
		Accounts: []liquid.Address{acc.Address},
	})
}

// Release transfers the account ownership to the recipient and removes it
// from the portfolio. Given authenticator must authorize the token as the
// account owner.
func (p *Portfolio) Release(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, tokenID []byte, tokenAddr liquid.Address, accountID []byte, recipient liquid.Address) error {
	k := key(tokenID, accountID)
	switch ok, err := p.bucket.Has(db, k); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotManaged, "account %X", accountID)
	}
	if err := p.custody.TransferOwnership(ctx, auth, db, accountID, recipient); err != nil {
		return errors.Wrap(err, "transfer ownership")
	}
	if err := p.bucket.Delete(db, k); err != nil {
		return err
	}
	return eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:     eventlog.ReleaseManagedAccount,
		Source:   tokenAddr,
		Accounts: []liquid.Address{custody.AccountAddress(accountID), recipient},
	})
}

// IsManaged returns true if the account is a member of the token portfolio.
func (p *Portfolio) IsManaged(db liquid.ReadOnlyKVStore, tokenID, accountID []byte) (bool, error) {
	return p.bucket.Has(db, key(tokenID, accountID))
}

// Members returns all members of the token portfolio ordered by position.
// ErrResourceExhausted is returned when there are more than limit members.
// Zero limit means no bound.
func (p *Portfolio) Members(db liquid.ReadOnlyKVStore, tokenID []byte, limit uint64) ([]*Member, error) {
	it, err := p.bucket.PrefixScan(db, tokenID)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*Member
	for {
		var m Member
		_, err := it.LoadNext(&m)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		if limit != 0 && uint64(len(res)) >= limit {
			return nil, errors.Wrapf(errors.ErrResourceExhausted, "more than %d managed accounts", limit)
		}
		res = append(res, &m)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Position < res[j].Position })
	return res, nil
}

// WithdrawAll withdraws the revenue of every member into the token
// address. Each member is processed in its own savepoint. A failing member
// is recorded with a failed Withdrawal event and the iteration continues.
// Total withdrawn coins are returned.
func (p *Portfolio) WithdrawAll(ctx liquid.Context, auth x.Authenticator, db liquid.KVStore, tokenID []byte, tokenAddr liquid.Address, tickers []string, limit uint64) (coin.Coins, error) {
	members, err := p.Members(db, tokenID, limit)
	if err != nil {
		return nil, err
	}
	err = eventlog.Emit(ctx, db, &eventlog.Event{
		Kind:    eventlog.WithdrawalStarted,
		Source:  tokenAddr,
		Tickers: tickers,
	})
	if err != nil {
		return nil, err
	}

	var total coin.Coins
	for _, m := range members {
		var withdrawn coin.Coins
		werr := utils.WithSavepoint(db, func(cache liquid.KVStore) error {
			acc, err := p.custody.Get(cache, m.AccountID)
			if err != nil {
				return err
			}
			if !acc.Owner.Equals(tokenAddr) {
				return errors.Wrapf(errors.ErrNotOwnedByPortfolio, "account %X", m.AccountID)
			}
			withdrawn, err = p.custody.WithdrawTo(ctx, auth, cache, m.AccountID, tickers, tokenAddr)
			return err
		})

		e := &eventlog.Event{
			Kind:     eventlog.Withdrawal,
			Source:   tokenAddr,
			Accounts: []liquid.Address{custody.AccountAddress(m.AccountID)},
			Tickers:  tickers,
			Amounts:  make([]uint64, len(tickers)),
		}
		if werr != nil {
			liquid.GetLogger(ctx).Info("managed account withdrawal failed", "account", fmt.Sprintf("%X", m.AccountID), "err", werr)
			e.Failed = true
			e.Reason = werr.Error()
		} else {
			for i, t := range tickers {
				e.Amounts[i] = withdrawn.AmountOf(t)
			}
			for _, c := range withdrawn {
				if total, err = total.Add(*c); err != nil {
					return nil, err
				}
			}
		}
		if err := eventlog.Emit(ctx, db, e); err != nil {
			return nil, err
		}
	}

	finished := &eventlog.Event{
		Kind:    eventlog.WithdrawalFinished,
		Source:  tokenAddr,
		Tickers: tickers,
		Amounts: make([]uint64, len(tickers)),
	}
	for i, t := range tickers {
		finished.Amounts[i] = total.AmountOf(t)
	}
	if err := eventlog.Emit(ctx, db, finished); err != nil {
		return nil, err
	}
	return total, nil
}

// RegisterQuery will register this bucket as "/members". Query by token ID
// prefix to list members of a token.
func (p *Portfolio) RegisterQuery(qr liquid.QueryRouter) {
	p.bucket.Register("members", qr)
}
