package utils

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ liquid.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{onCheck: true, onDeliver: s.onDeliver}
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{onCheck: s.onCheck, onDeliver: true}
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx, next liquid.Checker) (*liquid.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *liquid.CheckResult
	err := WithSavepoint(db, func(cache liquid.KVStore) error {
		var err error
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx, next liquid.Deliverer) (*liquid.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *liquid.DeliverResult
	err := WithSavepoint(db, func(cache liquid.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// WithSavepoint runs fn against a cache wrap of given store. Changes are
// written back only if fn succeeds. Stores that cannot be cache wrapped are
// used directly.
func WithSavepoint(db liquid.KVStore, fn func(liquid.KVStore) error) error {
	cstore, ok := db.(liquid.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
