package utils

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ liquid.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx, next liquid.Checker) (_ *liquid.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx, next liquid.Deliverer) (_ *liquid.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
