package sigs

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

const signatureVerifyCost = 500

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr liquid.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ liquid.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator, which appends
// the chainID before checking the signature, and requires at least one
// signature to be present
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx, next liquid.Checker) (*liquid.CheckResult, error) {
	ctx, signers, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// Signature verification is the most expensive part. Only valid
	// signatures are charged.
	res.GasAllocated += int64(signers * signatureVerifyCost)
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx, next liquid.Deliverer) (*liquid.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) verify(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (liquid.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		if d.allowMissingSigs {
			return ctx, 0, nil
		}
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	signers, err := VerifyTxSignatures(db, stx, liquid.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
