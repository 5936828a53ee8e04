package app

import (
	"reflect"

	"github.com/iov-one/liquid"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []liquid.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

	app.ChainDecorators(
	  utils.NewLogging(),
	  utils.NewRecovery(),
	  sigs.NewDecorator(),
	  utils.NewSavepoint().OnDeliver(),
	).WithHandler(
	  router,
	)
*/
func ChainDecorators(chain ...liquid.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...liquid.Decorator) Decorators {
	newChain := make([]liquid.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	for _, dec := range chain {
		if isNil(dec) {
			continue
		}
		newChain = append(newChain, dec)
	}
	return Decorators{chain: newChain}
}

func isNil(d liquid.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h liquid.Handler) liquid.Handler {
	// The top of the chain is executed first.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler.
type step struct {
	d    liquid.Decorator
	next liquid.Handler
}

var _ liquid.Handler = step{}

func (s step) Check(ctx liquid.Context, store liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx liquid.Context, store liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
