package liquidtest

import (
	"context"
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/liquid"
)

var condCounter uint64

// NewCondition returns a unique condition. Each call returns a different
// value, but the sequence is the same for every test run.
func NewCondition() liquid.Condition {
	n := atomic.AddUint64(&condCounter, 1)
	return liquid.NewCondition("test", "sig", SequenceID(n))
}

// SequenceID returns the 8 byte big endian representation of given value,
// which is the format of all sequence based entity keys.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// Ctx returns a context with the chain ID and block height set.
func Ctx(height int64) liquid.Context {
	ctx := liquid.WithChainID(context.Background(), "test-chain")
	return liquid.WithHeight(ctx, height)
}
