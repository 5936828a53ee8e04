package liquidtest

import "github.com/iov-one/liquid"

// WriteHandler writes given key value pair and returns Err. Useful to test
// that decorators revert or keep state changes.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ liquid.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &liquid.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &liquid.DeliverResult{}, nil
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ liquid.Handler = (*PanicHandler)(nil)

func (h *PanicHandler) Check(liquid.Context, liquid.KVStore, liquid.Tx) (*liquid.CheckResult, error) {
	panic(h.Msg)
}

func (h *PanicHandler) Deliver(liquid.Context, liquid.KVStore, liquid.Tx) (*liquid.DeliverResult, error) {
	panic(h.Msg)
}
