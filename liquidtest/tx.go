package liquidtest

import "github.com/iov-one/liquid"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg liquid.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ liquid.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (liquid.Msg, error) {
	return tx.Msg, tx.Err
}
