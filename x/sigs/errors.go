package sigs

import "github.com/iov-one/liquid/errors"

// ErrInvalidSequence is returned when the signature nonce does not match.
var ErrInvalidSequence = errors.Register(20, "invalid sequence number")
