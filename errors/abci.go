package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode is returned for a nil error.
	SuccessABCICode = 0

	// Errors that are not registered in this package are reported under
	// a single code and, outside of debug mode, a generic message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo converts an error into the code and log of an ABCI response.
//
// Registered errors keep their code and message. Any other error is
// internal: it gets code 1 and its message is hidden unless debug is set.
// In debug mode the log carries the full formatting, including the stack
// trace when one was recorded.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode walks the chain of wrapped errors until one of them declares
// an ABCI code.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}

// Redact hides panics and unregistered errors behind a generic internal
// error. Nothing is hidden in debug mode.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
