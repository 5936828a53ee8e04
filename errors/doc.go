/*
Package errors implements the error taxonomy of the ledger.

Every failure returned by an extension wraps one of the root errors declared
in this package. Root errors carry an ABCI code so that a client can tell an
unauthorized call (ErrUnauthorized) from an allow list rejection
(ErrNotApprovedHolder) or an exhausted iteration bound
(ErrResourceExhausted) without parsing messages.

Use Wrap or Wrapf at the point of failure to attach context and a stack
trace. Only the innermost wrap records the stack trace.

	if !approved {
		return errors.Wrapf(errors.ErrNotApprovedHolder, "holder %s", addr)
	}

Test for an error kind with Is, which unwraps all layers:

	if errors.ErrNotFound.Is(err) {
		...
	}

Once you have an error, %s prints the message and %+v the full stack trace.
*/
package errors
