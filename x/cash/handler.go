package cash

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/gconf"
	"github.com/iov-one/liquid/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r liquid.Registry, auth x.Authenticator, control Controller) {
	r.Handle((&SendMsg{}).Path(), NewSendHandler(auth, control))
	r.Handle((&IssueMsg{}).Path(), NewIssueHandler(auth, control))
	r.Handle((&UpdateConfigurationMsg{}).Path(), NewConfigHandler(auth))
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr liquid.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ liquid.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &liquid.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx liquid.Context, tx liquid.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.Authorize(ctx, h.auth, x.Roles{Owner: msg.Source}, x.OwnerOnly); err != nil {
		return nil, errors.Wrap(err, "wallet owner")
	}
	return &msg, nil
}

// IssueHandler creates coins on behalf of the configured issuer.
type IssueHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ liquid.Handler = IssueHandler{}

func NewIssueHandler(auth x.Authenticator, control Controller) IssueHandler {
	return IssueHandler{auth: auth, control: control}
}

func (h IssueHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &liquid.CheckResult{}, nil
}

func (h IssueHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.IssueCoins(db, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h IssueHandler) validate(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*IssueMsg, error) {
	var msg IssueMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if len(conf.Issuer) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "issuing is disabled")
	}
	if err := x.Authorize(ctx, h.auth, x.Roles{Owner: conf.Issuer}, x.OwnerOnly); err != nil {
		return nil, errors.Wrap(err, "issuer")
	}
	return &msg, nil
}

// NewConfigHandler returns a handler updating the cash configuration.
func NewConfigHandler(auth x.Authenticator) liquid.Handler {
	return gconf.NewUpdateConfigurationHandler(confPkg, func() gconf.OwnedConfig { return &Configuration{} }, auth)
}
