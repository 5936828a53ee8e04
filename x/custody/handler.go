package custody

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/x"
)

const (
	createCost   int64 = 100
	withdrawCost int64 = 50
)

// RegisterQuery will register this bucket as "/accounts"
func RegisterQuery(qr liquid.QueryRouter) {
	NewBucket().Register("accounts", qr)
}

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r liquid.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle((&CreateAccountMsg{}).Path(), &createHandler{ctrl: ctrl})
	r.Handle((&SetThresholdsMsg{}).Path(), &setThresholdsHandler{auth: auth, ctrl: ctrl})
	r.Handle((&WithdrawMsg{}).Path(), &withdrawHandler{auth: auth, ctrl: ctrl})
	r.Handle((&TransferOwnershipMsg{}).Path(), &transferHandler{auth: auth, ctrl: ctrl})
	r.Handle((&ApproveMsg{}).Path(), &approveHandler{auth: auth, ctrl: ctrl})
	r.Handle((&RecoverMsg{}).Path(), &recoverHandler{auth: auth, ctrl: ctrl})
}

type createHandler struct {
	ctrl *Controller
}

var _ liquid.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	var msg CreateAccountMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &liquid.CheckResult{GasAllocated: createCost}, nil
}

func (h *createHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg CreateAccountMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	id, _, err := h.ctrl.Create(ctx, db, msg.Owner)
	if err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{Data: id}, nil
}

// Check of the handlers below loads the message and authorizes the
// signers. The operation itself only runs in Deliver.

type setThresholdsHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ liquid.Handler = (*setThresholdsHandler)(nil)

func (h *setThresholdsHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	var msg SetThresholdsMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.authorized(ctx, h.auth, db, msg.AccountID, x.OwnerOrDelegate); err != nil {
		return nil, err
	}
	return &liquid.CheckResult{}, nil
}

func (h *setThresholdsHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg SetThresholdsMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.SetThresholds(ctx, h.auth, db, msg.AccountID, coin.Coins(msg.Thresholds)); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

type withdrawHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ liquid.Handler = (*withdrawHandler)(nil)

func (h *withdrawHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	var msg WithdrawMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.authorized(ctx, h.auth, db, msg.AccountID, x.OwnerOrDelegate); err != nil {
		return nil, err
	}
	return &liquid.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h *withdrawHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg WithdrawMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	var (
		withdrawn coin.Coins
		err       error
	)
	if len(msg.Recipient) == 0 {
		withdrawn, err = h.ctrl.WithdrawToOwner(ctx, h.auth, db, msg.AccountID, msg.Tickers)
	} else {
		withdrawn, err = h.ctrl.WithdrawTo(ctx, h.auth, db, msg.AccountID, msg.Tickers, msg.Recipient)
	}
	if err != nil {
		return nil, err
	}
	res := &liquid.DeliverResult{}
	for _, c := range withdrawn {
		if res.Log != "" {
			res.Log += ", "
		}
		res.Log += c.Human()
	}
	return res, nil
}

type transferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ liquid.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	var msg TransferOwnershipMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.authorized(ctx, h.auth, db, msg.AccountID, x.OwnerOrDelegate); err != nil {
		return nil, err
	}
	return &liquid.CheckResult{}, nil
}

func (h *transferHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg TransferOwnershipMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.TransferOwnership(ctx, h.auth, db, msg.AccountID, msg.NewOwner); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

type approveHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ liquid.Handler = (*approveHandler)(nil)

func (h *approveHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	var msg ApproveMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.authorized(ctx, h.auth, db, msg.AccountID, x.OwnerOnly); err != nil {
		return nil, err
	}
	return &liquid.CheckResult{}, nil
}

func (h *approveHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg ApproveMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Approve(ctx, h.auth, db, msg.AccountID, msg.Delegate); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

type recoverHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ liquid.Handler = (*recoverHandler)(nil)

func (h *recoverHandler) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	var msg RecoverMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.authorized(ctx, h.auth, db, msg.AccountID, x.OwnerOnly); err != nil {
		return nil, err
	}
	return &liquid.CheckResult{}, nil
}

func (h *recoverHandler) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg RecoverMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Recover(ctx, h.auth, db, msg.AccountID); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}
