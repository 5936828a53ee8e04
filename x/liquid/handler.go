package liquid

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/gconf"
	"github.com/iov-one/liquid/x"
)

const (
	createTokenCost int64 = 100
	distributeCost  int64 = 500
	withdrawCost    int64 = 500
)

// RegisterQuery registers tokens as "/tokens", balances as "/balances" and
// allowances as "/allowances". Balances and allowances are queried by the
// token ID prefix.
func RegisterQuery(qr liquid.QueryRouter) {
	newTokenBucket().Register("tokens", qr)
	newBalanceBucket().Register("balances", qr)
	newAllowanceBucket().Register("allowances", qr)
}

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r liquid.Registry, auth x.Authenticator, ctrl *Controller) {
	h := handlers{auth: auth, ctrl: ctrl}
	r.Handle((&CreateTokenMsg{}).Path(), handlerFunc{check: h.authorize, run: h.createToken, cost: createTokenCost})
	r.Handle((&MintMsg{}).Path(), handlerFunc{check: h.authorize, run: h.mint})
	r.Handle((&MintAndDistributeMsg{}).Path(), handlerFunc{check: h.authorize, run: h.mintAndDistribute, cost: distributeCost})
	r.Handle((&BurnMsg{}).Path(), handlerFunc{check: h.authorize, run: h.burn})
	r.Handle((&BurnAndDistributeMsg{}).Path(), handlerFunc{check: h.authorize, run: h.burnAndDistribute, cost: distributeCost})
	r.Handle((&BurnFromMsg{}).Path(), handlerFunc{check: h.authorize, run: h.burnFrom})
	r.Handle((&TransferMsg{}).Path(), handlerFunc{check: h.authorize, run: h.transfer})
	r.Handle((&TransferFromMsg{}).Path(), handlerFunc{check: h.authorize, run: h.transferFrom})
	r.Handle((&ApproveMsg{}).Path(), handlerFunc{check: h.authorize, run: h.approve})
	r.Handle((&ApproveHolderMsg{}).Path(), handlerFunc{check: h.authorize, run: h.approveHolder})
	r.Handle((&DisapproveHolderMsg{}).Path(), handlerFunc{check: h.authorize, run: h.disapproveHolder})
	r.Handle((&AddManagedAccountMsg{}).Path(), handlerFunc{check: h.authorize, run: h.addManagedAccount})
	r.Handle((&ReleaseManagedAccountMsg{}).Path(), handlerFunc{check: h.authorize, run: h.releaseManagedAccount})
	r.Handle((&WithdrawFromAllMsg{}).Path(), handlerFunc{check: h.authorize, run: h.withdrawFromAll, cost: withdrawCost})
	r.Handle((&DistributeMsg{}).Path(), handlerFunc{check: h.authorize, run: h.distribute, cost: distributeCost})
	r.Handle((&SetRewardTickersMsg{}).Path(), handlerFunc{check: h.authorize, run: h.setRewardTickers})
	r.Handle((&TransferAdminMsg{}).Path(), handlerFunc{check: h.authorize, run: h.transferAdmin})
	r.Handle((&UpdateConfigurationMsg{}).Path(), NewConfigHandler(auth))
}

// NewConfigHandler returns a handler updating the liquid configuration.
func NewConfigHandler(auth x.Authenticator) liquid.Handler {
	return gconf.NewUpdateConfigurationHandler(confPkg, func() gconf.OwnedConfig { return &Configuration{} }, auth)
}

// handlerFunc only authorizes the message in Check. The operation runs in
// Deliver.
type handlerFunc struct {
	check func(liquid.Context, liquid.ReadOnlyKVStore, liquid.Tx) error
	run   func(liquid.Context, liquid.KVStore, liquid.Tx) (*liquid.DeliverResult, error)
	cost  int64
}

var _ liquid.Handler = handlerFunc{}

func (h handlerFunc) Check(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	if err := h.check(ctx, db, tx); err != nil {
		return nil, err
	}
	return &liquid.CheckResult{GasAllocated: h.cost}, nil
}

func (h handlerFunc) Deliver(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	return h.run(ctx, db, tx)
}

type handlers struct {
	auth x.Authenticator
	ctrl *Controller
}

// authorize validates the message, loads the token and verifies that the
// signers are allowed to run the operation. Balances, allowances and
// limits are verified in Deliver only.
func (h handlers) authorize(ctx liquid.Context, db liquid.ReadOnlyKVStore, tx liquid.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	var (
		tokenID []byte
		signer  liquid.Address
	)
	switch m := msg.(type) {
	case *CreateTokenMsg:
		return nil
	case *MintMsg:
		return h.authorizeAdmin(ctx, db, m.TokenID)
	case *MintAndDistributeMsg:
		return h.authorizeAdmin(ctx, db, m.TokenID)
	case *ApproveHolderMsg:
		return h.authorizeAdmin(ctx, db, m.TokenID)
	case *DisapproveHolderMsg:
		return h.authorizeAdmin(ctx, db, m.TokenID)
	case *AddManagedAccountMsg:
		return h.authorizeAdmin(ctx, db, m.TokenID)
	case *ReleaseManagedAccountMsg:
		return h.authorizeAdmin(ctx, db, m.TokenID)
	case *SetRewardTickersMsg:
		return h.authorizeAdmin(ctx, db, m.TokenID)
	case *TransferAdminMsg:
		return h.authorizeAdmin(ctx, db, m.TokenID)
	case *BurnMsg:
		tokenID, signer = m.TokenID, m.Holder
	case *BurnAndDistributeMsg:
		tokenID, signer = m.TokenID, m.Holder
	case *TransferMsg:
		tokenID, signer = m.TokenID, m.Source
	case *ApproveMsg:
		tokenID, signer = m.TokenID, m.Owner
	case *BurnFromMsg:
		tokenID, signer = m.TokenID, m.Spender
	case *TransferFromMsg:
		tokenID, signer = m.TokenID, m.Spender
	case *WithdrawFromAllMsg:
		tokenID = m.TokenID
	case *DistributeMsg:
		tokenID = m.TokenID
	default:
		return errors.Wrapf(errors.ErrType, "unexpected %T message", msg)
	}

	if signer != nil {
		if err := x.Authorize(ctx, h.auth, x.Roles{Owner: signer}, x.OwnerOnly); err != nil {
			return err
		}
	}
	_, err = h.ctrl.Get(db, tokenID)
	return err
}

func (h handlers) authorizeAdmin(ctx liquid.Context, db liquid.ReadOnlyKVStore, tokenID []byte) error {
	_, err := h.ctrl.adminToken(ctx, h.auth, db, tokenID)
	return err
}

func distributed(executed bool) *liquid.DeliverResult {
	if executed {
		return &liquid.DeliverResult{Log: "distributed"}
	}
	return &liquid.DeliverResult{Log: "distribution skipped"}
}

func (h handlers) createToken(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg CreateTokenMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	id, _, err := h.ctrl.Create(ctx, db, &msg)
	if err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{Data: id}, nil
}

func (h handlers) mint(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg MintMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Mint(ctx, h.auth, db, msg.TokenID, msg.Holder, msg.Amount); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) mintAndDistribute(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg MintAndDistributeMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	executed, err := h.ctrl.MintAndDistribute(ctx, h.auth, db, msg.TokenID, msg.Holder, msg.Amount)
	if err != nil {
		return nil, err
	}
	return distributed(executed), nil
}

func (h handlers) burn(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg BurnMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Burn(ctx, h.auth, db, msg.TokenID, msg.Holder, msg.Amount); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) burnAndDistribute(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg BurnAndDistributeMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	executed, err := h.ctrl.BurnAndDistribute(ctx, h.auth, db, msg.TokenID, msg.Holder, msg.Amount)
	if err != nil {
		return nil, err
	}
	return distributed(executed), nil
}

func (h handlers) burnFrom(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg BurnFromMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.BurnFrom(ctx, h.auth, db, msg.TokenID, msg.Owner, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) transfer(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg TransferMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Transfer(ctx, h.auth, db, msg.TokenID, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) transferFrom(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg TransferFromMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.TransferFrom(ctx, h.auth, db, msg.TokenID, msg.Owner, msg.Spender, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) approve(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg ApproveMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Approve(ctx, h.auth, db, msg.TokenID, msg.Owner, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) approveHolder(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg ApproveHolderMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.ApproveHolder(ctx, h.auth, db, msg.TokenID, msg.Holder); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) disapproveHolder(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg DisapproveHolderMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.DisapproveHolder(ctx, h.auth, db, msg.TokenID, msg.Holder); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) addManagedAccount(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg AddManagedAccountMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.AddManagedAccount(ctx, h.auth, db, msg.TokenID, msg.AccountID); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) releaseManagedAccount(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg ReleaseManagedAccountMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.ReleaseManagedAccount(ctx, h.auth, db, msg.TokenID, msg.AccountID, msg.Recipient); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) withdrawFromAll(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg WithdrawFromAllMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	withdrawn, err := h.ctrl.WithdrawFromAll(ctx, db, msg.TokenID)
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

func (h handlers) distribute(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg DistributeMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	executed, err := h.ctrl.Distribute(ctx, db, msg.TokenID)
	if err != nil {
		return nil, err
	}
	return distributed(executed), nil
}

func (h handlers) setRewardTickers(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg SetRewardTickersMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.SetRewardTickers(ctx, h.auth, db, msg.TokenID, msg.Tickers); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}

func (h handlers) transferAdmin(ctx liquid.Context, db liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	var msg TransferAdminMsg
	if err := liquid.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.TransferAdmin(ctx, h.auth, db, msg.TokenID, msg.NewAdmin); err != nil {
		return nil, err
	}
	return &liquid.DeliverResult{}, nil
}
