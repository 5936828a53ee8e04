package app

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder liquid.TxDecoder
	handler liquid.Handler
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder liquid.TxDecoder,
	handler liquid.Handler,
	debug bool,
) BaseApp {
	store.debug = debug
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return deliverTxError(err, b.debug)
	}

	ctx := liquid.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", liquid.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if err != nil {
		return deliverTxError(err, b.debug)
	}
	return abci.ResponseDeliverTx{
		Data:    res.Data,
		Log:     res.Log,
		GasUsed: res.GasUsed,
	}
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return checkTxError(err, b.debug)
	}

	ctx := liquid.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", liquid.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	if err != nil {
		return checkTxError(err, b.debug)
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx liquid.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}

func deliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

func checkTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}
