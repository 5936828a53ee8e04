/*
Package app links together all the various components
to construct the liquidd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/app"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/eventlog"
	"github.com/iov-one/liquid/store/iavl"
	"github.com/iov-one/liquid/x"
	"github.com/iov-one/liquid/x/cash"
	"github.com/iov-one/liquid/x/custody"
	xliquid "github.com/iov-one/liquid/x/liquid"
	"github.com/iov-one/liquid/x/sigs"
	"github.com/iov-one/liquid/x/utils"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the abci Info call.
const Name = "liquidd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce even if the message
		// fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Controllers groups the controllers shared by all handlers.
type Controllers struct {
	Cash    cash.Controller
	Custody *custody.Controller
	Liquid  *xliquid.Controller
}

// NewControllers builds the controller graph.
func NewControllers() Controllers {
	cashCtrl := cash.NewController()
	custodyCtrl := custody.NewController(cashCtrl)
	return Controllers{
		Cash:    cashCtrl,
		Custody: custodyCtrl,
		Liquid:  xliquid.NewController(cashCtrl, custodyCtrl),
	}
}

// Router returns a router dispatching all messages of the application.
func Router(authFn x.Authenticator, ctrls Controllers) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, ctrls.Cash)
	custody.RegisterRoutes(r, authFn, ctrls.Custody)
	xliquid.RegisterRoutes(r, authFn, ctrls.Liquid)
	return r
}

// QueryRouter returns a default query router, allowing access to "/wallets",
// "/auth", "/accounts", "/tokens", "/balances", "/allowances", "/holders",
// "/members" and "/events"
func QueryRouter(ctrls Controllers) liquid.QueryRouter {
	r := liquid.NewQueryRouter()
	cash.RegisterQuery(r)
	sigs.RegisterQuery(r)
	custody.RegisterQuery(r)
	xliquid.RegisterQuery(r)
	ctrls.Liquid.AllowList().RegisterQuery(r)
	ctrls.Liquid.Portfolio().RegisterQuery(r)
	eventlog.RegisterQuery(r)
	return r
}

// Messages returns all messages accepted by the application.
func Messages() []liquid.Msg {
	return []liquid.Msg{
		&cash.SendMsg{},
		&cash.IssueMsg{},
		&cash.UpdateConfigurationMsg{},
		&custody.CreateAccountMsg{},
		&custody.SetThresholdsMsg{},
		&custody.WithdrawMsg{},
		&custody.TransferOwnershipMsg{},
		&custody.ApproveMsg{},
		&custody.RecoverMsg{},
		&xliquid.CreateTokenMsg{},
		&xliquid.MintMsg{},
		&xliquid.MintAndDistributeMsg{},
		&xliquid.BurnMsg{},
		&xliquid.BurnAndDistributeMsg{},
		&xliquid.BurnFromMsg{},
		&xliquid.TransferMsg{},
		&xliquid.TransferFromMsg{},
		&xliquid.ApproveMsg{},
		&xliquid.ApproveHolderMsg{},
		&xliquid.DisapproveHolderMsg{},
		&xliquid.AddManagedAccountMsg{},
		&xliquid.ReleaseManagedAccountMsg{},
		&xliquid.WithdrawFromAllMsg{},
		&xliquid.DistributeMsg{},
		&xliquid.SetRewardTickersMsg{},
		&xliquid.TransferAdminMsg{},
		&xliquid.UpdateConfigurationMsg{},
	}
}

// TxDecoder decodes the application transaction format.
var TxDecoder = app.NewTxDecoder(Messages()...)

// Initializers returns all genesis loaders in the order they must run.
// Custody accounts are created before tokens so that genesis tokens may
// reference them.
func Initializers() liquid.Initializer {
	return liquid.ChainInitializers(
		&cash.Initializer{},
		&custody.Initializer{},
		&xliquid.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(ctrls Controllers) liquid.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, ctrls))
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, kv liquid.CommitKVStore, logger log.Logger, debug bool) app.BaseApp {
	ctrls := NewControllers()
	store := app.NewStoreApp(name, kv, QueryRouter(ctrls), context.Background())
	store.WithInit(Initializers())
	store.WithLogger(logger)
	return app.NewBaseApp(store, TxDecoder, Stack(ctrls), debug)
}

// GenerateApp opens the database inside of home and returns the
// application using it. An empty home keeps all state in memory.
func GenerateApp(home string, logger log.Logger, debug bool) (app.BaseApp, error) {
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "liquid.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	return Application(Name, kv, logger, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (liquid.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewCommitStoreFromDB(dbm.NewMemDB()), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
