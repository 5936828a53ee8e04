package operator

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/app"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/x/sigs"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Client is the part of the tendermint rpc client used by the operator.
type Client interface {
	ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error)
	BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error)
}

var _ Client = (*rpcclient.HTTP)(nil)

// NewHTTPClient connects to the rpc endpoint of a tendermint node, for
// example tcp://localhost:26657
func NewHTTPClient(remote string) Client {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// nextSequence returns the nonce the next signature of given address must
// use.
func nextSequence(c Client, addr liquid.Address) (int64, error) {
	res, err := c.ABCIQuery("/auth", cmn.HexBytes(addr))
	if err != nil {
		return 0, errors.Wrap(err, "query")
	}
	if res.Response.Code != abci.CodeTypeOK {
		return 0, errors.Wrapf(errors.ErrHuman, "query failed with code %d: %s", res.Response.Code, res.Response.Log)
	}
	var user sigs.UserData
	switch err := app.UnmarshalOneResult(res.Response.Value, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// broadcast sends the transaction and waits until it is included in a block.
// Failed execution is returned as an error carrying the log.
func broadcast(c Client, tx *app.Tx) (*abci.ResponseDeliverTx, error) {
	raw, err := liquid.Marshal(tx)
	if err != nil {
		return nil, err
	}
	res, err := c.BroadcastTxCommit(tmtypes.Tx(raw))
	if err != nil {
		return nil, errors.Wrap(err, "broadcast")
	}
	if res.CheckTx.IsErr() {
		return nil, errors.Wrapf(errors.ErrHuman, "check tx failed with code %d: %s", res.CheckTx.Code, res.CheckTx.Log)
	}
	if res.DeliverTx.IsErr() {
		return nil, errors.Wrapf(errors.ErrHuman, "deliver tx failed with code %d: %s", res.DeliverTx.Code, res.DeliverTx.Log)
	}
	return &res.DeliverTx, nil
}
