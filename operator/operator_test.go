package operator

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/app"
	liquidd "github.com/iov-one/liquid/cmd/liquidd/app"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/crypto"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/liquidtest"
	"github.com/iov-one/liquid/x/cash"
	"github.com/iov-one/liquid/x/custody"
	xliquid "github.com/iov-one/liquid/x/liquid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

const chainID = "operator-chain"

// localClient executes every broadcast transaction in its own block of an
// in-process application.
type localClient struct {
	mu     sync.Mutex
	app    app.BaseApp
	height int64
}

var _ Client = (*localClient)(nil)

func (c *localClient) ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &ctypes.ResultABCIQuery{Response: c.app.Query(abci.RequestQuery{Path: path, Data: data})}, nil
}

func (c *localClient) BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	check := c.app.CheckTx(tx)
	if check.IsErr() {
		return &ctypes.ResultBroadcastTxCommit{CheckTx: check}, nil
	}
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{ChainID: chainID, Height: c.height}})
	deliver := c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	return &ctypes.ResultBroadcastTxCommit{CheckTx: check, DeliverTx: deliver, Height: c.height}, nil
}

func (c *localClient) balance(t *testing.T, addr liquid.Address, ticker string) uint64 {
	t.Helper()
	res, err := c.ABCIQuery("/wallets", cmn.HexBytes(addr))
	require.NoError(t, err)
	var w cash.Wallet
	switch err := app.UnmarshalOneResult(res.Response.Value, &w); {
	case err == nil:
		return coin.Coins(w.Coins).AmountOf(ticker)
	case errors.ErrNotFound.Is(err):
		return 0
	default:
		t.Fatalf("cannot load wallet: %s", err)
		return 0
	}
}

func newLocalClient(t *testing.T, state map[string]interface{}) *localClient {
	t.Helper()
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	a, err := liquidd.GenerateApp("", log.NewNopLogger(), true)
	require.NoError(t, err)
	a.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: raw})
	a.Commit()
	return &localClient{app: a}
}

func TestOperatorCollectsAndDistributes(t *testing.T) {
	holder := liquidtest.NewCondition().Address()
	admin := liquidtest.NewCondition().Address()
	tokenID := liquidtest.SequenceID(1)
	tokenAddr := xliquid.TokenAddress(tokenID)
	accountAddr := custody.AccountAddress(liquidtest.SequenceID(1))

	client := newLocalClient(t, map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: accountAddr, Coins: []*coin.Coin{coin.NewCoinp(75, "ETH")}},
		},
		"custody": []custody.GenesisAccount{{Owner: tokenAddr}},
		"liquid": []xliquid.GenesisToken{{
			Admin:           admin,
			Name:            "Wind farm",
			Symbol:          "WND",
			RewardTickers:   []string{"ETH"},
			ApprovedHolders: []liquid.Address{holder},
			Balances:        []xliquid.GenesisBalance{{Holder: holder, Amount: 3}},
		}},
	})

	// The portfolio is managed by the admin, whose key is not available
	// here. Register the account directly in the state.
	ctrls := liquidd.NewControllers()
	db := client.app.DeliverStore()
	require.NoError(t, ctrls.Liquid.Portfolio().Register(liquidtest.Ctx(1), db, tokenID, tokenAddr, liquidtest.SequenceID(1), 0))
	client.app.Commit()

	op, err := New(client, crypto.GenPrivateKey(), chainID, [][]byte{tokenID}, log.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, op.WithdrawAll())
	assert.Equal(t, uint64(75), client.balance(t, tokenAddr, "ETH"))

	require.NoError(t, op.DistributeAll())
	assert.Equal(t, uint64(75), client.balance(t, holder, "ETH"))
	assert.Equal(t, uint64(0), client.balance(t, tokenAddr, "ETH"))

	// Nothing left, but both operations still succeed.
	require.NoError(t, op.WithdrawAll())
	require.NoError(t, op.DistributeAll())
}

func TestOperatorReportsFailures(t *testing.T) {
	client := newLocalClient(t, map[string]interface{}{})
	missing := liquidtest.SequenceID(42)

	op, err := New(client, crypto.GenPrivateKey(), chainID, [][]byte{missing}, nil)
	require.NoError(t, err)
	err = op.DistributeAll()
	require.Error(t, err)
	assert.True(t, errors.ErrHuman.Is(err))
}

func TestNewOperator(t *testing.T) {
	key := crypto.GenPrivateKey()
	tokens := [][]byte{liquidtest.SequenceID(1)}

	_, err := New(nil, key, "x", tokens, nil)
	assert.True(t, errors.ErrInput.Is(err))
	_, err = New(nil, key, chainID, nil, nil)
	assert.True(t, errors.ErrEmpty.Is(err))

	op, err := New(nil, key, chainID, tokens, nil)
	require.NoError(t, err)
	assert.NoError(t, op.Schedule("@every 1h", ""))
	assert.Error(t, op.Schedule("not a schedule", ""))
	op.Start()
	<-op.Stop().Done()
}
