package liquid_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	opts := liquid.Options{
		"token": json.RawMessage(`{"name": "Liquid", "supply": 1000}`),
		"bad":   json.RawMessage(`[1, 2`),
	}

	var tok struct {
		Name   string `json:"name"`
		Supply int    `json:"supply"`
	}
	require.NoError(t, opts.ReadOptions("token", &tok))
	assert.Equal(t, "Liquid", tok.Name)
	assert.Equal(t, 1000, tok.Supply)

	var missing []string
	require.NoError(t, opts.ReadOptions("missing", &missing))
	assert.Nil(t, missing)

	assert.Error(t, opts.ReadOptions("bad", &missing))
}

type recordingInit struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingInit) FromGenesis(opts liquid.Options, params liquid.GenesisParams, kv liquid.KVStore) error {
	*r.calls = append(*r.calls, r.name+"@"+params.ChainID)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	params := liquid.GenesisParams{ChainID: "test-chain", Height: 1}
	db := store.MemStore()

	ok := liquid.ChainInitializers(
		recordingInit{name: "cash", calls: &calls},
		recordingInit{name: "liquid", calls: &calls},
	)
	require.NoError(t, ok.FromGenesis(nil, params, db))
	assert.Equal(t, []string{"cash@test-chain", "liquid@test-chain"}, calls)

	calls = nil
	failing := liquid.ChainInitializers(
		recordingInit{name: "cash", calls: &calls, err: errors.ErrInput},
		recordingInit{name: "liquid", calls: &calls},
	)
	err := failing.FromGenesis(nil, params, db)
	assert.True(t, errors.ErrInput.Is(err))
	assert.Equal(t, []string{"cash@test-chain"}, calls)
}

type staticQuery struct{}

func (staticQuery) Query(db liquid.ReadOnlyKVStore, mod string, data []byte) ([]liquid.Model, error) {
	return []liquid.Model{liquid.Pair(data, []byte(mod))}, nil
}

func TestQueryRouter(t *testing.T) {
	r := liquid.NewQueryRouter()
	r.Register("/tokens", staticQuery{})

	assert.Nil(t, r.Handler("/balances"))
	h := r.Handler("/tokens")
	require.NotNil(t, h)
	res, err := h.Query(nil, liquid.PrefixQueryMod, []byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []liquid.Model{{Key: []byte("key"), Value: []byte("prefix")}}, res)

	assert.Panics(t, func() { r.Register("/tokens", staticQuery{}) })
}
