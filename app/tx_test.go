package app

import (
	"testing"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/coin"
	"github.com/iov-one/liquid/crypto"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/x/cash"
	"github.com/iov-one/liquid/x/custody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxRoundTrip(t *testing.T) {
	key := crypto.GenPrivateKey()
	addr := key.PublicKey().Address()
	msg := &cash.SendMsg{
		Source:      addr,
		Destination: crypto.GenPrivateKey().PublicKey().Address(),
		Amount:      coin.NewCoinp(10, "ETH"),
		Memo:        "rent",
	}
	tx, err := NewTx(msg)
	require.NoError(t, err)
	require.NoError(t, tx.Sign(key, "test-chain", 0))

	raw, err := liquid.Marshal(tx)
	require.NoError(t, err)

	decode := NewTxDecoder(&cash.SendMsg{}, &custody.CreateAccountMsg{})
	got, err := decode(raw)
	require.NoError(t, err)

	gotMsg, err := got.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, gotMsg)
	assert.Equal(t, "cash/send", liquid.GetPath(got))

	signed := got.(*Tx)
	require.Len(t, signed.GetSignatures(), 1)
	assert.Equal(t, key.PublicKey(), signed.GetSignatures()[0].Pubkey)

	// Signatures are not part of the signed content.
	a, err := tx.GetSignBytes()
	require.NoError(t, err)
	b, err := signed.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTxDecoderErrors(t *testing.T) {
	decode := NewTxDecoder(&cash.SendMsg{})

	_, err := decode([]byte("not a transaction at all"))
	assert.Error(t, err)

	tx, err := NewTx(&custody.CreateAccountMsg{})
	require.NoError(t, err)
	raw, err := liquid.Marshal(tx)
	require.NoError(t, err)
	_, err = decode(raw)
	assert.True(t, errors.ErrNotFound.Is(err))

	assert.Panics(t, func() { NewTxDecoder(&cash.SendMsg{}, &cash.SendMsg{}) })
}

func TestUndecodedTx(t *testing.T) {
	var tx Tx
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))
}
