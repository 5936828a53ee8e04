package holders

import (
	"testing"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/eventlog"
	"github.com/iov-one/liquid/liquidtest"
	"github.com/iov-one/liquid/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowList(t *testing.T) {
	db := store.MemStore()
	ctx := liquidtest.Ctx(1)
	l := NewAllowList()
	token := liquidtest.SequenceID(1)
	other := liquidtest.SequenceID(2)
	source := liquidtest.NewCondition().Address()
	alice := liquidtest.NewCondition().Address()

	ok, err := l.IsApproved(db, token, alice)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, errors.ErrNotApprovedHolder.Is(l.RequireApproved(db, token, alice)))

	require.NoError(t, l.Approve(ctx, db, token, source, alice))
	err = l.Approve(ctx, db, token, source, alice)
	assert.True(t, errors.ErrAlreadyApproved.Is(err), "got %+v", err)

	ok, err = l.IsApproved(db, token, alice)
	require.NoError(t, err)
	assert.True(t, ok)

	// Approval is per token.
	ok, err = l.IsApproved(db, other, alice)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Disapprove(ctx, db, token, source, alice))
	err = l.Disapprove(ctx, db, token, source, alice)
	assert.True(t, errors.ErrNotApprovedHolder.Is(err), "got %+v", err)

	events, err := eventlog.List(db, 0, "")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, eventlog.HolderApproved, events[0].Kind)
	assert.Equal(t, eventlog.HolderDisapproved, events[1].Kind)
	assert.Equal(t, []liquid.Address{alice}, events[1].Accounts)
}
