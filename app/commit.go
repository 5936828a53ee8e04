package app

import (
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

// CommitStore wraps the persistent store of a node. Transactions are
// delivered into one cache and checked against another. Both are rebuilt
// from the committed state after every block.
type CommitStore struct {
	committed liquid.CommitKVStore
	deliver   liquid.KVCacheWrap
	check     liquid.KVCacheWrap
}

// NewCommitStore loads the latest committed version of the store. It panics
// if the store cannot be loaded, as the node cannot start without it.
func NewCommitStore(store liquid.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.resetCaches()
	return cs
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and the root hash of the last commit.
func (cs *CommitStore) CommitInfo() (liquid.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything written by delivered transactions and starts
// a new block with fresh caches. Changes done while checking transactions
// are dropped.
func (cs *CommitStore) Commit() (liquid.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return liquid.CommitID{}, errors.Wrap(err, "write block changes")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.resetCaches()
	return id, nil
}

// CheckStore is used by CheckTx.
func (cs *CommitStore) CheckStore() liquid.CacheableKVStore { return cs.check }

// DeliverStore is used by InitChain and DeliverTx.
func (cs *CommitStore) DeliverStore() liquid.CacheableKVStore { return cs.deliver }

// QueryStore returns a read only view of the last committed state.
func (cs *CommitStore) QueryStore() liquid.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

// Keys with the _lq: prefix hold application data that does not belong
// to any extension.
var chainIDKey = []byte("_lq:chainID")

func mustLoadChainID(kv liquid.ReadOnlyKVStore) string {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID stores the chain ID once. The ID cannot be changed after
// the genesis.
func saveChainID(kv liquid.KVStore, chainID string) error {
	if !liquid.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	switch ok, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case ok:
		return errors.Wrap(errors.ErrUnauthorized, "chain id already set")
	}
	return errors.Wrap(kv.Set(chainIDKey, []byte(chainID)), "save chain id")
}
