// nolint
package store

import "github.com/iov-one/liquid"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = liquid.ReadOnlyKVStore
type KVStore = liquid.KVStore
type SetDeleter = liquid.SetDeleter
type Iterator = liquid.Iterator
type CacheableKVStore = liquid.CacheableKVStore
type KVCacheWrap = liquid.KVCacheWrap
type CommitKVStore = liquid.CommitKVStore
type CommitID = liquid.CommitID
type Model = liquid.Model
