package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree is the branching factor of the cache trees. Small values are
// good enough for the size of a single transaction.
const btreeDegree = 2

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, EmptyKVStore{})
}

// BTreeCacheWrap places a btree cache over a KVStore. All reads consult the
// cache first and fall back to the backing store. All writes are kept in the
// cache until Write is called.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	back  ReadOnlyKVStore
	flush SetDeleter
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this
// kv store. Reads go to back, Write applies cached changes to flush. In most
// cases both are the same store.
func NewBTreeCacheWrap(back ReadOnlyKVStore, flush SetDeleter) *BTreeCacheWrap {
	return &BTreeCacheWrap{
		bt:    btree.New(btreeDegree),
		back:  back,
		flush: flush,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b)
}

// Write syncs with the underlying store.
// And then cleans up
func (b *BTreeCacheWrap) Write() error {
	var err error
	b.bt.Ascend(func(i btree.Item) bool {
		it := i.(item)
		if it.deleted {
			err = b.flush.Delete(it.key)
		} else {
			err = b.flush.Set(it.key, it.value)
		}
		return err == nil
	})
	if err != nil {
		return err
	}
	b.Discard()
	return nil
}

// Discard invalidates this CacheWrap and releases all data
func (b *BTreeCacheWrap) Discard() {
	b.bt = btree.New(btreeDegree)
}

// Set writes to the BTree
func (b *BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(item{key: copyBytes(key), value: copyBytes(value)})
	return nil
}

// Delete marks the key as deleted in the BTree
func (b *BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(item{key: copyBytes(key), deleted: true})
	return nil
}

// Get reads from btree if there, else backing store
func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if res := b.bt.Get(item{key: key}); res != nil {
		it := res.(item)
		if it.deleted {
			return nil, nil
		}
		return it.value, nil
	}
	return b.back.Get(key)
}

// Has reads from btree if there, else backing store
func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	if res := b.bt.Get(item{key: key}); res != nil {
		return !res.(item).deleted, nil
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	merged, err := b.merged(start, end)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(merged), nil
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	merged, err := b.merged(start, end)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(reverse(merged)), nil
}

func (b *BTreeCacheWrap) merged(start, end []byte) ([]Model, error) {
	parentIter, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	parent, err := ReadAll(parentIter)
	if err != nil {
		return nil, err
	}

	var cached []item
	collect := func(i btree.Item) bool {
		cached = append(cached, i.(item))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(collect)
	case start == nil:
		b.bt.AscendLessThan(item{key: end}, collect)
	case end == nil:
		b.bt.AscendGreaterOrEqual(item{key: start}, collect)
	default:
		b.bt.AscendRange(item{key: start}, item{key: end}, collect)
	}
	return mergeAscending(parent, cached), nil
}

// item is stored in the btree. A deleted item shadows any value of the
// backing store.
type item struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = item{}

// Less returns true iff second argument is greater than first
func (i item) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(item).key) < 0
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cpy := make([]byte, len(b))
	copy(cpy, b)
	return cpy
}
