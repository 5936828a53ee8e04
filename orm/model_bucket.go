package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/store"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	liquid.Persistent
	Validate() error
}

// ModelBucket is a collection of entities of a single type stored under a
// common key prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db liquid.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns true if an entity with given key exists.
	Has(db liquid.ReadOnlyKVStore, key []byte) (bool, error)

	// Put saves given model in the database. Model is validated before
	// being stored.
	Put(db liquid.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db liquid.KVStore, key []byte) error

	// PrefixScan returns an iterator over all entities with a key starting
	// with given prefix, in ascending key order. Empty prefix iterates
	// over the whole bucket.
	PrefixScan(db liquid.ReadOnlyKVStore, prefix []byte) (*ModelIterator, error)

	// Register exposes the bucket content via the query router under
	// the /<name> path.
	Register(name string, r liquid.QueryRouter)
}

// NewModelBucket returns a ModelBucket that stores entities of the type of
// given model. Name must be unique within the application.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
		kind:   reflect.TypeOf(m),
	}
}

type modelBucket struct {
	prefix []byte
	kind   reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) checkType(m Model) error {
	if reflect.TypeOf(m) != mb.kind {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", m, mb.kind)
	}
	return nil
}

func (mb *modelBucket) One(db liquid.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := mb.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	dest.Reset()
	return liquid.Unmarshal(raw, dest)
}

func (mb *modelBucket) Has(db liquid.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return false, errors.Wrap(err, "cannot read from the database")
	}
	return ok, nil
}

func (mb *modelBucket) Put(db liquid.KVStore, key []byte, m Model) error {
	if err := mb.checkType(m); err != nil {
		return err
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := liquid.Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db liquid.KVStore, key []byte) error {
	k := mb.dbKey(key)
	switch ok, err := db.Has(k); {
	case err != nil:
		return errors.Wrap(err, "cannot read from the database")
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.kind)
	}
	return db.Delete(k)
}

func (mb *modelBucket) PrefixScan(db liquid.ReadOnlyKVStore, prefix []byte) (*ModelIterator, error) {
	start := mb.dbKey(prefix)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	return &ModelIterator{it: it, strip: len(mb.prefix)}, nil
}

// ModelIterator loads entities one by one.
type ModelIterator struct {
	it    store.Iterator
	strip int
}

// LoadNext loads the next entity into given destination and returns its
// key, without the bucket prefix. ErrIteratorDone is returned when there
// are no more entities.
func (m *ModelIterator) LoadNext(dest Model) ([]byte, error) {
	key, raw, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	dest.Reset()
	if err := liquid.Unmarshal(raw, dest); err != nil {
		return nil, err
	}
	return key[m.strip:], nil
}

// Release releases the underlying database iterator.
func (m *ModelIterator) Release() {
	m.it.Release()
}

// prefixEnd returns the first key that does not start with given prefix.
// Nil means there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
