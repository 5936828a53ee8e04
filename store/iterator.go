package store

import (
	"bytes"

	"github.com/iov-one/liquid/errors"
)

// SliceIterator wraps an Iterator over a slice of models.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Next returns the next key value pair or ErrIteratorDone.
func (s *SliceIterator) Next() ([]byte, []byte, error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release releases the Iterator.
func (s *SliceIterator) Release() {
	s.data = nil
}

// ReadAll drains given iterator and returns all models it provided. The
// iterator is released.
func ReadAll(it Iterator) ([]Model, error) {
	defer it.Release()
	var res []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, Model{Key: key, Value: value})
	}
}

// mergeAscending combines the parent content with the cached changes. Both
// slices must be sorted ascending. Cached entries shadow the parent ones and
// a cached deletion hides the parent value.
func mergeAscending(parent []Model, cached []item) []Model {
	res := make([]Model, 0, len(parent)+len(cached))
	var i, j int
	for i < len(parent) || j < len(cached) {
		switch {
		case j == len(cached):
			res = append(res, parent[i])
			i++
		case i == len(parent):
			if !cached[j].deleted {
				res = append(res, Model{Key: cached[j].key, Value: cached[j].value})
			}
			j++
		default:
			switch cmp := bytes.Compare(parent[i].Key, cached[j].key); {
			case cmp < 0:
				res = append(res, parent[i])
				i++
			case cmp > 0:
				if !cached[j].deleted {
					res = append(res, Model{Key: cached[j].key, Value: cached[j].value})
				}
				j++
			default:
				if !cached[j].deleted {
					res = append(res, Model{Key: cached[j].key, Value: cached[j].value})
				}
				i++
				j++
			}
		}
	}
	return res
}

func reverse(ms []Model) []Model {
	for i, j := 0, len(ms)-1; i < j; i, j = i+1, j-1 {
		ms[i], ms[j] = ms[j], ms[i]
	}
	return ms
}

// EmptyKVStore never holds any data, used as a base layer to test caching
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil
func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

// Has always returns false
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

// Set is a noop
func (EmptyKVStore) Set(key, value []byte) error { return nil }

// Delete is a noop
func (EmptyKVStore) Delete(key []byte) error { return nil }

// Iterator is always empty
func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// ReverseIterator is always empty
func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
