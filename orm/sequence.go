package orm

import (
	"encoding/binary"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		id: []byte("_s." + bucket + ":" + name),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s Sequence) NextVal(db liquid.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db)
	return bz, err
}

// NextInt increments the sequence and returns its state as uint64.
func (s Sequence) NextInt(db liquid.KVStore) (uint64, error) {
	val, _, err := s.increment(db)
	return val, err
}

// Latest returns the recently returned value of the sequence without
// modifying its state.
func (s Sequence) Latest(db liquid.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw), nil
}

func (s Sequence) increment(db liquid.KVStore) (uint64, []byte, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, nil, err
	}
	if val == ^uint64(0) {
		return 0, nil, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	val++
	raw := EncodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, err
	}
	return val, raw, nil
}

// DecodeSequence reads a big endian encoded sequence value. Nil is zero.
func DecodeSequence(bz []byte) uint64 {
	if len(bz) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// EncodeSequence writes a sequence value so that byte ordering follows
// numerical ordering.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
