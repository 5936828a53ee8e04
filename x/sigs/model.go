package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/crypto"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequence is the greatest nonce a client can safely represent.
const maxSequence = (1 << 53) - 1

// UserData holds the nonce of a single signer.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

func (m *UserData) Validate() error {
	if m.Pubkey == nil {
		return errors.Wrap(errors.ErrModel, "missing public key")
	}
	if m.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return m.Pubkey.Validate()
}

// CheckAndIncrementSequence increments the sequence if it is equal to the
// expected value. Otherwise an error is returned.
func (m *UserData) CheckAndIncrementSequence(expected int64) error {
	if m.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, m.Sequence)
	}
	next := m.Sequence + 1
	if next > maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	m.Sequence = next
	return nil
}

// NewBucket returns the bucket of signers keyed by their address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// loadUser returns the signer data or a fresh record for a new signer.
func loadUser(db liquid.ReadOnlyKVStore, b orm.ModelBucket, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	switch err := b.One(db, pubkey.Address(), &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}

// NextSequence returns the nonce that the next signature of given address
// must use.
func NextSequence(db liquid.ReadOnlyKVStore, addr liquid.Address) (int64, error) {
	var u UserData
	switch err := NewBucket().One(db, addr, &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}
