/*
Package crypto holds the ed25519 keys used to sign transactions.

A public key is exposed as a condition, so that the address of a signer is
derived the same way as the address of any other entity.
*/
package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions of public keys.
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

func (m *PublicKey) Validate() error {
	if len(m.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", len(m.Ed25519))
	}
	return nil
}

// Verify returns true if the signature was created for the message with
// the matching private key.
func (m *PublicKey) Verify(message, sig []byte) bool {
	if m.Validate() != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(m.Ed25519), message, sig)
}

// Condition encodes the public key into a condition.
func (m *PublicKey) Condition() liquid.Condition {
	return liquid.NewCondition(ExtensionName, "ed25519", m.Ed25519)
}

// Address returns the address of the signer.
func (m *PublicKey) Address() liquid.Address {
	return m.Condition().Address()
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return "PrivateKey{***}" }
func (*PrivateKey) ProtoMessage()    {}

// Sign returns the signature of the message.
func (m *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(m.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "private key length %d", len(m.Ed25519))
	}
	return ed25519.Sign(ed25519.PrivateKey(m.Ed25519), message), nil
}

// PublicKey returns the corresponding public key.
func (m *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(m.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivateKey returns a random new private key.
func GenPrivateKey() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivateKeyFromSeed deterministically generates a private key from a 32
// byte seed. Use for deterministic keys in test cases.
func PrivateKeyFromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
