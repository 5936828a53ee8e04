package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/crypto"
	"github.com/iov-one/liquid/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx. It returns the
// list of signer conditions (possibly empty), or an error if any signature
// is invalid.
func VerifyTxSignatures(db liquid.KVStore, tx SignedTx, chainID string) ([]liquid.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]liquid.Condition, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against sign bytes and increments
// the nonce of the signer.
func VerifySignature(db liquid.KVStore, sig *StdSignature, signBytes []byte, chainID string) (liquid.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	bucket := NewBucket()
	user, err := loadUser(db, bucket, sig.Pubkey)
	if err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest of the bytes a signer commits
// to. The digest is computed over
//
//	SignCodeV1 | len(chainID) as uint8 | chainID | seq as big endian uint64 | signBytes
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !liquid.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{uint8(len(chainID))})
	h.Write([]byte(chainID))
	h.Write(nonce[:])
	h.Write(signBytes)
	return h.Sum(nil), nil
}

// SignTx creates a signature for the given tx
func SignTx(signer *crypto.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(signBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(toSign)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Sequence:  seq,
		Pubkey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}
