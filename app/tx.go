package app

import (
	"fmt"
	"reflect"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/crypto"
	"github.com/iov-one/liquid/errors"
	"github.com/iov-one/liquid/x/sigs"
)

// Tx is the transaction format accepted by the application. The message is
// kept serialized together with its routing path, so that a single envelope
// can carry any registered message.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	MsgPath    string               `protobuf:"bytes,2,opt,name=msg_path,json=msgPath,proto3" json:"msg_path,omitempty"`
	MsgBytes   []byte               `protobuf:"bytes,3,opt,name=msg_bytes,json=msgBytes,proto3" json:"msg_bytes,omitempty"`

	// msg is the decoded form of MsgBytes. It is not serialized.
	msg liquid.Msg
}

func (tx *Tx) Reset() { *tx = Tx{} }
func (tx *Tx) String() string {
	return fmt.Sprintf("Tx{%s, %d signatures}", tx.MsgPath, len(tx.Signatures))
}
func (*Tx) ProtoMessage() {}

var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg liquid.Msg) (*Tx, error) {
	raw, err := liquid.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Tx{
		MsgPath:  msg.Path(),
		MsgBytes: raw,
		msg:      msg,
	}, nil
}

// GetMsg returns the message carried by this transaction.
func (tx *Tx) GetMsg() (liquid.Msg, error) {
	if tx.msg == nil {
		return nil, errors.Wrapf(errors.ErrMsg, "message %q not decoded", tx.MsgPath)
	}
	return tx.msg, nil
}

// GetSignatures returns all signatures attached to this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the transaction serialized without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{MsgPath: tx.MsgPath, MsgBytes: tx.MsgBytes}
	return liquid.Marshal(&unsigned)
}

// Sign appends a signature of given key using the provided nonce.
func (tx *Tx) Sign(signer *crypto.PrivateKey, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// NewTxDecoder returns a decoder accepting transactions that carry any of
// given messages. Messages are matched by their path. This function panics
// if two messages share a path.
func NewTxDecoder(msgs ...liquid.Msg) liquid.TxDecoder {
	types := make(map[string]reflect.Type, len(msgs))
	for _, m := range msgs {
		t := reflect.TypeOf(m)
		if t.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("message %T must be a pointer", m))
		}
		if _, ok := types[m.Path()]; ok {
			panic(fmt.Sprintf("message path %q registered twice", m.Path()))
		}
		types[m.Path()] = t.Elem()
	}

	return func(raw []byte) (liquid.Tx, error) {
		var tx Tx
		if err := liquid.Unmarshal(raw, &tx); err != nil {
			return nil, err
		}
		t, ok := types[tx.MsgPath]
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "unknown message path %q", tx.MsgPath)
		}
		msg := reflect.New(t).Interface().(liquid.Msg)
		if err := liquid.Unmarshal(tx.MsgBytes, msg); err != nil {
			return nil, errors.Wrapf(errors.ErrMsg, "cannot decode %q message: %s", tx.MsgPath, err)
		}
		tx.msg = msg
		return &tx, nil
	}
}
