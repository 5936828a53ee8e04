package liquid

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid/errors"
)

// Persistent is anything that can be serialized into the database.
//
// All state entities, messages and configurations are protobuf messages
// declared with struct tags. They are encoded with Marshal and decoded with
// Unmarshal from this package rather than with methods of their own.
type Persistent interface {
	proto.Message
}

// Validater is anything that can check its own state.
type Validater interface {
	Validate() error
}

// Msg is message for the blockchain to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	Persistent
	Validater

	// Return the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Multiple types may have the same value, and will end up at the
	// same Handler.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string
}

// Tx represent the data sent from the user to the chain.
// It includes the actual message, along with information needed
// to authenticate the sender (cryptographic signatures),
// and anything else needed to pass through middleware.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// Marshal serializes given entity using its protobuf declaration.
func Marshal(p Persistent) ([]byte, error) {
	raw, err := proto.Marshal(p)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "cannot marshal %T: %s", p, err)
	}
	return raw, nil
}

// Unmarshal loads serialized state into given entity.
func Unmarshal(raw []byte, dest Persistent) error {
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrType, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}

	// Reflection is needed here, because the message is a pointer to an
	// unknown structure and the destination is a pointer to a pointer or
	// a pointer to a structure of the same type.
	msgVal := reflect.ValueOf(msg)
	dstVal := reflect.ValueOf(destination)
	if dstVal.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	switch {
	case msgVal.Type().AssignableTo(dstVal.Elem().Type()):
		dstVal.Elem().Set(msgVal)
	case msgVal.Kind() == reflect.Ptr && msgVal.Elem().Type().AssignableTo(dstVal.Elem().Type()):
		dstVal.Elem().Set(msgVal.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
