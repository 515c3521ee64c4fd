package descrow

import (
	"reflect"

	"github.com/iov-one/descrow/errors"
)

// Msg is a request for a single state transition, for example depositing
// into an escrow. Who sent it is known from the wrapping Tx only.
type Msg interface {
	Persistent

	// Path routes the message to its handler. It is made of the
	// extension name and the operation, like "escrow/release".
	Path() string

	// Validate checks the message alone, without looking at the state.
	Validate() error
}

// Marshaller serializes to the binary wire format.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a Marshaller that can also be decoded. Unmarshal needs a
// pointer receiver, so this is a separate interface.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits: one message plus whatever the
// decorators need to authenticate it, like signatures.
type Tx interface {
	Persistent

	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or "(missing)" for logging
// purposes.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into destination, which must be a
// pointer of the same type as the message. The message is validated first.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}

	v := reflect.ValueOf(destination)
	if v.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrHuman, "destination must be a pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() != reflect.Ptr {
		return errors.Wrapf(errors.ErrHuman, "message of %T is not a pointer", msg)
	}
	if src.Type() != v.Type() {
		return errors.Wrapf(errors.ErrInvalidType, "want %T message, got %T", destination, msg)
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	v.Elem().Set(src.Elem())
	return nil
}

// TxDecoder decodes the bytes sent by a client.
type TxDecoder func(txBytes []byte) (Tx, error)
