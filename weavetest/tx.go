package weavetest

import (
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/orm"
)

// Tx is a transaction carrying a single message. If Err is set, it is
// returned together with the message.
type Tx struct {
	Msg descrow.Msg
	Err error
}

var _ descrow.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (descrow.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg is a message routed by RoutePath. Its serialized form is kept as is
// and Err, if set, is returned by every method that can fail.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ descrow.Msg = (*Msg)(nil)

func (m *Msg) Path() string    { return m.RoutePath }
func (m *Msg) Validate() error { return m.Err }

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

// SequenceID returns the key of the n-th entity created in a bucket, for
// example the id of the n-th escrow.
func SequenceID(n uint64) []byte {
	return orm.EncodeSequence(n)
}
