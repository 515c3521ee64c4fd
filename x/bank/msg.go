package bank

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
)

const maxMemoSize int = 128

// SendMsg moves funds from the signer's account to another one.
type SendMsg struct {
	Src    descrow.Address `protobuf:"bytes,1,opt,name=src,proto3,casttype=github.com/iov-one/descrow.Address" json:"src,omitempty"`
	Dest   descrow.Address `protobuf:"bytes,2,opt,name=dest,proto3,casttype=github.com/iov-one/descrow.Address" json:"dest,omitempty"`
	Amount coin.Amount     `protobuf:"varint,3,opt,name=amount,proto3,casttype=github.com/iov-one/descrow/coin.Amount" json:"amount"`
	Memo   string          `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

// Ensure we implement the Msg interface
var _ descrow.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "bank/send"
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgPB)(m))
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsgPB)(m))
}

type sendMsgPB SendMsg

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive SendMsg: %s", m.Amount)
	}
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := m.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInvalidInput, "memo too long")
	}
	return nil
}
