package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/x/bank"
	"github.com/iov-one/descrow/x/escrow"
	"github.com/iov-one/descrow/x/sigs"
)

// Tx is the transaction format of the application. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures      []*sigs.StdSignature       `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Create          *escrow.CreateMsg          `protobuf:"bytes,10,opt,name=create,proto3" json:"create,omitempty"`
	Deposit         *escrow.DepositMsg         `protobuf:"bytes,11,opt,name=deposit,proto3" json:"deposit,omitempty"`
	MarkDelivered   *escrow.MarkDeliveredMsg   `protobuf:"bytes,12,opt,name=mark_delivered,json=markDelivered,proto3" json:"mark_delivered,omitempty"`
	SubmitProof     *escrow.SubmitProofMsg     `protobuf:"bytes,13,opt,name=submit_proof,json=submitProof,proto3" json:"submit_proof,omitempty"`
	ConfirmDelivery *escrow.ConfirmDeliveryMsg `protobuf:"bytes,14,opt,name=confirm_delivery,json=confirmDelivery,proto3" json:"confirm_delivery,omitempty"`
	RaiseDispute    *escrow.RaiseDisputeMsg    `protobuf:"bytes,15,opt,name=raise_dispute,json=raiseDispute,proto3" json:"raise_dispute,omitempty"`
	Release         *escrow.ReleaseMsg         `protobuf:"bytes,16,opt,name=release,proto3" json:"release,omitempty"`
	Refund          *escrow.RefundMsg          `protobuf:"bytes,17,opt,name=refund,proto3" json:"refund,omitempty"`
	Send            *bank.SendMsg              `protobuf:"bytes,20,opt,name=send,proto3" json:"send,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

var _ descrow.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (descrow.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return tx, nil
}

// NewTx returns a transaction holding given message.
func NewTx(msg descrow.Msg) (*Tx, error) {
	tx := new(Tx)
	switch m := msg.(type) {
	case *escrow.CreateMsg:
		tx.Create = m
	case *escrow.DepositMsg:
		tx.Deposit = m
	case *escrow.MarkDeliveredMsg:
		tx.MarkDelivered = m
	case *escrow.SubmitProofMsg:
		tx.SubmitProof = m
	case *escrow.ConfirmDeliveryMsg:
		tx.ConfirmDelivery = m
	case *escrow.RaiseDisputeMsg:
		tx.RaiseDispute = m
	case *escrow.ReleaseMsg:
		tx.Release = m
	case *escrow.RefundMsg:
		tx.Refund = m
	case *bank.SendMsg:
		tx.Send = m
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "unsupported message %T", msg)
	}
	return tx, nil
}

// GetMsg returns the single message held by the transaction.
func (tx *Tx) GetMsg() (descrow.Msg, error) {
	var msgs []descrow.Msg
	for _, m := range []descrow.Msg{
		tx.Create, tx.Deposit, tx.MarkDelivered, tx.SubmitProof,
		tx.ConfirmDelivery, tx.RaiseDispute, tx.Release, tx.Refund, tx.Send,
	} {
		if !isNil(m) {
			msgs = append(msgs, m)
		}
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "empty transaction")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "%d messages in a transaction", len(msgs))
	}
}

// isNil returns true for a nil interface and a typed nil pointer.
func isNil(m descrow.Msg) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *escrow.CreateMsg:
		return v == nil
	case *escrow.DepositMsg:
		return v == nil
	case *escrow.MarkDeliveredMsg:
		return v == nil
	case *escrow.SubmitProofMsg:
		return v == nil
	case *escrow.ConfirmDeliveryMsg:
		return v == nil
	case *escrow.RaiseDisputeMsg:
		return v == nil
	case *escrow.ReleaseMsg:
		return v == nil
	case *escrow.RefundMsg:
		return v == nil
	case *bank.SendMsg:
		return v == nil
	}
	return false
}

// GetSignatures returns the signatures on the tx.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign: the transaction without its
// signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(tx))
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txPB)(tx))
}

// txPB is the codec view of Tx. Messages inside are still encoded by their
// own Marshal methods.
type txPB Tx

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}
