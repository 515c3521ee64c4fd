package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
)

const (
	pathCreate          = "escrow/create"
	pathDeposit         = "escrow/deposit"
	pathMarkDelivered   = "escrow/mark_delivered"
	pathSubmitProof     = "escrow/submit_proof"
	pathConfirmDelivery = "escrow/confirm"
	pathRaiseDispute    = "escrow/dispute"
	pathRelease         = "escrow/release"
	pathRefund          = "escrow/refund"

	// ProofLength is the size of a proof of delivery hash.
	ProofLength = 32
)

// CreateMsg creates a new escrow without funds.
type CreateMsg struct {
	Buyer       descrow.Address `protobuf:"bytes,1,opt,name=buyer,proto3,casttype=github.com/iov-one/descrow.Address" json:"buyer"`
	Transporter descrow.Address `protobuf:"bytes,2,opt,name=transporter,proto3,casttype=github.com/iov-one/descrow.Address" json:"transporter"`
}

// DepositMsg moves the amount from the signer into the escrow.
type DepositMsg struct {
	EscrowID []byte      `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id"`
	Amount   coin.Amount `protobuf:"varint,2,opt,name=amount,proto3,casttype=github.com/iov-one/descrow/coin.Amount" json:"amount"`
}

// MarkDeliveredMsg marks the delivery as done without a proof.
type MarkDeliveredMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id"`
}

// SubmitProofMsg provides the hash of a proof of delivery.
type SubmitProofMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id"`
	Proof    []byte `protobuf:"bytes,2,opt,name=proof,proto3" json:"proof"`
}

// ConfirmDeliveryMsg is the buyer accepting the proof of delivery.
type ConfirmDeliveryMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id"`
}

// RaiseDisputeMsg is the buyer disputing the delivery.
type RaiseDisputeMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id"`
}

// ReleaseMsg pays out a delivered escrow.
type ReleaseMsg struct {
	EscrowID []byte          `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id"`
	Seller   descrow.Address `protobuf:"bytes,2,opt,name=seller,proto3,casttype=github.com/iov-one/descrow.Address" json:"seller"`
}

// RefundMsg returns the funds of an undelivered escrow to the buyer.
type RefundMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

func (m *DepositMsg) Reset()         { *m = DepositMsg{} }
func (m *DepositMsg) String() string { return proto.CompactTextString(m) }
func (*DepositMsg) ProtoMessage()    {}

func (m *MarkDeliveredMsg) Reset()         { *m = MarkDeliveredMsg{} }
func (m *MarkDeliveredMsg) String() string { return proto.CompactTextString(m) }
func (*MarkDeliveredMsg) ProtoMessage()    {}

func (m *SubmitProofMsg) Reset()         { *m = SubmitProofMsg{} }
func (m *SubmitProofMsg) String() string { return proto.CompactTextString(m) }
func (*SubmitProofMsg) ProtoMessage()    {}

func (m *ConfirmDeliveryMsg) Reset()         { *m = ConfirmDeliveryMsg{} }
func (m *ConfirmDeliveryMsg) String() string { return proto.CompactTextString(m) }
func (*ConfirmDeliveryMsg) ProtoMessage()    {}

func (m *RaiseDisputeMsg) Reset()         { *m = RaiseDisputeMsg{} }
func (m *RaiseDisputeMsg) String() string { return proto.CompactTextString(m) }
func (*RaiseDisputeMsg) ProtoMessage()    {}

func (m *ReleaseMsg) Reset()         { *m = ReleaseMsg{} }
func (m *ReleaseMsg) String() string { return proto.CompactTextString(m) }
func (*ReleaseMsg) ProtoMessage()    {}

func (m *RefundMsg) Reset()         { *m = RefundMsg{} }
func (m *RefundMsg) String() string { return proto.CompactTextString(m) }
func (*RefundMsg) ProtoMessage()    {}

var (
	_ descrow.Msg = (*CreateMsg)(nil)
	_ descrow.Msg = (*DepositMsg)(nil)
	_ descrow.Msg = (*MarkDeliveredMsg)(nil)
	_ descrow.Msg = (*SubmitProofMsg)(nil)
	_ descrow.Msg = (*ConfirmDeliveryMsg)(nil)
	_ descrow.Msg = (*RaiseDisputeMsg)(nil)
	_ descrow.Msg = (*ReleaseMsg)(nil)
	_ descrow.Msg = (*RefundMsg)(nil)
)

func (CreateMsg) Path() string          { return pathCreate }
func (DepositMsg) Path() string         { return pathDeposit }
func (MarkDeliveredMsg) Path() string   { return pathMarkDelivered }
func (SubmitProofMsg) Path() string     { return pathSubmitProof }
func (ConfirmDeliveryMsg) Path() string { return pathConfirmDelivery }
func (RaiseDisputeMsg) Path() string    { return pathRaiseDispute }
func (ReleaseMsg) Path() string         { return pathRelease }
func (RefundMsg) Path() string          { return pathRefund }

func (m *CreateMsg) Marshal() ([]byte, error)          { return proto.Marshal((*createMsgPB)(m)) }
func (m *DepositMsg) Marshal() ([]byte, error)         { return proto.Marshal((*depositMsgPB)(m)) }
func (m *MarkDeliveredMsg) Marshal() ([]byte, error)   { return proto.Marshal((*markDeliveredMsgPB)(m)) }
func (m *SubmitProofMsg) Marshal() ([]byte, error)     { return proto.Marshal((*submitProofMsgPB)(m)) }
func (m *ConfirmDeliveryMsg) Marshal() ([]byte, error) { return proto.Marshal((*confirmDeliveryMsgPB)(m)) }
func (m *RaiseDisputeMsg) Marshal() ([]byte, error)    { return proto.Marshal((*raiseDisputeMsgPB)(m)) }
func (m *ReleaseMsg) Marshal() ([]byte, error)         { return proto.Marshal((*releaseMsgPB)(m)) }
func (m *RefundMsg) Marshal() ([]byte, error)          { return proto.Marshal((*refundMsgPB)(m)) }

func (m *CreateMsg) Unmarshal(raw []byte) error          { return proto.Unmarshal(raw, (*createMsgPB)(m)) }
func (m *DepositMsg) Unmarshal(raw []byte) error         { return proto.Unmarshal(raw, (*depositMsgPB)(m)) }
func (m *MarkDeliveredMsg) Unmarshal(raw []byte) error   { return proto.Unmarshal(raw, (*markDeliveredMsgPB)(m)) }
func (m *SubmitProofMsg) Unmarshal(raw []byte) error     { return proto.Unmarshal(raw, (*submitProofMsgPB)(m)) }
func (m *ConfirmDeliveryMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*confirmDeliveryMsgPB)(m)) }
func (m *RaiseDisputeMsg) Unmarshal(raw []byte) error    { return proto.Unmarshal(raw, (*raiseDisputeMsgPB)(m)) }
func (m *ReleaseMsg) Unmarshal(raw []byte) error         { return proto.Unmarshal(raw, (*releaseMsgPB)(m)) }
func (m *RefundMsg) Unmarshal(raw []byte) error          { return proto.Unmarshal(raw, (*refundMsgPB)(m)) }

// Codec views of the messages. gogo protobuf calls back the Marshal method of
// a value that has one, so the codec only sees these method-less copies.
type (
	createMsgPB          CreateMsg
	depositMsgPB         DepositMsg
	markDeliveredMsgPB   MarkDeliveredMsg
	submitProofMsgPB     SubmitProofMsg
	confirmDeliveryMsgPB ConfirmDeliveryMsg
	raiseDisputeMsgPB    RaiseDisputeMsg
	releaseMsgPB         ReleaseMsg
	refundMsgPB          RefundMsg
)

func (m *createMsgPB) Reset()         { *m = createMsgPB{} }
func (m *createMsgPB) String() string { return proto.CompactTextString(m) }
func (*createMsgPB) ProtoMessage()    {}

func (m *depositMsgPB) Reset()         { *m = depositMsgPB{} }
func (m *depositMsgPB) String() string { return proto.CompactTextString(m) }
func (*depositMsgPB) ProtoMessage()    {}

func (m *markDeliveredMsgPB) Reset()         { *m = markDeliveredMsgPB{} }
func (m *markDeliveredMsgPB) String() string { return proto.CompactTextString(m) }
func (*markDeliveredMsgPB) ProtoMessage()    {}

func (m *submitProofMsgPB) Reset()         { *m = submitProofMsgPB{} }
func (m *submitProofMsgPB) String() string { return proto.CompactTextString(m) }
func (*submitProofMsgPB) ProtoMessage()    {}

func (m *confirmDeliveryMsgPB) Reset()         { *m = confirmDeliveryMsgPB{} }
func (m *confirmDeliveryMsgPB) String() string { return proto.CompactTextString(m) }
func (*confirmDeliveryMsgPB) ProtoMessage()    {}

func (m *raiseDisputeMsgPB) Reset()         { *m = raiseDisputeMsgPB{} }
func (m *raiseDisputeMsgPB) String() string { return proto.CompactTextString(m) }
func (*raiseDisputeMsgPB) ProtoMessage()    {}

func (m *releaseMsgPB) Reset()         { *m = releaseMsgPB{} }
func (m *releaseMsgPB) String() string { return proto.CompactTextString(m) }
func (*releaseMsgPB) ProtoMessage()    {}

func (m *refundMsgPB) Reset()         { *m = refundMsgPB{} }
func (m *refundMsgPB) String() string { return proto.CompactTextString(m) }
func (*refundMsgPB) ProtoMessage()    {}

// Validate ensures both parties are set.
func (m *CreateMsg) Validate() error {
	if err := m.Buyer.Validate(); err != nil {
		return errors.Wrap(err, "buyer")
	}
	if err := m.Transporter.Validate(); err != nil {
		return errors.Wrap(err, "transporter")
	}
	return nil
}

func (m *DepositMsg) Validate() error {
	if err := validateID(m.EscrowID); err != nil {
		return err
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "deposit must be positive")
	}
	return nil
}

func (m *MarkDeliveredMsg) Validate() error {
	return validateID(m.EscrowID)
}

func (m *SubmitProofMsg) Validate() error {
	if err := validateID(m.EscrowID); err != nil {
		return err
	}
	if len(m.Proof) != ProofLength {
		return errors.Wrapf(errors.ErrInvalidInput, "proof must be %d bytes", ProofLength)
	}
	return nil
}

func (m *ConfirmDeliveryMsg) Validate() error {
	return validateID(m.EscrowID)
}

func (m *RaiseDisputeMsg) Validate() error {
	return validateID(m.EscrowID)
}

func (m *ReleaseMsg) Validate() error {
	if err := validateID(m.EscrowID); err != nil {
		return err
	}
	return errors.Wrap(m.Seller.Validate(), "seller")
}

func (m *RefundMsg) Validate() error {
	return validateID(m.EscrowID)
}

// validateID returns an error if this is not an 8-byte ID
// as produced by the bucket id sequence
func validateID(id []byte) error {
	if id == nil {
		return errors.Wrap(errors.ErrEmpty, "escrow id")
	}
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInvalidInput, "escrow id: %X", id)
	}
	return nil
}
