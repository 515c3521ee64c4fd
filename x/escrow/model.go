package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/orm"
)

const (
	// BucketName is where we store the escrows
	BucketName = "escrow"
)

// Escrow is the state of a single delivery escrow.
type Escrow struct {
	Delivered   bool            `protobuf:"varint,1,opt,name=delivered,proto3" json:"delivered,omitempty"`
	Balance     coin.Amount     `protobuf:"varint,2,opt,name=balance,proto3,casttype=github.com/iov-one/descrow/coin.Amount" json:"balance"`
	Buyer       descrow.Address `protobuf:"bytes,3,opt,name=buyer,proto3,casttype=github.com/iov-one/descrow.Address" json:"buyer"`
	Transporter descrow.Address `protobuf:"bytes,4,opt,name=transporter,proto3,casttype=github.com/iov-one/descrow.Address" json:"transporter"`
	// ProofOfDelivery is nil until a proof is submitted.
	ProofOfDelivery   []byte           `protobuf:"bytes,5,opt,name=proof_of_delivery,json=proofOfDelivery,proto3" json:"proof_of_delivery,omitempty"`
	DeliveryTimestamp descrow.UnixTime `protobuf:"varint,6,opt,name=delivery_timestamp,json=deliveryTimestamp,proto3,casttype=github.com/iov-one/descrow.UnixTime" json:"delivery_timestamp,omitempty"`
	TimeoutDuration   uint64           `protobuf:"varint,7,opt,name=timeout_duration,json=timeoutDuration,proto3" json:"timeout_duration"`
	Dispute           bool             `protobuf:"varint,8,opt,name=dispute,proto3" json:"dispute,omitempty"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Marshal() ([]byte, error) {
	return proto.Marshal((*escrowPB)(e))
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*escrowPB)(e))
}

// escrowPB is the codec view of Escrow. It has no Marshal method for gogo
// protobuf to delegate to.
type escrowPB Escrow

func (m *escrowPB) Reset()         { *m = escrowPB{} }
func (m *escrowPB) String() string { return proto.CompactTextString(m) }
func (*escrowPB) ProtoMessage()    {}

// Validate ensures the escrow is in a state reachable by its operations.
func (e *Escrow) Validate() error {
	if err := e.Buyer.Validate(); err != nil {
		return errors.Wrap(err, "buyer")
	}
	if err := e.Transporter.Validate(); err != nil {
		return errors.Wrap(err, "transporter")
	}
	if err := e.DeliveryTimestamp.Validate(); err != nil {
		return errors.Wrap(err, "delivery timestamp")
	}
	if e.ProofOfDelivery != nil && !e.Delivered {
		return errors.Wrap(errors.ErrInvalidModel, "proof without delivery")
	}
	if e.Dispute && !e.Delivered {
		return errors.Wrap(errors.ErrInvalidModel, "dispute without delivery")
	}
	return nil
}

// DeliveryTime returns the time the proof of delivery was submitted. It is
// only known if a proof is present.
func (e *Escrow) DeliveryTime() (descrow.UnixTime, bool) {
	if e.ProofOfDelivery == nil {
		return 0, false
	}
	return e.DeliveryTimestamp, true
}

// Condition returns the condition of the custody account of the escrow with
// given id.
func Condition(id []byte) descrow.Condition {
	return descrow.NewCondition("escrow", "seq", id)
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Escrow{}),
	}
}

// Create stores a new escrow under the next id.
func (b Bucket) Create(db descrow.KVStore, e *Escrow) ([]byte, error) {
	return b.Put(db, nil, e)
}

// Load returns the escrow with given id.
func (b Bucket) Load(db descrow.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	var e Escrow
	if err := b.One(db, id, &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %X", id)
	}
	return &e, nil
}
