package bank

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/orm"
)

// BucketName is where we store the balances
const BucketName = "bank"

// Account is the balance held by a single address.
type Account struct {
	Address descrow.Address `protobuf:"bytes,1,opt,name=address,proto3,casttype=github.com/iov-one/descrow.Address" json:"address,omitempty"`
	Amount  coin.Amount     `protobuf:"varint,2,opt,name=amount,proto3,casttype=github.com/iov-one/descrow/coin.Amount" json:"amount"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return proto.Marshal((*accountPB)(a))
}

func (a *Account) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*accountPB)(a))
}

// accountPB is what the protobuf codec works on. gogo protobuf hands a value
// with a Marshal method back to that method, so the codec must never see an
// Account directly.
type accountPB Account

func (m *accountPB) Reset()         { *m = accountPB{} }
func (m *accountPB) String() string { return proto.CompactTextString(m) }
func (*accountPB) ProtoMessage()    {}

// Validate requires a valid address.
func (a *Account) Validate() error {
	return errors.Wrap(a.Address.Validate(), "address")
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Account{}),
	}
}

// Get returns the account of given address or nil if it was never funded.
func (b Bucket) Get(db descrow.ReadOnlyKVStore, addr descrow.Address) (*Account, error) {
	var a Account
	switch err := b.One(db, addr, &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// GetOrCreate returns the account of given address or a new empty one.
// A new account is not saved.
func (b Bucket) GetOrCreate(db descrow.ReadOnlyKVStore, addr descrow.Address) (*Account, error) {
	a, err := b.Get(db, addr)
	if err == nil && a == nil {
		a = &Account{Address: addr}
	}
	return a, err
}

// Save stores the account under its address.
func (b Bucket) Save(db descrow.KVStore, a *Account) error {
	_, err := b.Put(db, a.Address, a)
	return err
}
