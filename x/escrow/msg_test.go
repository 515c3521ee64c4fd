package escrow

import (
	"testing"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/weavetest"
)

func TestMsgValidate(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	id := weavetest.SequenceID(5)

	cases := map[string]struct {
		msg     descrow.Msg
		wantErr *errors.Error
	}{
		"valid create":        {&CreateMsg{Buyer: addr, Transporter: addr}, nil},
		"create no buyer":     {&CreateMsg{Transporter: addr}, errors.ErrInvalidInput},
		"create bad carrier":  {&CreateMsg{Buyer: addr, Transporter: []byte("x")}, errors.ErrInvalidInput},
		"valid deposit":       {&DepositMsg{EscrowID: id, Amount: 1}, nil},
		"zero deposit":        {&DepositMsg{EscrowID: id}, errors.ErrInvalidAmount},
		"deposit no id":       {&DepositMsg{Amount: 1}, errors.ErrEmpty},
		"valid mark":          {&MarkDeliveredMsg{EscrowID: id}, nil},
		"mark bad id":         {&MarkDeliveredMsg{EscrowID: []byte("123")}, errors.ErrInvalidInput},
		"valid proof":         {&SubmitProofMsg{EscrowID: id, Proof: make([]byte, 32)}, nil},
		"long proof":          {&SubmitProofMsg{EscrowID: id, Proof: make([]byte, 33)}, errors.ErrInvalidInput},
		"missing proof":       {&SubmitProofMsg{EscrowID: id}, errors.ErrInvalidInput},
		"valid confirm":       {&ConfirmDeliveryMsg{EscrowID: id}, nil},
		"confirm no id":       {&ConfirmDeliveryMsg{}, errors.ErrEmpty},
		"valid dispute":       {&RaiseDisputeMsg{EscrowID: id}, nil},
		"valid release":       {&ReleaseMsg{EscrowID: id, Seller: addr}, nil},
		"release no seller":   {&ReleaseMsg{EscrowID: id}, errors.ErrInvalidInput},
		"valid refund":        {&RefundMsg{EscrowID: id}, nil},
		"refund with long id": {&RefundMsg{EscrowID: make([]byte, 9)}, errors.ErrInvalidInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %+v error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestMsgPaths(t *testing.T) {
	seen := make(map[string]bool)
	msgs := []descrow.Msg{
		&CreateMsg{}, &DepositMsg{}, &MarkDeliveredMsg{}, &SubmitProofMsg{},
		&ConfirmDeliveryMsg{}, &RaiseDisputeMsg{}, &ReleaseMsg{}, &RefundMsg{},
	}
	for _, m := range msgs {
		if seen[m.Path()] {
			t.Fatalf("duplicated path %q", m.Path())
		}
		seen[m.Path()] = true
	}
}

func TestMsgSerialization(t *testing.T) {
	msg := &SubmitProofMsg{EscrowID: weavetest.SequenceID(3), Proof: make([]byte, 32)}
	msg.Proof[31] = 7
	raw, err := msg.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var got SubmitProofMsg
	if err := got.Unmarshal(raw); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if got.String() != msg.String() {
		t.Fatalf("want %s, got %s", msg, &got)
	}
}
