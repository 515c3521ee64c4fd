package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/orm"
	"github.com/iov-one/descrow/x/escrow"
	"golang.org/x/crypto/blake2b"
)

// escrowCmd returns a command that signs and submits a message built from
// the escrow id alone.
func escrowCmd(doc string, build func(id []byte) descrow.Msg) func(io.Reader, io.Writer, []string) error {
	return func(input io.Reader, output io.Writer, args []string) error {
		fl := flag.NewFlagSet("", flag.ExitOnError)
		fl.Usage = func() {
			fmt.Fprintln(flag.CommandLine.Output(), doc)
			fl.PrintDefaults()
		}
		var (
			s        = signerFlags(fl)
			escrowFl = flSeq(fl, "escrow", "", "ID of the escrow.")
		)
		fl.Parse(args)
		return s.submit(output, build(*escrowFl))
	}
}

var (
	cmdMarkDelivered = escrowCmd(`
Mark the delivery of an escrow as done. Anyone can do this and no proof is
required.`, func(id []byte) descrow.Msg { return &escrow.MarkDeliveredMsg{EscrowID: id} })

	cmdConfirmDelivery = escrowCmd(`
Confirm the submitted proof of delivery. Only the buyer can confirm and a
confirmation clears a dispute.`, func(id []byte) descrow.Msg { return &escrow.ConfirmDeliveryMsg{EscrowID: id} })

	cmdRaiseDispute = escrowCmd(`
Dispute a delivered escrow. Only the buyer can dispute. A dispute does not
prevent a release.`, func(id []byte) descrow.Msg { return &escrow.RaiseDisputeMsg{EscrowID: id} })

	cmdRefund = escrowCmd(`
Return all funds of an escrow to the buyer. Only the buyer can request a
refund and only before the delivery.`, func(id []byte) descrow.Msg { return &escrow.RefundMsg{EscrowID: id} })
)

func cmdCreateEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a new escrow without funds. The id of the new escrow is returned.
`)
		fl.PrintDefaults()
	}
	var (
		s           = signerFlags(fl)
		buyer       descrow.Address
		transporter descrow.Address
	)
	fl.Var(&buyer, "buyer", "Address of the buyer. The signer is the buyer if not set.")
	fl.Var(&transporter, "transporter", "Address of the transporter.")
	fl.Parse(args)

	if buyer == nil {
		key, err := s.loadKey(*s.key)
		if err != nil {
			return err
		}
		buyer = key.PublicKey().Address()
	}
	return s.submit(output, &escrow.CreateMsg{Buyer: buyer, Transporter: transporter})
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Move funds of the signer into an escrow.
`)
		fl.PrintDefaults()
	}
	var (
		s        = signerFlags(fl)
		escrowFl = flSeq(fl, "escrow", "", "ID of the escrow.")
		amount   coin.Amount
	)
	fl.Var(&amount, "amount", "Amount to deposit.")
	fl.Parse(args)

	return s.submit(output, &escrow.DepositMsg{EscrowID: *escrowFl, Amount: amount})
}

func cmdSubmitProof(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Submit a proof of delivery. Anyone but the buyer can submit it.

The proof is a 32 byte hash. Either provide it hex encoded or provide a note
that is hashed with blake2b-256.
`)
		fl.PrintDefaults()
	}
	var (
		s        = signerFlags(fl)
		escrowFl = flSeq(fl, "escrow", "", "ID of the escrow.")
		proofFl  = flHex(fl, "proof", "", "Hex encoded proof of delivery.")
		noteFl   = fl.String("note", "", "Delivery note used to compute the proof.")
	)
	fl.Parse(args)

	proof := *proofFl
	switch {
	case len(proof) != 0 && *noteFl != "":
		return errors.Wrap(errors.ErrInvalidInput, "use either proof or note")
	case *noteFl != "":
		sum := blake2b.Sum256([]byte(*noteFl))
		proof = sum[:]
	}
	return s.submit(output, &escrow.SubmitProofMsg{EscrowID: *escrowFl, Proof: proof})
}

func cmdRelease(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Release the funds of a delivered escrow. The transporter receives 10% and the
seller the rest. Anyone can release.
`)
		fl.PrintDefaults()
	}
	var (
		s        = signerFlags(fl)
		escrowFl = flSeq(fl, "escrow", "", "ID of the escrow.")
		seller   descrow.Address
	)
	fl.Var(&seller, "seller", "Address receiving the seller share.")
	fl.Parse(args)

	return s.submit(output, &escrow.ReleaseMsg{EscrowID: *escrowFl, Seller: seller})
}

// escrowView is the JSON presentation of an escrow.
type escrowView struct {
	ID                uint64            `json:"id"`
	Custody           descrow.Address   `json:"custody"`
	Delivered         bool              `json:"delivered"`
	Balance           coin.Amount       `json:"balance"`
	Buyer             descrow.Address   `json:"buyer"`
	Transporter       descrow.Address   `json:"transporter"`
	ProofOfDelivery   string            `json:"proof_of_delivery,omitempty"`
	DeliveryTimestamp *descrow.UnixTime `json:"delivery_timestamp,omitempty"`
	TimeoutDuration   uint64            `json:"timeout_duration"`
	Dispute           bool              `json:"dispute"`
}

func cmdShowEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Show the state of an escrow.
`)
		fl.PrintDefaults()
	}
	var (
		n        = nodeFlags(fl)
		escrowFl = flSeq(fl, "escrow", "", "ID of the escrow.")
	)
	fl.Parse(args)

	_, db, err := n.open()
	if err != nil {
		return err
	}
	defer db.Close()

	id := *escrowFl
	e, err := escrow.NewBucket().Load(db, id)
	if err != nil {
		return err
	}
	seq, err := orm.DecodeSequence(id)
	if err != nil {
		return err
	}
	view := escrowView{
		ID:              seq,
		Custody:         escrow.Condition(id).Address(),
		Delivered:       e.IsDelivered(),
		Balance:         e.Balance,
		Buyer:           e.Buyer,
		Transporter:     e.Transporter,
		TimeoutDuration: e.TimeoutDuration,
		Dispute:         e.Dispute,
	}
	if when, ok := e.DeliveryTime(); ok {
		view.ProofOfDelivery = fmt.Sprintf("%x", e.ProofOfDelivery)
		view.DeliveryTimestamp = &when
	}
	return writeJSON(output, view)
}
