package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/coin"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/x/bank"
)

func cmdSend(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Send funds from the signer account to another account.
`)
		fl.PrintDefaults()
	}
	var (
		s      = signerFlags(fl)
		to     descrow.Address
		amount coin.Amount
		memoFl = fl.String("memo", "", "Optional note attached to the transfer.")
	)
	fl.Var(&to, "to", "Address of the recipient.")
	fl.Var(&amount, "amount", "Amount to send.")
	fl.Parse(args)

	key, err := s.loadKey(*s.key)
	if err != nil {
		return err
	}
	return s.submit(output, &bank.SendMsg{
		Src:    key.PublicKey().Address(),
		Dest:   to,
		Amount: amount,
		Memo:   *memoFl,
	})
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Show the balance of an account. Use either an address or the name of a key.
`)
		fl.PrintDefaults()
	}
	var (
		n      = nodeFlags(fl)
		addr   descrow.Address
		nameFl = fl.String("name", "", "Name of a key in the home directory.")
	)
	fl.Var(&addr, "address", "Address of the account.")
	fl.Parse(args)

	if *nameFl != "" {
		key, err := n.loadKey(*nameFl)
		if err != nil {
			return err
		}
		addr = key.PublicKey().Address()
	}
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}

	_, db, err := n.open()
	if err != nil {
		return err
	}
	defer db.Close()

	amount, err := bank.NewController(bank.NewBucket()).Balance(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		amount = 0
	case err != nil:
		return err
	}
	return writeJSON(output, map[string]interface{}{
		"address": addr,
		"balance": amount,
	})
}
