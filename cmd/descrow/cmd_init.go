package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/descrow/app"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the database in the home directory with a genesis file.

The genesis file sets the chain id and the initial state of each extension:

  {
    "chain_id": "my-escrow-chain",
    "app_options": {
      "bank": [{"address": "<hex address>", "amount": 1000}],
      "escrow": [{"buyer": "<hex address>", "transporter": "<hex address>"}]
    }
  }

A database can be initialized only once.
`)
		fl.PrintDefaults()
	}
	var (
		n         = nodeFlags(fl)
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis file.")
	)
	fl.Parse(args)

	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	a, db, err := n.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := a.InitChain(gen); err != nil {
		return err
	}
	return writeJSON(output, map[string]string{"chain_id": gen.ChainID})
}
