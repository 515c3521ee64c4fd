package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
)

// commands is a register of all availables commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program and the command name. It parses the arguments with
// the flag package and writes its result as JSON to the output.
//
// Every command that changes the state signs a single transaction with a
// key kept in the home directory and executes it as a new block:
//
//   $ descrow deposit -key buyer -escrow 1 -amount 1000
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"balance":        cmdBalance,
	"confirm":        cmdConfirmDelivery,
	"create":         cmdCreateEscrow,
	"deposit":        cmdDeposit,
	"dispute":        cmdRaiseDispute,
	"init":           cmdInit,
	"keyaddr":        cmdKeyaddr,
	"keygen":         cmdKeygen,
	"mark-delivered": cmdMarkDelivered,
	"refund":         cmdRefund,
	"release":        cmdRelease,
	"send":           cmdSend,
	"show":           cmdShowEscrow,
	"submit-proof":   cmdSubmitProof,
	"version":        cmdVersion,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the delivery escrow application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		code, log := errors.ABCIInfo(err, env("DESCROW_DEBUG", "") != "")
		fmt.Fprintf(os.Stderr, "error %d: %s\n", code, log)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	return writeJSON(out, map[string]string{
		"version": descrow.Version(),
	})
}
