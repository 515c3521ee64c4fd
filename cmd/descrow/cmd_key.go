package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/descrow/crypto"
)

type keyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key and store it in the home directory.

This command fails if a key with the same name already exists.
`)
		fl.PrintDefaults()
	}
	var (
		n      = nodeFlags(fl)
		nameFl = fl.String("name", "default", "Name of the key.")
	)
	fl.Parse(args)

	path := n.keyPath(*nameFl)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cannot create key directory: %s", err)
	}

	key := crypto.GenPrivKeyEd25519()
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()
	if _, err := fd.Write(key.Ed25519); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}

	return writeJSON(output, keyInfo{
		Name:    *nameFl,
		Address: key.PublicKey().Address().String(),
	})
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the address of a private key stored in the home directory.
`)
		fl.PrintDefaults()
	}
	var (
		n      = nodeFlags(fl)
		nameFl = fl.String("name", "default", "Name of the key.")
	)
	fl.Parse(args)

	key, err := n.loadKey(*nameFl)
	if err != nil {
		return err
	}
	return writeJSON(output, keyInfo{
		Name:    *nameFl,
		Address: key.PublicKey().Address().String(),
	})
}
