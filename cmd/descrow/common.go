package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/descrow"
	descrowapp "github.com/iov-one/descrow/app"
	"github.com/iov-one/descrow/cmd/descrow/app"
	"github.com/iov-one/descrow/crypto"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/orm"
	"github.com/iov-one/descrow/store"
	"github.com/iov-one/descrow/x/escrow"
	"github.com/iov-one/descrow/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

// logOutput is where the application logs are written.
var logOutput io.Writer = os.Stderr

// node holds the flags shared by all commands that use the database.
type node struct {
	home     *string
	logLevel *string
}

func nodeFlags(fl *flag.FlagSet) node {
	return node{
		home: fl.String("home", defaultHome(),
			"Directory holding the database and the keys. You can use DESCROW_HOME environment variable to set it."),
		logLevel: fl.String("log", env("DESCROW_LOG", "error"),
			"Log level (debug, info, error or none), written to stderr."),
	}
}

func (n node) logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(logOutput))
	opt, err := log.AllowLevel(*n.logLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// open returns the application running on the database in the home
// directory. The returned store must be closed.
func (n node) open() (*descrowapp.Application, *store.LevelDB, error) {
	logger, err := n.logger()
	if err != nil {
		return nil, nil, err
	}
	db, err := app.OpenStore(*n.home)
	if err != nil {
		return nil, nil, err
	}
	return app.Application(db, logger), db, nil
}

func (n node) keyPath(name string) string {
	return filepath.Join(*n.home, "keys", name+".key")
}

func (n node) loadKey(name string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(n.keyPath(name))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "key %q: %s", name, err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "key %q is not an ed25519 private key", name)
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}

// signer holds the flags of all commands that sign a transaction.
type signer struct {
	node
	key *string
	at  *time.Time
}

func signerFlags(fl *flag.FlagSet) signer {
	return signer{
		node: nodeFlags(fl),
		key:  fl.String("key", env("DESCROW_KEY", "default"), "Name of the key that signs the transaction."),
		at:   flTime(fl, "time", "Block time in RFC3339 format. Current time is used if not set."),
	}
}

// txResult is the output of every command that executes a transaction.
type txResult struct {
	Height   int64             `json:"height"`
	EscrowID uint64            `json:"escrow_id,omitempty"`
	Data     string            `json:"data,omitempty"`
	Log      string            `json:"log,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// submit signs a transaction holding the message and executes it in a new
// block.
func (s signer) submit(output io.Writer, msg descrow.Msg) error {
	key, err := s.loadKey(*s.key)
	if err != nil {
		return err
	}
	a, db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	chainID, err := a.ChainID()
	if err != nil {
		return err
	}
	if chainID == "" {
		return errors.Wrap(errors.ErrInvalidState, "chain not initialized, run init first")
	}
	nonce, err := sigs.NextNonce(db, key.PublicKey().Address())
	if err != nil {
		return err
	}

	tx, err := app.NewTx(msg)
	if err != nil {
		return err
	}
	sig, err := sigs.SignTx(key, tx, chainID, nonce)
	if err != nil {
		return errors.Wrap(err, "cannot sign")
	}
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize")
	}

	blockTime := *s.at
	if blockTime.IsZero() {
		blockTime = time.Now()
	}
	res, err := a.DeliverTx(raw, blockTime)
	if err != nil {
		return err
	}
	height, err := a.Height()
	if err != nil {
		return err
	}

	out := txResult{
		Height: height,
		Data:   hex.EncodeToString(res.Data),
		Log:    res.Log,
		Tags:   make(map[string]string, len(res.Tags)),
	}
	for _, t := range res.Tags {
		out.Tags[string(t.Key)] = string(t.Value)
	}
	if _, ok := out.Tags[escrow.TagKey]; ok {
		if out.EscrowID, err = orm.DecodeSequence(res.Data); err != nil {
			return err
		}
	}
	return writeJSON(output, out)
}

func writeJSON(output io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}
