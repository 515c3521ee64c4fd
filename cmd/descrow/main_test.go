package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/weavetest/assert"
)

func TestMain(m *testing.M) {
	logOutput = ioutil.Discard
	os.Exit(m.Run())
}

// run executes a command and decodes its JSON output into dest.
func run(t testing.TB, dest interface{}, name string, args ...string) {
	t.Helper()
	var out bytes.Buffer
	if err := commands[name](nil, &out, args); err != nil {
		t.Fatalf("%s %v: %s", name, args, err)
	}
	if dest == nil {
		return
	}
	if err := json.Unmarshal(out.Bytes(), dest); err != nil {
		t.Fatalf("cannot decode %s output %q: %s", name, out.String(), err)
	}
}

func newHome(t testing.TB) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "descrow")
	if err != nil {
		t.Fatalf("cannot create home: %s", err)
	}
	return home, func() { os.RemoveAll(home) }
}

// keygen creates a key and returns its hex address.
func keygen(t testing.TB, home, name string) string {
	t.Helper()
	var info keyInfo
	run(t, &info, "keygen", "-home", home, "-name", name)
	return info.Address
}

func writeGenesis(t testing.TB, home string, funded map[string]uint64) string {
	t.Helper()
	type account struct {
		Address string `json:"address"`
		Amount  uint64 `json:"amount"`
	}
	var accounts []account
	for addr, amount := range funded {
		accounts = append(accounts, account{Address: addr, Amount: amount})
	}
	raw, err := json.Marshal(map[string]interface{}{
		"chain_id":    "escrow-test-chain",
		"app_options": map[string]interface{}{"bank": accounts},
	})
	if err != nil {
		t.Fatalf("cannot serialize genesis: %s", err)
	}
	path := filepath.Join(home, "genesis.json")
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		t.Fatalf("cannot write genesis: %s", err)
	}
	return path
}

func balance(t testing.TB, home, name string) uint64 {
	t.Helper()
	var res struct {
		Balance uint64 `json:"balance"`
	}
	run(t, &res, "balance", "-home", home, "-name", name)
	return res.Balance
}

func TestDeliveryScenario(t *testing.T) {
	home, cleanup := newHome(t)
	defer cleanup()

	buyer := keygen(t, home, "buyer")
	transporter := keygen(t, home, "transporter")
	seller := keygen(t, home, "seller")

	var chain map[string]string
	run(t, &chain, "init", "-home", home, "-genesis", writeGenesis(t, home, map[string]uint64{buyer: 5000}))
	assert.Equal(t, "escrow-test-chain", chain["chain_id"])

	var created txResult
	run(t, &created, "create", "-home", home, "-key", "buyer", "-transporter", transporter)
	assert.Equal(t, uint64(1), created.EscrowID)
	assert.Equal(t, int64(1), created.Height)
	id := fmt.Sprint(created.EscrowID)

	run(t, nil, "deposit", "-home", home, "-key", "buyer", "-escrow", id, "-amount", "1000")
	assert.Equal(t, uint64(4000), balance(t, home, "buyer"))

	run(t, nil, "submit-proof", "-home", home, "-key", "transporter", "-escrow", id, "-note", "parcel 42 left at the door")

	var view escrowView
	run(t, &view, "show", "-home", home, "-escrow", id)
	assert.Equal(t, true, view.Delivered)
	assert.Equal(t, 64, len(view.ProofOfDelivery))
	if view.DeliveryTimestamp == nil {
		t.Fatal("delivery timestamp not set")
	}

	run(t, nil, "confirm", "-home", home, "-key", "buyer", "-escrow", id)

	var released txResult
	run(t, &released, "release", "-home", home, "-key", "seller", "-escrow", id, "-seller", seller)
	assert.Equal(t, int64(5), released.Height)

	assert.Equal(t, uint64(100), balance(t, home, "transporter"))
	assert.Equal(t, uint64(900), balance(t, home, "seller"))
	assert.Equal(t, uint64(4000), balance(t, home, "buyer"))

	run(t, &view, "show", "-home", home, "-escrow", id)
	assert.Equal(t, uint64(0), uint64(view.Balance))
	assert.Equal(t, buyer, view.Buyer.String())
}

func TestRefundAndSend(t *testing.T) {
	home, cleanup := newHome(t)
	defer cleanup()

	buyer := keygen(t, home, "buyer")
	friend := keygen(t, home, "friend")
	transporter := keygen(t, home, "transporter")
	run(t, nil, "init", "-home", home, "-genesis", writeGenesis(t, home, map[string]uint64{buyer: 300}))

	run(t, nil, "send", "-home", home, "-key", "buyer", "-to", friend, "-amount", "100")
	assert.Equal(t, uint64(100), balance(t, home, "friend"))

	var created txResult
	run(t, &created, "create", "-home", home, "-key", "friend", "-transporter", transporter)
	id := fmt.Sprint(created.EscrowID)
	run(t, nil, "deposit", "-home", home, "-key", "friend", "-escrow", id, "-amount", "60")
	assert.Equal(t, uint64(40), balance(t, home, "friend"))

	run(t, nil, "refund", "-home", home, "-key", "friend", "-escrow", id)
	assert.Equal(t, uint64(100), balance(t, home, "friend"))
	assert.Equal(t, uint64(200), balance(t, home, "buyer"))
}

func TestCommandFailures(t *testing.T) {
	home, cleanup := newHome(t)
	defer cleanup()

	buyer := keygen(t, home, "buyer")
	transporter := keygen(t, home, "transporter")

	var out bytes.Buffer
	err := cmdKeygen(nil, &out, []string{"-home", home, "-name", "buyer"})
	if err == nil {
		t.Fatal("overwriting a key must fail")
	}

	err = cmdCreateEscrow(nil, &out, []string{"-home", home, "-key", "buyer", "-transporter", transporter})
	assert.IsErr(t, errors.ErrInvalidState, err)

	genesis := writeGenesis(t, home, map[string]uint64{buyer: 10})
	run(t, nil, "init", "-home", home, "-genesis", genesis)
	err = cmdInit(nil, &out, []string{"-home", home, "-genesis", genesis})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	var created txResult
	run(t, &created, "create", "-home", home, "-key", "buyer", "-transporter", transporter)
	id := fmt.Sprint(created.EscrowID)

	err = cmdDeposit(nil, &out, []string{"-home", home, "-key", "buyer", "-escrow", id, "-amount", "11"})
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	// The buyer is not allowed to prove the delivery.
	err = cmdSubmitProof(nil, &out, []string{"-home", home, "-key", "buyer", "-escrow", id, "-note", "fake"})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	err = cmdSubmitProof(nil, &out, []string{"-home", home, "-key", "transporter", "-escrow", id, "-note", "x", "-proof", "aa"})
	assert.IsErr(t, errors.ErrInvalidInput, err)

	err = cmdShowEscrow(nil, &out, []string{"-home", home, "-escrow", "99"})
	assert.IsErr(t, errors.ErrNotFound, err)

	var res struct {
		Balance uint64 `json:"balance"`
	}
	run(t, &res, "balance", "-home", home, "-address", transporter)
	assert.Equal(t, uint64(0), res.Balance)
}
