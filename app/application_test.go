package app

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/store"
	"github.com/iov-one/descrow/weavetest"
	"github.com/iov-one/descrow/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// decodeTestTx treats the raw bytes as the message path. A path starting
// with "fail" makes the handler fail after writing.
func decodeTestTx(raw []byte) (descrow.Tx, error) {
	switch {
	case len(raw) == 0:
		return nil, errors.Wrap(errors.ErrInvalidInput, "empty")
	case bytes.Equal(raw, []byte("panic")):
		panic("cannot decode")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: string(raw)}}, nil
}

// pathWriter stores the current block height under the message path.
type pathWriter struct{}

func (pathWriter) Check(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.CheckResult, error) {
	if err := db.Set([]byte("checked"), []byte("yes")); err != nil {
		return nil, err
	}
	return &descrow.CheckResult{Log: "ok"}, nil
}

func (pathWriter) Deliver(ctx descrow.Context, db descrow.KVStore, tx descrow.Tx) (*descrow.DeliverResult, error) {
	path := descrow.GetPath(tx)
	height, _ := descrow.GetHeight(ctx)
	if err := db.Set([]byte(path), heightByte(height)); err != nil {
		return nil, err
	}
	if bytes.HasPrefix([]byte(path), []byte("fail")) {
		return nil, errors.Wrap(errors.ErrInvalidState, "failing on purpose")
	}
	if _, err := descrow.BlockTime(ctx); err != nil {
		return nil, err
	}
	return &descrow.DeliverResult{Data: []byte(descrow.GetChainID(ctx))}, nil
}

func heightByte(n int64) []byte {
	return []byte{byte(n)}
}

func newTestApp(db descrow.CacheableKVStore) *Application {
	handler := ChainDecorators(utils.NewRecovery()).WithHandler(pathWriter{})
	return NewApplication("test", db, decodeTestTx, handler).
		WithLogger(log.NewNopLogger())
}

func TestApplicationDeliver(t *testing.T) {
	db := store.MemStore()
	a := newTestApp(db)
	now := time.Now()

	_, err := a.DeliverTx([]byte("first"), now)
	assert.True(t, errors.ErrInvalidState.Is(err), "chain not initialized: %+v", err)

	require.NoError(t, a.InitChain(Genesis{ChainID: "app-test-chain"}))
	err = a.InitChain(Genesis{ChainID: "app-test-chain"})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	res, err := a.DeliverTx([]byte("first"), now)
	require.NoError(t, err)
	assert.Equal(t, []byte("app-test-chain"), res.Data)
	res, err = a.DeliverTx([]byte("second"), now)
	require.NoError(t, err)

	height, err := a.Height()
	require.NoError(t, err)
	assert.EqualValues(t, 2, height)

	val, err := db.Get([]byte("first"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, val)
	val, err = db.Get([]byte("second"))
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, val)

	// a failing transaction leaves nothing behind
	_, err = a.DeliverTx([]byte("failing"), now)
	assert.True(t, errors.ErrInvalidState.Is(err))
	has, err := db.Has([]byte("failing"))
	require.NoError(t, err)
	assert.False(t, has)
	height, err = a.Height()
	require.NoError(t, err)
	assert.EqualValues(t, 2, height)

	_, err = a.DeliverTx(nil, now)
	assert.True(t, errors.ErrInvalidInput.Is(err))
	_, err = a.DeliverTx([]byte("panic"), now)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestApplicationCheck(t *testing.T) {
	db := store.MemStore()
	a := newTestApp(db)
	require.NoError(t, a.InitChain(Genesis{ChainID: "app-test-chain"}))

	res, err := a.CheckTx([]byte("anything"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Log)

	has, err := db.Has([]byte("checked"))
	require.NoError(t, err)
	assert.False(t, has)
	height, err := a.Height()
	require.NoError(t, err)
	assert.EqualValues(t, 0, height)
}

func TestApplicationInvalidChainID(t *testing.T) {
	a := newTestApp(store.MemStore())
	err := a.InitChain(Genesis{ChainID: "a"})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestApplicationPersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "descrow-app")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := store.OpenLevelDB(dir)
	require.NoError(t, err)
	a := newTestApp(db)
	require.NoError(t, a.InitChain(Genesis{ChainID: "persisted"}))
	_, err = a.DeliverTx([]byte("stored"), time.Now())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = store.OpenLevelDB(dir)
	require.NoError(t, err)
	defer db.Close()
	a = newTestApp(db)

	chainID, err := a.ChainID()
	require.NoError(t, err)
	assert.Equal(t, "persisted", chainID)
	height, err := a.Height()
	require.NoError(t, err)
	assert.EqualValues(t, 1, height)
	val, err := db.Get([]byte("stored"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, val)
}
