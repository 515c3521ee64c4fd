package sigs

import (
	"testing"

	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/store"
	"github.com/iov-one/descrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("foo"), "chain-one", 7)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := BuildSignBytes([]byte("foo"), "chain-two", 7)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	c, err := BuildSignBytes([]byte("foo"), "chain-one", 8)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = BuildSignBytes([]byte("foo"), "no", 1)
	assert.True(t, errors.ErrInvalidInput.Is(err))
	_, err = BuildSignBytes([]byte("foo"), "chain-one", -1)
	assert.True(t, ErrInvalidSequence.Is(err))
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := weavetest.NewKey()
	pub := priv.PublicKey()
	bz := []byte("my special valentine")
	chainID := "emo-music-2345"

	sig0, err := SignTx(priv, newStdTx(bz), chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, newStdTx(bz), chainID, 1)
	require.NoError(t, err)
	sig2, err := SignTx(priv, newStdTx(bz), chainID, 2)
	require.NoError(t, err)
	sig13, err := SignTx(priv, newStdTx(bz), chainID, 13)
	require.NoError(t, err)
	other, err := SignTx(priv, newStdTx(bz), "other-chain", 0)
	require.NoError(t, err)

	nonce, err := NextNonce(kv, pub.Address())
	require.NoError(t, err)
	assert.EqualValues(t, 0, nonce)

	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = VerifySignature(kv, other, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = VerifySignature(kv, sig0, []byte("tampered"), chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	cond, err := VerifySignature(kv, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, pub.Condition(), cond)

	// replay is rejected
	_, err = VerifySignature(kv, sig0, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	_, err = VerifySignature(kv, sig1, bz, chainID)
	require.NoError(t, err)
	_, err = VerifySignature(kv, sig13, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = VerifySignature(kv, sig2, bz, chainID)
	require.NoError(t, err)

	nonce, err = NextNonce(kv, pub.Address())
	require.NoError(t, err)
	assert.EqualValues(t, 3, nonce)
}

func TestVerifyTxSignatures(t *testing.T) {
	kv := store.MemStore()
	chainID := "hot_summer_days"
	a, b := weavetest.NewKey(), weavetest.NewKey()

	tx := newStdTx([]byte("some message"))
	signers, err := VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, signers)

	sigA, err := SignTx(a, tx, chainID, 0)
	require.NoError(t, err)
	sigB, err := SignTx(b, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sigA, sigB}

	signers, err = VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	require.Len(t, signers, 2)
	assert.Equal(t, a.PublicKey().Condition(), signers[0])
	assert.Equal(t, b.PublicKey().Condition(), signers[1])

	// same signatures cannot be used twice
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
}

func TestUserDataSequence(t *testing.T) {
	u := UserData{Pubkey: weavetest.NewKey().PublicKey()}
	assert.NoError(t, u.CheckAndIncrementSequence(0))
	assert.True(t, ErrInvalidSequence.Is(u.CheckAndIncrementSequence(0)))
	assert.EqualValues(t, 1, u.Sequence)

	u.Sequence = (1 << 53) - 1
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence((1<<53)-1)))
}
