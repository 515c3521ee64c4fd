package descrow_test

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHeight(t *testing.T) {
	bg := context.Background()

	_, ok := descrow.GetHeight(bg)
	assert.False(t, ok)

	ctx := descrow.WithHeight(bg, 7)
	h, ok := descrow.GetHeight(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), h)

	assert.Panics(t, func() { descrow.WithHeight(ctx, 8) })
}

func TestContextChainID(t *testing.T) {
	bg := context.Background()
	assert.Panics(t, func() { descrow.GetChainID(bg) })
	assert.Panics(t, func() { descrow.WithChainID(bg, "no") })

	ctx := descrow.WithChainID(bg, "descrow-test")
	assert.Equal(t, "descrow-test", descrow.GetChainID(ctx))
	assert.Panics(t, func() { descrow.WithChainID(ctx, "another-chain") })
}

func TestContextBlockTime(t *testing.T) {
	bg := context.Background()

	_, err := descrow.BlockTime(bg)
	assert.True(t, errors.ErrHuman.Is(err))

	now := time.Date(2019, 4, 4, 11, 35, 40, 0, time.UTC)
	ctx := descrow.WithBlockTime(bg, now)
	got, err := descrow.BlockTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	assert.Panics(t, func() { descrow.WithBlockTime(ctx, now) })
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, descrow.DefaultLogger, descrow.GetLogger(bg))

	ctx := descrow.WithLogInfo(bg, "module", "test")
	assert.NotNil(t, descrow.GetLogger(ctx))
}
