package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/rng"
)

func TestSeededIsDeterministic(t *testing.T) {
	a := rng.NewSeeded(42)
	b := rng.NewSeeded(42)

	ra, err := a.RollN(20, 20)
	require.NoError(t, err)
	rb, err := b.RollN(20, 20)
	require.NoError(t, err)

	assert.Equal(t, ra, rb)
	for _, v := range ra {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 20)
	}
}

func TestForTurnDiffersPerTurn(t *testing.T) {
	first, err := rng.ForTurn(7, 1).RollN(10, 1000)
	require.NoError(t, err)
	second, err := rng.ForTurn(7, 2).RollN(10, 1000)
	require.NoError(t, err)
	again, err := rng.ForTurn(7, 1).RollN(10, 1000)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, first, again)
}

func TestRollRejectsBadSize(t *testing.T) {
	_, err := rng.NewSeeded(1).Roll(0)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = rng.NewSeeded(1).RollN(0, 6)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewSeed(t *testing.T) {
	_, err := rng.NewSeed()
	assert.NoError(t, err)
}
