package battles_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-clash/internal/repositories/battles"
	"github.com/KirkDiggler/rpg-clash/internal/testutils"
)

func TestSweep(t *testing.T) {
	ctx := context.Background()
	client, mr := testutils.CreateTestRedisClientWithServer(t)

	repo, err := battles.NewRedisRepository(&battles.Config{
		Client: client,
		Clock:  &clock.Fixed{At: time.Unix(1_700_000_000, 0)},
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, battles.CreateInput{Battle: testutils.CreateTestBattle()})
	require.NoError(t, err)

	require.NoError(t, mr.Set("battle:broken", "{not json"))
	require.NoError(t, mr.Set("battle:moved", `{"id":"elsewhere","topology":"duel"}`))
	require.NoError(t, mr.Set("battle:empty", `{"id":"empty","topology":"raid"}`))
	require.NoError(t, mr.Set("character:x", "{not json"))

	t.Run("reports without deleting", func(t *testing.T) {
		out, err := battles.Sweep(ctx, client, battles.SweepInput{})
		require.NoError(t, err)

		assert.Equal(t, 4, out.Checked)
		assert.Zero(t, out.Deleted)

		reasons := make(map[string]string)
		for _, c := range out.Corrupted {
			reasons[c.Key] = c.Reason
		}
		assert.Equal(t, map[string]string{
			"battle:broken": "invalid json",
			"battle:moved":  "id does not match key",
			"battle:empty":  "missing a side",
		}, reasons)
		assert.True(t, mr.Exists("battle:broken"))
	})

	t.Run("deletes corrupted keys only", func(t *testing.T) {
		out, err := battles.Sweep(ctx, client, battles.SweepInput{Delete: true})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Deleted)

		assert.False(t, mr.Exists("battle:broken"))
		assert.True(t, mr.Exists("battle:"+testutils.TestBattleID))
		assert.True(t, mr.Exists("character:x"))

		_, err = repo.Get(ctx, battles.GetInput{ID: testutils.TestBattleID})
		assert.NoError(t, err)
	})
}

func TestSweep_NilClient(t *testing.T) {
	_, err := battles.Sweep(context.Background(), nil, battles.SweepInput{})
	assert.True(t, errors.IsInvalidArgument(err))
}
