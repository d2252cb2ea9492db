package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-clash/internal/testutils"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestCardsCommand(t *testing.T) {
	out := execute(t, "cards")

	assert.Contains(t, out, "Slash")
	assert.Contains(t, out, "Coin Toss")
	assert.Contains(t, out, "currency")
}

func TestMonstersCommand(t *testing.T) {
	out := execute(t, "monsters")

	assert.Contains(t, out, "slime")
	assert.Contains(t, out, "Ancient Wyrm")
}

func TestHeroesCommand(t *testing.T) {
	out := execute(t, "heroes")

	assert.Contains(t, out, "aria")
	assert.Contains(t, out, "(engraved)")
}

func TestSimulateDuel(t *testing.T) {
	out := execute(t, "simulate", "--seed", "7", "--hero", "brannoc", "--monster", "slime", "--max-turns", "30")

	assert.Contains(t, out, "seed 7")
	assert.Contains(t, out, "-- turn 1 --")
	assert.Contains(t, out, "Result:")
	assert.Contains(t, out, "Brannoc")
}

func TestSimulateRejectsBadTopology(t *testing.T) {
	rootCmd.SetArgs([]string{"simulate", "--topology", "brawl"})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		simTopology = "duel"
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topology")
}

func TestSweepCommand(t *testing.T) {
	_, mr := testutils.CreateTestRedisClientWithServer(t)
	require.NoError(t, mr.Set("battle:broken", "{"))
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("redis", "")
		sweepDelete = false
	})

	out := execute(t, "sweep", "--redis", mr.Addr())
	assert.Contains(t, out, "battle:broken")
	assert.Contains(t, out, "Checked 1 battles, 1 corrupted")

	out = execute(t, "sweep", "--redis", mr.Addr(), "--delete")
	assert.Contains(t, out, "1 deleted")
	assert.False(t, mr.Exists("battle:broken"))
}
