package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-clash/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-clash/internal/redis"
	"github.com/KirkDiggler/rpg-clash/internal/repositories/battles"
)

var sweepDelete bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Find stored battles that can no longer be resumed",
	Long: `Sweep scans the battle keys in Redis and lists sessions that fail to decode
or have lost a side. Pass --delete to remove them.`,
	Example: `  clash sweep --redis localhost:6379
  clash sweep --redis localhost:6379 --delete`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepDelete, "delete", false, "Delete the corrupted battles")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	if cfg.RedisAddr == "" {
		return errors.InvalidArgument("sweep needs --redis or CLASH_REDIS_ADDR")
	}

	ctx := cmd.Context()
	client, err := redisclient.Connect(ctx, cfg.RedisAddr, &redisclient.Options{})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	res, err := battles.Sweep(ctx, client, battles.SweepInput{Delete: sweepDelete})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range res.Corrupted {
		fmt.Fprintf(out, "  %-40s %s\n", c.Key, c.Reason)
	}
	fmt.Fprintf(out, "Checked %d battles, %d corrupted", res.Checked, len(res.Corrupted))
	if sweepDelete {
		fmt.Fprintf(out, ", %d deleted", res.Deleted)
	}
	fmt.Fprintln(out)
	return nil
}
