// Package main is the entry point for the clash command line
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-clash/internal/config"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

var (
	cfg *config.Config

	redisAddr string
	seed      int64
	logFormat string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "clash",
	Short: "Clash combat engine",
	Long:  `Clash resolves turn-based dice battles between heroes and monsters. Use it to browse content and run simulated battles.`,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("redis") {
			loaded.RedisAddr = redisAddr
		}
		if flags.Changed("seed") {
			loaded.Seed = seed
		}
		if flags.Changed("log-format") {
			loaded.LogFormat = logFormat
		}
		if flags.Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		cfg = loaded
		slog.SetDefault(cfg.NewLogger(os.Stderr))
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&redisAddr, "redis", "", "Redis address for battle and character storage (default in-memory)")
	pf.Int64Var(&seed, "seed", 0, "Battle seed, 0 draws a fresh one")
	pf.StringVar(&logFormat, "log-format", config.LogFormatText, "Log format: text or json")
	pf.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(monstersCmd)
	rootCmd.AddCommand(heroesCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(sweepCmd)
}
