package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-clash/internal/content"
	"github.com/KirkDiggler/rpg-clash/internal/engine/ai"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/rng"
	redisclient "github.com/KirkDiggler/rpg-clash/internal/redis"
	"github.com/KirkDiggler/rpg-clash/internal/repositories/battles"
	"github.com/KirkDiggler/rpg-clash/internal/repositories/character"
)

var (
	simHeroes   []string
	simMonsters []string
	simTopology string
	simStyle    string
	simMaxTurns int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a battle to the end with every side on autopilot",
	Long: `Simulate starts a battle between preset heroes and monsters and plays it out.
Heroes pick cards with the same weighted policy monsters use, driven by --style.`,
	Example: `  clash simulate --hero aria --monster slime
  clash simulate --topology hunt --hero vex --monster slime --monster cave_spider
  clash simulate --topology raid --hero aria --hero brannoc --monster wyrm --seed 42`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringSliceVar(&simHeroes, "hero", []string{"aria"}, "Preset hero IDs for side A")
	f.StringSliceVar(&simMonsters, "monster", []string{"slime"}, "Monster IDs for side B")
	f.StringVar(&simTopology, "topology", string(entities.TopologyDuel), "duel, hunt or raid")
	f.StringVar(&simStyle, "style", string(entities.PatternBalanced), "Hero card style: aggressive, defensive or balanced")
	f.IntVar(&simMaxTurns, "max-turns", 50, "Stop after this many turns")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg, err := content.Load()
	if err != nil {
		return err
	}

	battleRepo, charRepo, cleanup, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := seedHeroes(ctx, reg, charRepo, simHeroes); err != nil {
		return err
	}

	bus := events.NewBus()
	printEvents(bus, cmd.OutOrStdout())

	svc, err := battle.NewOrchestrator(&battle.Config{
		BattleRepo:    battleRepo,
		CharacterRepo: charRepo,
		Content:       reg,
		EventBus:      bus,
		IDGenerator:   idgen.NewUUID("battle"),
	})
	if err != nil {
		return err
	}

	started, err := svc.StartBattle(ctx, &battle.StartBattleInput{
		Topology:     entities.Topology(simTopology),
		CharacterIDs: simHeroes,
		MonsterIDs:   simMonsters,
		Seed:         cfg.Seed,
	})
	if err != nil {
		return err
	}
	b := started.Battle

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Battle %s (%s, seed %d)\n", b.ID, b.Topology, b.Seed)

	picker := rng.NewSeeded(b.Seed)
	for b.State == entities.StateAwaitingActions && b.Turn <= simMaxTurns {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "simulation interrupted")
		}

		actions, err := heroActions(b, reg, picker)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\n-- turn %d --\n", b.Turn)
		res, err := svc.SubmitTurn(ctx, &battle.SubmitTurnInput{BattleID: b.ID, Actions: actions})
		if err != nil {
			return err
		}
		b = res.Battle
	}

	if b.State != entities.StateTerminal {
		fmt.Fprintf(out, "\nStopped after %d turns without a winner\n", simMaxTurns)
	}

	ended, err := svc.EndBattle(ctx, &battle.EndBattleInput{BattleID: b.ID})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nResult: %s after %d turns\n", ended.Battle.Outcome, ended.Battle.Turn)
	for _, c := range ended.Battle.Combatants() {
		fmt.Fprintf(out, "  %-16s HP %d/%d  mental %d/%d\n", c.Name, c.HP, c.MaxHP, c.Mental, c.MaxMental)
	}
	return nil
}

// heroActions picks a card for every hero able to act
func heroActions(b *entities.Battle, reg *content.Registry, picker *rng.Seeded) (map[string]string, error) {
	actions := make(map[string]string)
	for _, c := range b.SideA {
		if !c.Alive() || b.Stunned[c.ID] {
			continue
		}

		styled := c.Clone()
		styled.Pattern = entities.Pattern(simStyle)
		name, err := ai.Choose(styled, reg, picker)
		if err != nil {
			return nil, err
		}
		actions[c.ID] = name
	}
	return actions, nil
}

// seedHeroes stores the preset heroes a simulation needs. Heroes already
// stored keep their saved record.
func seedHeroes(ctx context.Context, reg *content.Registry, repo character.Repository, ids []string) error {
	for _, id := range ids {
		h, err := reg.Hero(id)
		if err != nil {
			return err
		}
		h.PlayerID = "simulator"

		_, err = repo.Create(ctx, character.CreateInput{Character: h})
		if err != nil && !errors.IsAlreadyExists(err) {
			return errors.Wrapf(err, "failed to store hero %s", id)
		}
	}
	return nil
}

// openStores picks Redis when configured, otherwise in-memory stores
func openStores(ctx context.Context) (battles.Repository, character.Repository, func(), error) {
	clk := clock.New()

	if cfg.RedisAddr == "" {
		slog.Debug("Using in-memory stores")
		return battles.NewInMemory(clk), character.NewInMemory(clk), func() {}, nil
	}

	client, err := redisclient.Connect(ctx, cfg.RedisAddr, &redisclient.Options{})
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	battleRepo, err := battles.NewRedisRepository(&battles.Config{
		Client: client,
		Clock:  clk,
		TTL:    cfg.SessionTTL,
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	charRepo, err := character.NewRedis(&character.RedisConfig{Client: client, Clock: clk})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	slog.Info("Using Redis stores", "addr", cfg.RedisAddr, "session_ttl", cfg.SessionTTL)
	return battleRepo, charRepo, cleanup, nil
}

// printEvents writes every published turn event as one log line
func printEvents(bus events.EventBus, w io.Writer) {
	for _, typ := range battle.EventTypes {
		bus.SubscribeFunc(typ, 0, func(_ context.Context, e events.Event) error {
			te, ok := e.(*battle.TurnEvent)
			if !ok {
				return nil
			}
			if te.Entry.Index >= 0 {
				fmt.Fprintf(w, "  [%d] %s\n", te.Entry.Index+1, te.Entry.Message)
				return nil
			}
			fmt.Fprintf(w, "  %s\n", te.Entry.Message)
			return nil
		})
	}
}
