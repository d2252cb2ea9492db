// Package battle runs battle sessions: it loads the combatants, resolves
// turns through the clash engine and persists the session between turns.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/rpg-clash/internal/orchestrators/battle Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-clash/internal/engine/ai"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-clash/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-clash/internal/repositories/battles"
	"github.com/KirkDiggler/rpg-clash/internal/repositories/character"
)

// Service defines the interface for battle operations
type Service interface {
	// StartBattle builds both sides and stores a new session awaiting turn 1
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// GetBattle returns the stored session
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)

	// SubmitTurn resolves one turn with the given actions
	SubmitTurn(ctx context.Context, input *SubmitTurnInput) (*SubmitTurnOutput, error)

	// EndBattle writes player results back to their characters and drops
	// the session
	EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error)
}

// Catalogue is the content the orchestrator reads
type Catalogue interface {
	ai.CardSource
	Monster(id string) (*entities.Combatant, error)
}

// RollerFactory returns the roller used for one turn of a battle
type RollerFactory func(seed int64, turn int) dice.Roller

// SeedSource draws a seed for a battle started without one
type SeedSource func() (int64, error)

// Config holds the dependencies for the battle orchestrator
type Config struct {
	BattleRepo    battles.Repository
	CharacterRepo character.Repository
	Content       Catalogue
	EventBus      events.EventBus
	IDGenerator   idgen.Generator

	// Optional
	Rollers RollerFactory
	Seeds   SeedSource
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Content == nil {
		vb.RequiredField("Content")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	battleRepo    battles.Repository
	characterRepo character.Repository
	content       Catalogue
	eventBus      events.EventBus
	idGen         idgen.Generator
	rollers       RollerFactory
	seeds         SeedSource
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		battleRepo:    cfg.BattleRepo,
		characterRepo: cfg.CharacterRepo,
		content:       cfg.Content,
		eventBus:      cfg.EventBus,
		idGen:         cfg.IDGenerator,
		rollers:       cfg.Rollers,
		seeds:         cfg.Seeds,
	}
	if o.rollers == nil {
		o.rollers = func(seed int64, turn int) dice.Roller {
			return rng.ForTurn(seed, turn)
		}
	}
	if o.seeds == nil {
		o.seeds = rng.NewSeed
	}
	return o, nil
}

// StartBattle builds both sides and stores a new session
func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateStart(input); err != nil {
		return nil, err
	}

	sideA, err := o.loadCharacters(ctx, input.CharacterIDs)
	if err != nil {
		return nil, err
	}

	var sideB []*entities.Combatant
	if len(input.OpponentCharacterIDs) > 0 {
		sideB, err = o.loadCharacters(ctx, input.OpponentCharacterIDs)
	} else {
		sideB, err = o.loadMonsters(input.MonsterIDs)
	}
	if err != nil {
		return nil, err
	}

	seed := input.Seed
	if seed == 0 {
		seed, err = o.seeds()
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw battle seed")
		}
	}

	b := &entities.Battle{
		ID:       o.idGen.Generate(),
		Topology: input.Topology,
		State:    entities.StateAwaitingActions,
		Outcome:  entities.OutcomeContinuing,
		Turn:     1,
		Seed:     seed,
		SideA:    sideA,
		SideB:    sideB,
		Runtime:  make(map[string]*entities.Runtime),
	}
	for _, c := range b.Combatants() {
		if b.Runtime[c.ID] != nil {
			return nil, errors.InvalidArgumentf("combatant %s appears more than once", c.ID)
		}
		b.Runtime[c.ID] = entities.NewRuntime()
	}

	created, err := o.battleRepo.Create(ctx, battles.CreateInput{Battle: b})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store battle %s", b.ID)
	}

	slog.Info("Battle started",
		"battle_id", b.ID,
		"topology", b.Topology,
		"side_a", len(sideA),
		"side_b", len(sideB),
	)

	return &StartBattleOutput{Battle: created.Battle}, nil
}

// GetBattle returns the stored session
func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	out, err := o.battleRepo.Get(ctx, battles.GetInput{ID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}

	return &GetBattleOutput{Battle: out.Battle}, nil
}

// SubmitTurn resolves one turn. The session is reloaded, mutated and
// written back; a concurrent submit on the same battle wins or loses whole.
func (o *orchestrator) SubmitTurn(ctx context.Context, input *SubmitTurnInput) (*SubmitTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	got, err := o.battleRepo.Get(ctx, battles.GetInput{ID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}
	b := got.Battle

	if b.State != entities.StateAwaitingActions {
		return nil, errors.FailedPreconditionf("battle %s is %s", b.ID, b.State).WithBattle(b.ID)
	}

	roller := o.rollers(b.Seed, b.Turn)

	picks, err := o.chooseCards(b, input.Actions, roller)
	if err != nil {
		return nil, err
	}

	turn := b.Turn
	b.State = entities.StateResolving

	turnLog, err := resolveTurn(b, picks, roller)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve turn %d of battle %s", turn, b.ID).
			WithBattle(b.ID).
			WithTurn(turn)
	}
	turnLog = append(turnLog, advance(b)...)

	updated, err := o.battleRepo.Update(ctx, battles.UpdateInput{Battle: b})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save battle %s", b.ID)
	}

	o.publish(ctx, b, turnLog)

	slog.Info("Turn resolved",
		"battle_id", b.ID,
		"turn", turn,
		"events", len(turnLog),
		"outcome", b.Outcome,
	)

	return &SubmitTurnOutput{
		Battle:  updated.Battle,
		Events:  turnLog,
		Outcome: updated.Battle.Outcome,
	}, nil
}

// EndBattle writes back each player's persistent fields and deletes the
// session. Characters are reloaded first so only battle-owned fields change.
func (o *orchestrator) EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	got, err := o.battleRepo.Get(ctx, battles.GetInput{ID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}
	b := got.Battle

	var saved []*entities.Character
	for _, c := range b.Combatants() {
		if c.Kind != entities.KindPlayer || c.CharacterID == "" {
			continue
		}

		cur, err := o.characterRepo.Get(ctx, character.GetInput{ID: c.CharacterID})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to reload character %s", c.CharacterID)
		}
		cur.Character.ApplyBattleResult(c)

		out, err := o.characterRepo.Update(ctx, character.UpdateInput{Character: cur.Character})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to save character %s", c.CharacterID)
		}
		saved = append(saved, out.Character)
	}

	if _, err := o.battleRepo.Delete(ctx, battles.DeleteInput{ID: b.ID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle %s", b.ID)
	}

	slog.Info("Battle ended",
		"battle_id", b.ID,
		"turns", b.Turn,
		"outcome", b.Outcome,
		"characters_saved", len(saved),
	)

	return &EndBattleOutput{Battle: b, Characters: saved}, nil
}

func validateStart(input *StartBattleInput) error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("topology", input.Topology, []entities.Topology{
		entities.TopologyDuel,
		entities.TopologyHunt,
		entities.TopologyRaid,
	}, vb)

	if len(input.CharacterIDs) == 0 {
		vb.RequiredField("character_ids")
	}

	opponents := len(input.MonsterIDs) + len(input.OpponentCharacterIDs)
	if opponents == 0 {
		vb.Field("opponents", "monster_ids or opponent_character_ids is required")
	}
	if len(input.MonsterIDs) > 0 && len(input.OpponentCharacterIDs) > 0 {
		vb.Field("opponents", "use monster_ids or opponent_character_ids, not both")
	}

	switch input.Topology {
	case entities.TopologyDuel:
		if len(input.CharacterIDs) > 1 {
			vb.InvalidField("character_ids", "a duel has exactly one character per side")
		}
		if opponents > 1 {
			vb.InvalidField("opponents", "a duel has exactly one opponent")
		}
	case entities.TopologyHunt:
		if len(input.CharacterIDs) > 1 {
			vb.InvalidField("character_ids", "a hunt has exactly one character")
		}
		if len(input.OpponentCharacterIDs) > 0 {
			vb.InvalidField("opponent_character_ids", "a hunt is fought against monsters")
		}
	case entities.TopologyRaid:
		if opponents > 1 {
			vb.InvalidField("opponents", "a raid has exactly one boss")
		}
		if len(input.OpponentCharacterIDs) > 0 {
			vb.InvalidField("opponent_character_ids", "a raid is fought against a monster")
		}
	}

	return vb.Build()
}

func (o *orchestrator) loadCharacters(ctx context.Context, ids []string) ([]*entities.Combatant, error) {
	out := make([]*entities.Combatant, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, errors.InvalidArgument("character ID cannot be empty")
		}
		got, err := o.characterRepo.Get(ctx, character.GetInput{ID: id})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load character %s", id)
		}
		out = append(out, entities.NewCombatant(got.Character))
	}
	return out, nil
}

// loadMonsters numbers every monster so two of the same kind stay distinct
func (o *orchestrator) loadMonsters(ids []string) ([]*entities.Combatant, error) {
	out := make([]*entities.Combatant, 0, len(ids))
	for i, id := range ids {
		m, err := o.content.Monster(id)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load monster %s", id)
		}
		m.ID = fmt.Sprintf("%s-%d", id, i+1)
		out = append(out, m)
	}
	return out, nil
}
