package battle

import (
	"github.com/KirkDiggler/rpg-clash/internal/engine/clash"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
)

// StartBattleInput defines the request for starting a battle
type StartBattleInput struct {
	Topology entities.Topology
	// CharacterIDs are loaded from the character repository onto side A.
	CharacterIDs []string
	// MonsterIDs are content monster templates placed on side B.
	MonsterIDs []string
	// OpponentCharacterIDs place stored characters on side B instead of
	// monsters. Only valid for duels.
	OpponentCharacterIDs []string
	// Seed fixes the battle's random stream; 0 draws one.
	Seed int64
}

// StartBattleOutput defines the response for starting a battle
type StartBattleOutput struct {
	Battle *entities.Battle
}

// GetBattleInput defines the request for loading a battle
type GetBattleInput struct {
	BattleID string
}

// GetBattleOutput defines the response for loading a battle
type GetBattleOutput struct {
	Battle *entities.Battle
}

// SubmitTurnInput defines the request for resolving one turn
type SubmitTurnInput struct {
	BattleID string
	// Actions maps combatant ID to card name. Every acting player needs an
	// entry; monsters without one choose by pattern.
	Actions map[string]string
}

// SubmitTurnOutput defines the response for resolving one turn
type SubmitTurnOutput struct {
	Battle  *entities.Battle
	Events  []clash.Event
	Outcome entities.Outcome
}

// EndBattleInput defines the request for closing a battle
type EndBattleInput struct {
	BattleID string
}

// EndBattleOutput defines the response for closing a battle
type EndBattleOutput struct {
	Battle *entities.Battle
	// Characters are the records written back, one per player combatant.
	Characters []*entities.Character
}
