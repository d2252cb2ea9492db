package testutils

import (
	"github.com/KirkDiggler/rpg-clash/internal/entities"
)

// Fixture IDs
const (
	TestBattleID    = "battle_1"
	TestHeroID      = "hero"
	TestMonsterID   = "slime"
	TestPlayerID    = "player-test-123"
	TestCharacterID = "char-test-123"
)

// CreateTestCharacter creates a stored-character fixture with a lantern
func CreateTestCharacter() *entities.Character {
	return &entities.Character{
		ID:        TestCharacterID,
		PlayerID:  TestPlayerID,
		Name:      "Aria",
		MaxHP:     90,
		MaxMental: 40,
		Attack:    6,
		Defense:   4,
		Currency:  500,
		Cards:     []string{"Slash", "Guard"},
		Artifact: &entities.Artifact{
			ID: "lantern", Name: "Lantern", Level: 2,
			Bonus: map[string]int{entities.StatAttack: 2}, Special: entities.SpecialLight,
		},
	}
}

// CreateTestBattle creates a duel mid-fight: the hero is bleeding and has
// armed light, the slime is stunned for the pending turn.
func CreateTestBattle() *entities.Battle {
	b := &entities.Battle{
		ID:       TestBattleID,
		Topology: entities.TopologyDuel,
		State:    entities.StateAwaitingActions,
		Outcome:  entities.OutcomeContinuing,
		Turn:     1,
		Seed:     42,
		SideA: []*entities.Combatant{{
			ID: TestHeroID, Name: "Hero", Kind: entities.KindPlayer,
			HP: 50, MaxHP: 50, Mental: 20, MaxMental: 20,
			Status:   entities.Status{Bleed: 2},
			Artifact: &entities.Artifact{Name: "Lantern", Level: 1, Special: entities.SpecialLight},
		}},
		SideB: []*entities.Combatant{{
			ID: TestMonsterID, Name: "Slime", Kind: entities.KindMonster,
			HP: 40, MaxHP: 40, Mental: 20, MaxMental: 20,
			Pattern: entities.PatternAggressive, Deck: []string{"Tackle"},
		}},
		Stunned: map[string]bool{TestMonsterID: true},
	}
	b.RuntimeFor(TestHeroID).Set("light_destroy", 4)
	b.RuntimeFor(TestHeroID).LightArmed = true
	return b
}
