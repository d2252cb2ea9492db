// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-clash/internal/entities"
)

// CombatantBuilder provides a fluent interface for building test combatants
type CombatantBuilder struct {
	c *entities.Combatant
}

// NewCombatantBuilder starts a player combatant at 100 HP and 50 mental with
// zero attack and defense, so die values are not scaled.
func NewCombatantBuilder(id string) *CombatantBuilder {
	return &CombatantBuilder{
		c: &entities.Combatant{
			ID:        id,
			Name:      id,
			Kind:      entities.KindPlayer,
			HP:        100,
			MaxHP:     100,
			Mental:    50,
			MaxMental: 50,
		},
	}
}

// AsMonster marks the combatant as a monster with a pattern and deck
func (b *CombatantBuilder) AsMonster(pattern entities.Pattern, deck ...string) *CombatantBuilder {
	b.c.Kind = entities.KindMonster
	b.c.Pattern = pattern
	b.c.Deck = deck
	return b
}

// WithDeck sets the cards the combatant may play
func (b *CombatantBuilder) WithDeck(deck ...string) *CombatantBuilder {
	b.c.Deck = deck
	return b
}

// WithHP sets current and max HP
func (b *CombatantBuilder) WithHP(hp int) *CombatantBuilder {
	b.c.HP = hp
	b.c.MaxHP = hp
	return b
}

// WithMental sets current and max mental
func (b *CombatantBuilder) WithMental(mental int) *CombatantBuilder {
	b.c.Mental = mental
	b.c.MaxMental = mental
	return b
}

// WithStats sets attack, defense and defense rate
func (b *CombatantBuilder) WithStats(attack, defense, rate int) *CombatantBuilder {
	b.c.Attack = attack
	b.c.Defense = defense
	b.c.DefenseRate = rate
	return b
}

// WithSpecial equips a level 1 artifact carrying the special
func (b *CombatantBuilder) WithSpecial(sp entities.Special) *CombatantBuilder {
	b.c.Artifact = &entities.Artifact{ID: string(sp), Name: string(sp), Level: 1, Special: sp}
	return b
}

// WithCurrency sets the combatant's currency
func (b *CombatantBuilder) WithCurrency(n int) *CombatantBuilder {
	b.c.Currency = n
	return b
}

// Build returns the combatant
func (b *CombatantBuilder) Build() *entities.Combatant {
	return b.c
}

// CharacterBuilder provides a fluent interface for building test characters
type CharacterBuilder struct {
	c *entities.Character
}

// NewCharacterBuilder starts a character with 100 HP and 50 mental
func NewCharacterBuilder(id string) *CharacterBuilder {
	return &CharacterBuilder{
		c: &entities.Character{
			ID:        id,
			PlayerID:  "player-" + id,
			Name:      id,
			MaxHP:     100,
			MaxMental: 50,
		},
	}
}

// WithPlayerID sets the owning player
func (b *CharacterBuilder) WithPlayerID(playerID string) *CharacterBuilder {
	b.c.PlayerID = playerID
	return b
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.c.Name = name
	return b
}

// WithStats sets attack, defense and defense rate
func (b *CharacterBuilder) WithStats(attack, defense, rate int) *CharacterBuilder {
	b.c.Attack = attack
	b.c.Defense = defense
	b.c.DefenseRate = rate
	return b
}

// WithPools sets max HP and max mental
func (b *CharacterBuilder) WithPools(hp, mental int) *CharacterBuilder {
	b.c.MaxHP = hp
	b.c.MaxMental = mental
	return b
}

// WithCurrency sets the character's currency
func (b *CharacterBuilder) WithCurrency(n int) *CharacterBuilder {
	b.c.Currency = n
	return b
}

// WithCards sets the character's deck
func (b *CharacterBuilder) WithCards(cards ...string) *CharacterBuilder {
	b.c.Cards = cards
	return b
}

// WithArtifact equips the primary artifact
func (b *CharacterBuilder) WithArtifact(a *entities.Artifact) *CharacterBuilder {
	b.c.Artifact = a
	return b
}

// WithEngraved equips the engraved artifact
func (b *CharacterBuilder) WithEngraved(a *entities.Artifact) *CharacterBuilder {
	b.c.Engraved = a
	return b
}

// Build returns the character
func (b *CharacterBuilder) Build() *entities.Character {
	return b.c
}
