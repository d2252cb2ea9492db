package entities

import "github.com/KirkDiggler/rpg-toolkit/core"

// Kind distinguishes player-controlled combatants from monsters
type Kind string

// Combatant kinds
const (
	KindPlayer  Kind = "player"
	KindMonster Kind = "monster"
)

// Pattern is a monster's declared play style
type Pattern string

// Monster patterns
const (
	PatternAggressive Pattern = "aggressive"
	PatternDefensive  Pattern = "defensive"
	PatternBalanced   Pattern = "balanced"
)

// Status holds stacking status ailments
type Status struct {
	Bleed     int `json:"bleed"`
	Paralysis int `json:"paralysis"`
}

// Combatant is one side's battle snapshot.
//
// Invariants: 0 <= HP <= MaxHP, 0 <= Mental <= MaxMental, status stacks >= 0.
// All mutators below keep them.
type Combatant struct {
	ID          string    `json:"id"`
	CharacterID string    `json:"character_id,omitempty"`
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	HP          int       `json:"hp"`
	MaxHP       int       `json:"max_hp"`
	Mental      int       `json:"mental"`
	MaxMental   int       `json:"max_mental"`
	Attack      int       `json:"attack"`
	Defense     int       `json:"defense"`
	DefenseRate int       `json:"defense_rate"`
	Status      Status    `json:"status"`
	Artifact    *Artifact `json:"artifact,omitempty"`
	Engraved    *Artifact `json:"engraved,omitempty"`
	Currency    int       `json:"currency,omitempty"`
	Pattern     Pattern   `json:"pattern,omitempty"`
	Deck        []string  `json:"deck,omitempty"`
}

var _ core.Entity = (*Combatant)(nil)

// GetID implements core.Entity
func (c *Combatant) GetID() string {
	return c.ID
}

// GetType implements core.Entity
func (c *Combatant) GetType() string {
	return string(c.Kind)
}

// Alive reports whether the combatant still has HP
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// HasSpecial reports whether either equipped artifact carries the special
func (c *Combatant) HasSpecial(s Special) bool {
	if s == SpecialNone {
		return false
	}
	return (c.Artifact != nil && c.Artifact.Special == s) ||
		(c.Engraved != nil && c.Engraved.Special == s)
}

// TakeDamage removes HP and returns the amount actually removed
func (c *Combatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := c.HP
	c.HP = clamp(c.HP-amount, 0, c.MaxHP)
	return before - c.HP
}

// Heal restores HP up to max and returns the amount restored
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := c.HP
	c.HP = clamp(c.HP+amount, 0, c.MaxHP)
	return c.HP - before
}

// DrainMental removes mental and returns the amount removed
func (c *Combatant) DrainMental(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := c.Mental
	c.Mental = clamp(c.Mental-amount, 0, c.MaxMental)
	return before - c.Mental
}

// RestoreMental restores mental up to max and returns the amount restored
func (c *Combatant) RestoreMental(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := c.Mental
	c.Mental = clamp(c.Mental+amount, 0, c.MaxMental)
	return c.Mental - before
}

// AddBleed adds bleed stacks, never going below zero
func (c *Combatant) AddBleed(n int) {
	c.Status.Bleed = max(0, c.Status.Bleed+n)
}

// AddParalysis adds paralysis stacks, never going below zero
func (c *Combatant) AddParalysis(n int) {
	c.Status.Paralysis = max(0, c.Status.Paralysis+n)
}

// Clone returns a deep copy
func (c *Combatant) Clone() *Combatant {
	if c == nil {
		return nil
	}
	out := *c
	out.Artifact = c.Artifact.Clone()
	out.Engraved = c.Engraved.Clone()
	out.Deck = append([]string(nil), c.Deck...)
	return &out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
