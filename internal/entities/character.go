// Package entities provides core data structures for rpg-clash.
package entities

// Stat keys used by artifact bonus maps
const (
	StatHP          = "hp"
	StatMental      = "mental"
	StatAttack      = "attack"
	StatDefense     = "defense"
	StatDefenseRate = "defense_rate"
)

// Character is the persistent record owned by the storage collaborator.
// It never carries per-battle state.
type Character struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"player_id"`
	Name        string    `json:"name"`
	MaxHP       int       `json:"max_hp"`
	MaxMental   int       `json:"max_mental"`
	Attack      int       `json:"attack"`
	Defense     int       `json:"defense"`
	DefenseRate int       `json:"defense_rate"`
	Currency    int       `json:"currency"`
	Cards       []string  `json:"cards,omitempty"`
	Artifact    *Artifact `json:"artifact,omitempty"`
	Engraved    *Artifact `json:"engraved,omitempty"`
	CreatedAt   int64     `json:"created_at"`
	UpdatedAt   int64     `json:"updated_at"`
}

// NewCombatant builds the battle snapshot of a character: base stats plus the
// flat bonuses of both equipped artifacts. The combatant starts at full HP
// and mental.
func NewCombatant(c *Character) *Combatant {
	cb := &Combatant{
		ID:          c.ID,
		CharacterID: c.ID,
		Name:        c.Name,
		Kind:        KindPlayer,
		MaxHP:       c.MaxHP,
		MaxMental:   c.MaxMental,
		Attack:      c.Attack,
		Defense:     c.Defense,
		DefenseRate: c.DefenseRate,
		Currency:    c.Currency,
		Deck:        append([]string(nil), c.Cards...),
		Artifact:    c.Artifact.Clone(),
		Engraved:    c.Engraved.Clone(),
	}

	for _, a := range []*Artifact{cb.Artifact, cb.Engraved} {
		if a == nil {
			continue
		}
		cb.MaxHP += a.StatBonus(StatHP)
		cb.MaxMental += a.StatBonus(StatMental)
		cb.Attack += a.StatBonus(StatAttack)
		cb.Defense += a.StatBonus(StatDefense)
		cb.DefenseRate += a.StatBonus(StatDefenseRate)
	}

	cb.DefenseRate = clamp(cb.DefenseRate, 0, 100)
	cb.HP = cb.MaxHP
	cb.Mental = cb.MaxMental
	return cb
}

// ApplyBattleResult copies the persistent fields a battle may change back
// onto the character record.
func (c *Character) ApplyBattleResult(cb *Combatant) {
	c.Currency = cb.Currency
}
