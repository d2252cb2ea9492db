// Package cards models dice, the cards that group them and how a card turns
// into a sequence of rolled values for one turn.
package cards

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-clash/internal/engine/effects"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

// ActionType is what a die does in a clash
type ActionType string

// Action types
const (
	Attack     ActionType = "attack"
	Defense    ActionType = "defense"
	Counter    ActionType = "counter"
	Heal       ActionType = "heal"
	MentalHeal ActionType = "mental_heal"
	None       ActionType = "none"
)

// ActionTypes lists every valid action type
var ActionTypes = []ActionType{Attack, Defense, Counter, Heal, MentalHeal, None}

// Valid reports whether t is a known action type
func (t ActionType) Valid() bool {
	for _, known := range ActionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Die is the static template of one action: a type, an inclusive value range
// and an optional effect.
type Die struct {
	Type   ActionType
	Min    int
	Max    int
	Effect effects.Effect
}

// DiceResult is the mutable working unit threaded through a clash.
type DiceResult struct {
	Type   ActionType
	Value  int
	Effect effects.Effect
	// Fixed results are skipped by the stat scaling pass.
	Fixed bool
}

// Live reports whether the result still acts in its clash
func (r DiceResult) Live() bool {
	return r.Type != None && r.Type != ""
}

// Destroy turns the result into the zero die
func (r *DiceResult) Destroy() {
	*r = DiceResult{Type: None}
}

// Sequence is the ordered dice a side brings to one turn
type Sequence []DiceResult

// At returns the result at i, or the zero die past the end
func (s Sequence) At(i int) DiceResult {
	if i < 0 || i >= len(s) {
		return DiceResult{Type: None}
	}
	return s[i]
}

// Clone copies the sequence
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// AddToLive adds bonus to every live result
func (s Sequence) AddToLive(bonus int) {
	if bonus == 0 {
		return
	}
	for i := range s {
		if s[i].Live() {
			s[i].Value = max(0, s[i].Value+bonus)
		}
	}
}

// Pad returns copies of a and b extended with zero dice to equal length
func Pad(a, b Sequence) (Sequence, Sequence) {
	n := max(len(a), len(b))
	pa := make(Sequence, n)
	pb := make(Sequence, n)
	for i := 0; i < n; i++ {
		pa[i] = a.At(i)
		pb[i] = b.At(i)
	}
	return pa, pb
}

// RollDie samples a die after widening its range by the actor's stats.
//
//	attack:       max += attack
//	defense:      max += defense, only when the declared min is above 1
//	counter:      min += defense, max += attack
//	heal, mental: min += defense
//
// The widened min never exceeds the declared max.
func RollDie(d Die, actor *entities.Combatant, roller dice.Roller) (int, error) {
	if d.Type == None {
		return 0, nil
	}

	lo, hi := d.Min, d.Max
	switch d.Type {
	case Attack:
		hi += actor.Attack
	case Defense:
		if d.Min > 1 {
			hi += actor.Defense
		}
	case Counter:
		lo += actor.Defense
		hi += actor.Attack
	case Heal, MentalHeal:
		lo += actor.Defense
	}
	if lo > d.Max {
		lo = d.Max
	}

	return RollRange(roller, lo, hi)
}

// RollRange samples uniformly from [lo, hi]
func RollRange(roller dice.Roller, lo, hi int) (int, error) {
	if hi <= lo {
		return lo, nil
	}
	v, err := roller.Roll(hi - lo + 1)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %d-%d", lo, hi)
	}
	return lo + v - 1, nil
}

// Scale is the stat scaling pass applied to every live, non-fixed result
// after the card produced it.
//
//	attack:       + attack/2
//	defense:      + defense/2, only when the value is above 1
//	counter:      + (attack+defense)/4
//	heal, mental: + defense/5
func Scale(seq Sequence, actor *entities.Combatant) {
	for i := range seq {
		r := &seq[i]
		if !r.Live() || r.Fixed {
			continue
		}
		switch r.Type {
		case Attack:
			r.Value += actor.Attack / 2
		case Defense:
			if r.Value > 1 {
				r.Value += actor.Defense / 2
			}
		case Counter:
			r.Value += (actor.Attack + actor.Defense) / 4
		case Heal, MentalHeal:
			r.Value += actor.Defense / 5
		}
	}
}
