package cards

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-clash/internal/entities"
)

// Family selects how a card generates its values
type Family string

// Card families
const (
	FamilyStandard      Family = "standard"
	FamilyCurrency      Family = "currency"
	FamilyCounterStance Family = "counter_stance"
	FamilyResolve       Family = "resolve"
	FamilyFated         Family = "fated"
)

// Context is what a card may read, and spend, while producing values.
type Context struct {
	// Actor is the session snapshot; currency and mental costs are taken
	// from it directly.
	Actor               *entities.Combatant
	DamageTakenLastTurn int
	Roller              dice.Roller
}

// Card is an immutable, named, ordered group of dice.
type Card interface {
	Name() string
	Family() Family
	Dice() []Die
	// Produce rolls the card for one turn. The result is not yet scaled.
	Produce(ctx *Context) (Sequence, error)
}

// Standard rolls every die as declared
type Standard struct {
	name string
	dice []Die
}

// NewStandard creates a standard card
func NewStandard(name string, dice []Die) *Standard {
	return &Standard{name: name, dice: append([]Die(nil), dice...)}
}

// Name returns the card name
func (c *Standard) Name() string { return c.name }

// Family returns FamilyStandard
func (c *Standard) Family() Family { return FamilyStandard }

// Dice returns a copy of the card's dice
func (c *Standard) Dice() []Die { return append([]Die(nil), c.dice...) }

// Produce rolls every die
func (c *Standard) Produce(ctx *Context) (Sequence, error) {
	return rollAll(c.dice, ctx)
}

func rollAll(ds []Die, ctx *Context) (Sequence, error) {
	seq := make(Sequence, len(ds))
	for i, d := range ds {
		v, err := RollDie(d, ctx.Actor, ctx.Roller)
		if err != nil {
			return nil, err
		}
		seq[i] = DiceResult{Type: d.Type, Value: v, Effect: d.Effect}
	}
	return seq, nil
}

// Currency spends the actor's currency for a flat bonus on every attack die:
// one bonus point per UnitCost spent, at most MaxBonus. Carrying a
// golden_purse special halves the unit cost.
type Currency struct {
	Standard
	UnitCost int
	MaxBonus int
}

// NewCurrency creates a currency card
func NewCurrency(name string, dice []Die, unitCost, maxBonus int) *Currency {
	return &Currency{Standard: *NewStandard(name, dice), UnitCost: unitCost, MaxBonus: maxBonus}
}

// Family returns FamilyCurrency
func (c *Currency) Family() Family { return FamilyCurrency }

// Produce rolls, then spends currency
func (c *Currency) Produce(ctx *Context) (Sequence, error) {
	seq, err := rollAll(c.dice, ctx)
	if err != nil {
		return nil, err
	}

	bonus, spent := c.Spend(ctx.Actor)
	ctx.Actor.Currency -= spent
	for i := range seq {
		if seq[i].Type == Attack {
			seq[i].Value += bonus
		}
	}
	return seq, nil
}

// Spend returns the bonus the actor's currency buys and what it costs. The
// currency is rounded to the nearest unit, half up; a rounded-up last unit
// costs only what the actor has left.
func (c *Currency) Spend(actor *entities.Combatant) (bonus, cost int) {
	unit := c.UnitCost
	if actor.HasSpecial(entities.SpecialGoldenPurse) {
		unit /= 2
	}
	if unit <= 0 || actor.Currency <= 0 {
		return 0, 0
	}

	bonus = min(c.MaxBonus, (actor.Currency+unit/2)/unit)
	return bonus, min(actor.Currency, bonus*unit)
}

// CounterStance adds the damage the actor took last turn, plus Offset, to
// its final attack die.
type CounterStance struct {
	Standard
	Offset int
}

// NewCounterStance creates a counter-stance card
func NewCounterStance(name string, dice []Die, offset int) *CounterStance {
	return &CounterStance{Standard: *NewStandard(name, dice), Offset: offset}
}

// Family returns FamilyCounterStance
func (c *CounterStance) Family() Family { return FamilyCounterStance }

// Produce rolls and boosts the last attack die
func (c *CounterStance) Produce(ctx *Context) (Sequence, error) {
	seq, err := rollAll(c.dice, ctx)
	if err != nil {
		return nil, err
	}

	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i].Type == Attack {
			seq[i].Value += max(0, ctx.DamageTakenLastTurn) + c.Offset
			break
		}
	}
	return seq, nil
}

// Resolve lets the actor spend MentalCost mental, while at or above half
// mental, for Bonus on its first attack die.
type Resolve struct {
	Standard
	MentalCost int
	Bonus      int
}

// NewResolve creates a resolve card
func NewResolve(name string, dice []Die, mentalCost, bonus int) *Resolve {
	return &Resolve{Standard: *NewStandard(name, dice), MentalCost: mentalCost, Bonus: bonus}
}

// Family returns FamilyResolve
func (c *Resolve) Family() Family { return FamilyResolve }

// Produce rolls and, when affordable, pays mental for the bonus
func (c *Resolve) Produce(ctx *Context) (Sequence, error) {
	seq, err := rollAll(c.dice, ctx)
	if err != nil {
		return nil, err
	}

	actor := ctx.Actor
	if actor.Mental < c.MentalCost || actor.Mental*2 < actor.MaxMental {
		return seq, nil
	}

	for i := range seq {
		if seq[i].Type == Attack {
			actor.DrainMental(c.MentalCost)
			seq[i].Value += c.Bonus
			break
		}
	}
	return seq, nil
}

// Fated rolls its dice from their declared ranges with no stat involvement.
// A die landing on its highest face gains CritBonus.
type Fated struct {
	Standard
	CritBonus int
}

// NewFated creates a fated card
func NewFated(name string, dice []Die, critBonus int) *Fated {
	return &Fated{Standard: *NewStandard(name, dice), CritBonus: critBonus}
}

// Family returns FamilyFated
func (c *Fated) Family() Family { return FamilyFated }

// Produce rolls unscaled dice and marks them fixed
func (c *Fated) Produce(ctx *Context) (Sequence, error) {
	seq := make(Sequence, len(c.dice))
	for i, d := range c.dice {
		if d.Type == None {
			seq[i] = DiceResult{Type: None}
			continue
		}
		v, err := RollRange(ctx.Roller, d.Min, d.Max)
		if err != nil {
			return nil, err
		}
		if v == d.Max {
			v += c.CritBonus
		}
		seq[i] = DiceResult{Type: d.Type, Value: v, Effect: d.Effect, Fixed: true}
	}
	return seq, nil
}
