package clash

import (
	"fmt"

	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/engine/effects"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
)

// dieEffect applies the status part of a die's effect.
func (l *loop) dieEffect(i int, d cards.DiceResult, self, opp *Side, win bool) error {
	if !d.Live() || d.Effect == nil {
		return nil
	}

	switch e := d.Effect.(type) {
	case effects.Bleed:
		if target := conditionTarget(e.When, self, opp, win); target != nil {
			target.Combatant.AddBleed(e.Stacks)
			l.emit(EventStatus, i, self, target, e.Stacks, "%s gains %d bleed", target.Combatant.Name, e.Stacks)
		}
	case effects.Paralysis:
		if target := conditionTarget(e.When, self, opp, win); target != nil {
			target.Combatant.AddParalysis(e.Stacks)
			l.emit(EventStatus, i, self, target, e.Stacks, "%s gains %d paralysis", target.Combatant.Name, e.Stacks)
		}
	case effects.ParalysisChance:
		if e.OnWin && !win {
			return nil
		}
		v, err := l.roller.Roll(100)
		if err != nil {
			return rollErr(err, "paralysis chance")
		}
		if v <= e.Percent {
			opp.Combatant.AddParalysis(e.Stacks)
			l.emit(EventStatus, i, self, opp, e.Stacks, "%s gains %d paralysis", opp.Combatant.Name, e.Stacks)
		}
	case effects.DamageByParalysis:
		if n := opp.hurt(e.PerStack * opp.Combatant.Status.Paralysis); n > 0 {
			l.emit(EventStatus, i, self, opp, n, "paralysis tears %d from %s", n, opp.Combatant.Name)
		}
	case effects.SelfDamage:
		amount, err := cards.RollRange(l.roller, e.Min, e.Max)
		if err != nil {
			return err
		}
		if n := self.hurt(amount); n > 0 {
			l.emit(EventStatus, i, self, self, n, "%s pays %d HP", self.Combatant.Name, n)
		}
	case effects.SelfDamageByParalysis:
		if n := self.hurt(e.PerStack * self.Combatant.Status.Paralysis); n > 0 {
			l.emit(EventStatus, i, self, self, n, "%s pays %d HP", self.Combatant.Name, n)
		}
	}
	return nil
}

func conditionTarget(c effects.Condition, self, opp *Side, win bool) *Side {
	switch c {
	case effects.Self:
		return self
	case effects.OnWin:
		if !win {
			return nil
		}
	}
	return opp
}

// postEffects runs the artifact effects that depend on the clash outcome.
func (l *loop) postEffects(i int, d cards.DiceResult, self, opp *Side, base int, win bool, oppSeq cards.Sequence) error {
	if !d.Live() {
		return nil
	}

	switch d.Effect.(type) {
	case effects.TimeAccel:
		if win {
			l.timeAccel(i, self, opp)
		}
	case effects.DestroyNextOnHit:
		if base > 0 && i+1 < len(oppSeq) && oppSeq[i+1].Live() {
			oppSeq[i+1].Destroy()
			l.emit(EventStatus, i+1, self, opp, 0, "%s breaks %s's next die", self.Combatant.Name, opp.Combatant.Name)
			if err := l.drain(i+1, self, opp); err != nil {
				return err
			}
		}
	}

	if d.Type == cards.Attack && base > 0 && self.has(entities.SpecialStorm) {
		if self.Runtime.Add(KeyStormCharge, 1) >= StormCharges {
			self.Runtime.Set(KeyStormCharge, 0)
			self.Runtime.Set(KeyNukeArmed, 1)
			l.emit(EventTrigger, i, self, nil, 0, "%s's storm is fully charged", self.Combatant.Name)
		}
	}
	return nil
}

// timeAccel banks next turn's bonus once per turn and advances the time
// stack. Each stack needs 1 + stack/3 winning dice; the tenth stack bursts.
func (l *loop) timeAccel(i int, self, opp *Side) {
	rt := self.Runtime
	if !rt.BankedThisTurn {
		rt.BankedThisTurn = true
		rt.BankedBonus = BankedBonus
		l.emit(EventTrigger, i, self, nil, BankedBonus, "%s banks +%d for next turn", self.Combatant.Name, BankedBonus)
	}

	if !self.has(entities.SpecialTime) {
		return
	}

	stack := rt.Get(KeyTimeStack)
	if rt.Add(KeyTimeProgress, 1) < 1+stack/3 {
		return
	}
	rt.Set(KeyTimeProgress, 0)
	stack = rt.Add(KeyTimeStack, 1)
	if stack < TimeMaxStacks {
		l.emit(EventTrigger, i, self, nil, stack, "%s's time stack rises to %d", self.Combatant.Name, stack)
		return
	}

	rt.Set(KeyTimeStack, 0)
	n := opp.hurt(self.Combatant.Attack * TimeBurstFactor)
	l.emit(EventTrigger, i, self, opp, n, "%s's time collapses on %s for %d", self.Combatant.Name, opp.Combatant.Name, n)
}

// drain is the life-drain micro-effect fired on every die the owner
// destroys: half the time it restores a tenth of the owner's mental,
// otherwise it takes a tenth of the target's max HP. Every fifth drain
// fires twice.
func (l *loop) drain(i int, self, target *Side) error {
	if !self.has(entities.SpecialLifeDrain) {
		return nil
	}

	count := self.Runtime.Add(KeyDrainCount, 1)
	v, err := l.roller.Roll(2)
	if err != nil {
		return rollErr(err, "drain")
	}

	times := 1
	if count%DrainEvery == 0 {
		times = 2
	}
	for k := 0; k < times; k++ {
		if v == 1 {
			n := self.Combatant.RestoreMental(self.Combatant.MaxMental / 10)
			l.emit(EventDrain, i, self, self, n, "%s drains %d mental", self.Combatant.Name, n)
			continue
		}
		n := target.hurt(target.Combatant.MaxHP / 10)
		l.emit(EventDrain, i, self, target, n, "%s drains %d HP from %s", self.Combatant.Name, n, target.Combatant.Name)
	}
	return nil
}

func describe(a, b *Side, rec *ClashRecord) string {
	return fmt.Sprintf("%s %s %d vs %s %s %d: %s -%d HP -%d mental, %s -%d HP -%d mental",
		a.Combatant.Name, rec.A.Type, rec.A.Value,
		b.Combatant.Name, rec.B.Type, rec.B.Value,
		a.Combatant.Name, rec.DamageToA, rec.MentalToA,
		b.Combatant.Name, rec.DamageToB, rec.MentalToB)
}
