package clash

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

// ApplyTurnTriggers runs self's own artifact triggers, once per turn: time
// stack bonus, banked nuke, Last Gamble, light arming for next turn. opp is
// the side that takes the nuke and a winning gamble; nil skips both.
func ApplyTurnTriggers(self, opp *Side, turn int, roller dice.Roller) ([]Event, error) {
	rec := &recorder{turn: turn}

	if self.has(entities.SpecialTime) {
		if stack := self.Runtime.Get(KeyTimeStack); stack > 0 {
			self.Dice.AddToLive(stack * TimeBonusPerStack)
			rec.emit(EventTrigger, -1, self, nil, stack*TimeBonusPerStack,
				"%s's time stacks (%d) empower every die by %d", self.Combatant.Name, stack, stack*TimeBonusPerStack)
		}
	}

	if opp != nil && self.Runtime.Get(KeyNukeArmed) > 0 {
		dealt := opp.hurt(self.Combatant.Attack * 17 / 10)
		self.Runtime.Set(KeyNukeArmed, 0)
		rec.emit(EventTrigger, -1, self, opp, dealt,
			"%s releases a stored storm for %d damage", self.Combatant.Name, dealt)
	}

	if opp != nil && self.CardName == CardLastGamble && self.has(entities.SpecialGamble) &&
		self.Combatant.HP*2 <= self.Combatant.MaxHP {
		if err := gamble(rec, self, opp, roller); err != nil {
			return nil, err
		}
	}

	if self.CardName == CardJudgementOfLight && self.has(entities.SpecialLight) {
		self.Runtime.LightPending = true
		rec.emit(EventTrigger, -1, self, nil, 0, "%s gathers light for next turn", self.Combatant.Name)
	}

	return rec.events, nil
}

// ApplyPairTriggers runs the triggers aimed at one opponent's dice, for a
// then b: light destruction armed last turn.
func ApplyPairTriggers(a, b *Side, turn int, roller dice.Roller) ([]Event, error) {
	rec := &recorder{turn: turn}
	for _, p := range [][2]*Side{{b, a}, {a, b}} {
		destroyer, target := p[0], p[1]
		if !destroyer.Runtime.LightArmed || !destroyer.has(entities.SpecialLight) {
			continue
		}
		if err := lightDestroy(rec, destroyer, target, roller); err != nil {
			return nil, err
		}
	}
	return rec.events, nil
}

// lightDestroy destroys 1-3 random live dice of target. Each destroyed die
// adds to the destroyer's stack; reaching the threshold resets the stack and
// zeroes every remaining die of the target.
func lightDestroy(rec *recorder, destroyer, target *Side, roller dice.Roller) error {
	count, err := roller.Roll(LightMaxDestroy)
	if err != nil {
		return errors.Wrap(err, "failed to roll light destruction")
	}

	for k := 0; k < count; k++ {
		live := liveIndexes(target.Dice)
		if len(live) == 0 {
			return nil
		}
		pick, err := roller.Roll(len(live))
		if err != nil {
			return errors.Wrap(err, "failed to pick die to destroy")
		}
		idx := live[pick-1]
		target.Dice[idx].Destroy()

		stack := destroyer.Runtime.Add(KeyLightDestroy, 1)
		rec.emit(EventTrigger, idx, destroyer, target, stack,
			"light shatters %s's die %d (%d/%d)", target.Combatant.Name, idx+1, stack, LightThreshold)

		if stack >= LightThreshold {
			destroyer.Runtime.Set(KeyLightDestroy, 0)
			for i := range target.Dice {
				target.Dice[i].Destroy()
			}
			rec.emit(EventTrigger, idx, destroyer, target, 0,
				"judgement of light erases every die of %s", target.Combatant.Name)
			return nil
		}
	}
	return nil
}

func gamble(rec *recorder, self, opp *Side, roller dice.Roller) error {
	v, err := roller.Roll(GambleOdds)
	if err != nil {
		return errors.Wrap(err, "failed to roll gamble")
	}

	if v == 1 {
		self.Combatant.Heal(self.Combatant.MaxHP)
		dealt := opp.hurt(self.Combatant.Mental)
		for i := range self.Dice {
			if self.Dice[i].Type == cards.Defense {
				self.Dice[i].Destroy()
			}
		}
		rec.emit(EventTrigger, -1, self, opp, dealt,
			"%s wins the gamble: fully healed and deals %d", self.Combatant.Name, dealt)
		return nil
	}

	for i := range self.Dice {
		if self.Dice[i].Type == cards.Defense {
			self.Dice[i].Value *= 2
		}
	}
	rec.emit(EventTrigger, -1, self, nil, 0, "%s loses the gamble: defense doubled", self.Combatant.Name)
	return nil
}

func liveIndexes(seq cards.Sequence) []int {
	var out []int
	for i, r := range seq {
		if r.Live() {
			out = append(out, i)
		}
	}
	return out
}
