package clash

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/engine/effects"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

type loop struct {
	*recorder
	roller dice.Roller
	a, b   *Side
	seqA   cards.Sequence
	seqB   cards.Sequence
}

// hit is the damage one side deals the other in a single clash, after the
// secondary pipeline. Recoil and lifesteal are settled on landing, from the
// HP the target actually lost.
type hit struct {
	hp      int
	mental  int
	bleed   int
	reflect bool
	absorb  bool
}

// Resolve walks both sequences index by index until they run out or a side
// drops to 0 HP. Both combatants are mutated in place.
//
// Attack against attack is a mutual exchange: each side takes the other's
// value. The win flag only gates on-win effects.
func Resolve(a, b *Side, turn int, roller dice.Roller) (*Result, error) {
	l := &loop{recorder: &recorder{turn: turn}, roller: roller, a: a, b: b}
	l.seqA, l.seqB = cards.Pad(a.Dice, b.Dice)

	firstA, firstB := l.seqA.At(0), l.seqB.At(0)
	defA, defB := defenseTotal(l.seqA), defenseTotal(l.seqB)

	res := &Result{}
	var prevA, prevB cards.DiceResult
	for i := range l.seqA {
		if err := l.clash(i, &prevA, &prevB); err != nil {
			return nil, err
		}

		if !a.Combatant.Alive() || !b.Combatant.Alive() {
			for _, s := range []*Side{a, b} {
				if !s.Combatant.Alive() {
					l.emit(EventDefeat, i, s, nil, 0, "%s is defeated", s.Combatant.Name)
				}
			}
			res.Ended = true
			break
		}
	}

	l.faith(a, firstA, defA)
	l.faith(b, firstB, defB)

	for _, s := range []*Side{a, b} {
		c := s.Combatant
		l.emit(EventSummary, -1, s, nil, c.HP, "%s: HP %d/%d, mental %d/%d, bleed %d, paralysis %d",
			c.Name, c.HP, c.MaxHP, c.Mental, c.MaxMental, c.Status.Bleed, c.Status.Paralysis)
	}

	res.Events = l.events
	return res, nil
}

func (l *loop) clash(i int, prevA, prevB *cards.DiceResult) error {
	a, b := l.a, l.b
	da, db := &l.seqA[i], &l.seqB[i]

	dampen(da, a, b)
	dampen(db, b, a)

	if err := l.lock(i, da, a, b, l.seqB); err != nil {
		return err
	}
	if err := l.lock(i, db, b, a, l.seqA); err != nil {
		return err
	}

	synergy(da, b)
	synergy(db, a)

	carryOver(da, db, a, *prevA)
	carryOver(db, da, b, *prevB)
	*prevA, *prevB = *da, *db

	baseA := baseDamage(*da, *db)
	baseB := baseDamage(*db, *da)
	winA := da.Live() && da.Value > db.Value
	winB := db.Live() && db.Value > da.Value

	if err := l.dieEffect(i, *da, a, b, winA); err != nil {
		return err
	}
	if err := l.dieEffect(i, *db, b, a, winB); err != nil {
		return err
	}

	hitA := pipeline(baseA, *da, *db, a, b)
	hitB := pipeline(baseB, *db, *da, b, a)

	if err := l.postEffects(i, *da, a, b, baseA, winA, l.seqB); err != nil {
		return err
	}
	if err := l.postEffects(i, *db, b, a, baseB, winB, l.seqA); err != nil {
		return err
	}

	rec := &ClashRecord{A: *da, B: *db, WinA: winA, WinB: winB}
	rec.DamageToB, rec.MentalToB = l.land(hitA, a, b)
	rec.DamageToA, rec.MentalToA = l.land(hitB, b, a)

	restore(*da, a)
	restore(*db, b)
	decay(*da, a)
	decay(*db, b)

	l.recorder.events = append(l.recorder.events, Event{
		Kind:     EventClash,
		Turn:     l.turn,
		Index:    i,
		ActorID:  a.id(),
		TargetID: b.id(),
		Message:  describe(a, b, rec),
		Clash:    rec,
	})
	return nil
}

// dampen applies paralysis: the owner's stacks lower the die by two each,
// unless the die feeds on the opponent's paralysis instead.
func dampen(d *cards.DiceResult, self, opp *Side) {
	if !d.Live() {
		return
	}
	if boost, ok := d.Effect.(effects.AttackBoostByParalysis); ok {
		d.Value += boost.PerStack * opp.Combatant.Status.Paralysis
		return
	}
	d.Value = max(0, d.Value-2*self.Combatant.Status.Paralysis)
}

func (l *loop) lock(i int, d *cards.DiceResult, self, opp *Side, oppSeq cards.Sequence) error {
	if !d.Live() {
		return nil
	}
	if _, ok := d.Effect.(effects.LockOthers); !ok {
		return nil
	}

	for j := i + 1; j < len(oppSeq); j++ {
		if !oppSeq[j].Live() {
			continue
		}
		oppSeq[j].Destroy()
		l.emit(EventStatus, j, self, opp, 0, "%s locks %s's die %d", self.Combatant.Name, opp.Combatant.Name, j+1)
		if err := l.drain(j, self, opp); err != nil {
			return err
		}
	}
	return nil
}

func synergy(d *cards.DiceResult, opp *Side) {
	if !d.Live() {
		return
	}
	if _, ok := d.Effect.(effects.BleedSynergy); ok {
		d.Value += opp.Combatant.Status.Bleed
	}
}

// carryOver lets a meticulous side that lost its die reuse the previous one.
func carryOver(d *cards.DiceResult, opp *cards.DiceResult, self *Side, prev cards.DiceResult) {
	if self.Stunned || d.Live() || !opp.Live() || !prev.Live() {
		return
	}
	if !self.has(entities.SpecialMeticulous) {
		return
	}
	*d = cards.DiceResult{Type: prev.Type, Value: prev.Value}
}

// baseDamage is what self's die deals to the opponent before the pipeline.
func baseDamage(self, opp cards.DiceResult) int {
	switch self.Type {
	case cards.Attack:
		switch opp.Type {
		case cards.Defense:
			return max(0, self.Value-opp.Value)
		case cards.Counter:
			if self.Value >= opp.Value {
				return self.Value
			}
			return 0
		default:
			return self.Value
		}
	case cards.Counter:
		if opp.Type == cards.Attack && self.Value > opp.Value {
			return self.Value
		}
	}
	return 0
}

// pipeline turns base damage dealt by src to dst into the final HP and
// mental loss, plus what src suffers or gains for dealing it.
func pipeline(base int, srcDie, dstDie cards.DiceResult, src, dst *Side) hit {
	if base <= 0 {
		return hit{}
	}

	var h hit
	h.hp = base
	if dstDie.Type != cards.MentalHeal {
		h.mental = base / 2
	}

	rate := dst.Combatant.DefenseRate
	h.hp -= h.hp * rate / 100
	h.mental -= h.mental * rate / 100

	h.hp = max(0, h.hp-dst.Combatant.Defense/3)

	if dst.Stunned {
		h.hp *= 2
		h.mental *= 2
	}

	h.bleed = src.Combatant.Status.Bleed
	h.reflect = dst.has(entities.SpecialReflection)
	_, h.absorb = srcDie.Effect.(effects.AbsorbHP)
	return h
}

// land applies a hit and returns the HP and mental dst actually lost.
func (l *loop) land(h hit, src, dst *Side) (int, int) {
	hp := dst.hurt(h.hp)
	mental := dst.Combatant.DrainMental(h.mental)
	if hp <= 0 {
		return hp, mental
	}

	recoil := hp * h.bleed / 2
	if h.reflect {
		recoil += hp * 3 / 4
	}
	if recoil > 0 {
		n := src.hurt(recoil)
		l.emit(EventStatus, -1, dst, src, n, "%s takes %d recoil", src.Combatant.Name, n)
	}
	if h.absorb {
		src.Combatant.Heal(hp)
	}
	return hp, mental
}

func restore(d cards.DiceResult, self *Side) {
	switch d.Type {
	case cards.Heal:
		self.Combatant.Heal(d.Value)
	case cards.MentalHeal:
		self.Combatant.RestoreMental(d.Value)
	}
}

func decay(d cards.DiceResult, self *Side) {
	switch d.Type {
	case cards.Defense, cards.Heal, cards.MentalHeal:
		self.Combatant.AddParalysis(-1)
		self.Combatant.AddBleed(-1)
	}
}

func defenseTotal(seq cards.Sequence) int {
	total := 0
	for _, r := range seq {
		if r.Type == cards.Defense {
			total += r.Value
		}
	}
	return total
}

// faith heals a side that opened with defense by a quarter of all the
// defense it rolled this turn.
func (l *loop) faith(s *Side, first cards.DiceResult, defense int) {
	if first.Type != cards.Defense || !s.has(entities.SpecialFaith) || !s.Combatant.Alive() {
		return
	}
	amount := defense / FaithDivisor
	if amount <= 0 {
		return
	}
	hp := s.Combatant.Heal(amount)
	mental := s.Combatant.RestoreMental(amount)
	l.emit(EventStatus, -1, s, nil, hp, "%s's faith restores %d HP and %d mental", s.Combatant.Name, hp, mental)
}

func rollErr(err error, what string) error {
	return errors.Wrapf(err, "failed to roll %s", what)
}
