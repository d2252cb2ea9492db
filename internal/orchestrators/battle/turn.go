package battle

import (
	"maps"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-clash/internal/engine/ai"
	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/engine/clash"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

// chooseCards resolves the card of every combatant that acts this turn.
// Dead and stunned combatants are left out.
func (o *orchestrator) chooseCards(b *entities.Battle, actions map[string]string, roller dice.Roller) (map[string]cards.Card, error) {
	for _, id := range slices.Sorted(maps.Keys(actions)) {
		c := b.Combatant(id)
		switch {
		case c == nil:
			return nil, errors.InvalidArgumentf("combatant %s is not in battle %s", id, b.ID).WithBattle(b.ID)
		case !c.Alive():
			return nil, errors.FailedPreconditionf("combatant %s is defeated", id).WithCombatant(id)
		case b.Stunned[id]:
			return nil, errors.FailedPreconditionf("combatant %s is stunned this turn", id).WithCombatant(id).WithTurn(b.Turn)
		}
	}

	picks := make(map[string]cards.Card)
	for _, c := range b.Combatants() {
		if !c.Alive() || b.Stunned[c.ID] {
			continue
		}

		name, ok := actions[c.ID]
		if !ok {
			if c.Kind == entities.KindPlayer {
				return nil, errors.InvalidArgumentf("missing action for %s", c.ID).WithCombatant(c.ID)
			}
			var err error
			name, err = ai.Choose(c, o.content, roller)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to choose card for %s", c.ID)
			}
		}

		if !slices.Contains(c.Deck, name) {
			return nil, errors.InvalidArgumentf("card %q is not in the deck of %s", name, c.ID).WithCombatant(c.ID)
		}

		card, err := o.content.Card(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load card for %s", c.ID)
		}
		picks[c.ID] = card
	}

	return picks, nil
}

// resolveTurn produces every card once, then resolves each pair of the
// topology in order against the shared combatants.
func resolveTurn(b *entities.Battle, picks map[string]cards.Card, roller dice.Roller) ([]clash.Event, error) {
	seqs := make(map[string]cards.Sequence, len(picks))
	for _, c := range b.Combatants() {
		rt := b.RuntimeFor(c.ID)
		bonus := rt.BankedBonus
		rt.BankedBonus = 0

		card, ok := picks[c.ID]
		if !ok {
			continue
		}

		seq, err := card.Produce(&cards.Context{
			Actor:               c,
			DamageTakenLastTurn: rt.DamageTakenLastTurn,
			Roller:              roller,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to produce %q for %s", card.Name(), c.ID)
		}
		cards.Scale(seq, c)
		seq.AddToLive(bonus)
		seqs[c.ID] = seq
	}

	taken := make(map[string]int)
	entries, err := turnTriggers(b, picks, seqs, taken, roller)
	if err != nil {
		return nil, err
	}

	for _, p := range pairs(b) {
		if !p[0].Alive() || !p[1].Alive() {
			continue
		}

		sides := [2]*clash.Side{}
		for i, c := range p {
			sides[i] = &clash.Side{
				Combatant: c,
				Runtime:   b.RuntimeFor(c.ID),
				Dice:      seqs[c.ID].Clone(),
				Stunned:   b.Stunned[c.ID],
			}
			if card, ok := picks[c.ID]; ok {
				sides[i].CardName = card.Name()
			}
		}

		triggered, err := clash.ApplyPairTriggers(sides[0], sides[1], b.Turn, roller)
		if err != nil {
			return nil, err
		}
		entries = append(entries, triggered...)

		res, err := clash.Resolve(sides[0], sides[1], b.Turn, roller)
		if err != nil {
			return nil, err
		}
		entries = append(entries, res.Events...)

		for _, s := range sides {
			taken[s.Combatant.ID] += s.Taken
			if e, ok := revive(s, b.Turn); ok {
				entries = append(entries, e)
			}
		}
	}

	for _, c := range b.Combatants() {
		b.RuntimeFor(c.ID).EndTurn(taken[c.ID])
	}

	return entries, nil
}

// turnTriggers runs every combatant's own triggers once, aimed at the first
// living opponent it faces. Dice changes land on the shared sequence before
// it is cloned per pair.
func turnTriggers(
	b *entities.Battle,
	picks map[string]cards.Card,
	seqs map[string]cards.Sequence,
	taken map[string]int,
	roller dice.Roller,
) ([]clash.Event, error) {
	sides := make(map[string]*clash.Side)
	side := func(c *entities.Combatant) *clash.Side {
		if s, ok := sides[c.ID]; ok {
			return s
		}
		s := &clash.Side{
			Combatant: c,
			Runtime:   b.RuntimeFor(c.ID),
			Dice:      seqs[c.ID],
			Stunned:   b.Stunned[c.ID],
		}
		if card, ok := picks[c.ID]; ok {
			s.CardName = card.Name()
		}
		sides[c.ID] = s
		return s
	}

	var entries []clash.Event
	matchups := pairs(b)
	for _, c := range b.Combatants() {
		if !c.Alive() || !inPair(matchups, c) {
			continue
		}

		var opp *clash.Side
		if o := opponent(matchups, c); o != nil {
			opp = side(o)
		}
		self := side(c)
		triggered, err := clash.ApplyTurnTriggers(self, opp, b.Turn, roller)
		if err != nil {
			return nil, err
		}
		entries = append(entries, triggered...)
	}

	for _, c := range b.Combatants() {
		s, ok := sides[c.ID]
		if !ok {
			continue
		}
		taken[c.ID] += s.Taken
		if e, ok := revive(s, b.Turn); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func inPair(matchups [][2]*entities.Combatant, c *entities.Combatant) bool {
	for _, p := range matchups {
		if p[0] == c || p[1] == c {
			return true
		}
	}
	return false
}

// opponent is the first living combatant c is matched against
func opponent(matchups [][2]*entities.Combatant, c *entities.Combatant) *entities.Combatant {
	for _, p := range matchups {
		var other *entities.Combatant
		switch c {
		case p[0]:
			other = p[1]
		case p[1]:
			other = p[0]
		default:
			continue
		}
		if other.Alive() {
			return other
		}
	}
	return nil
}

// pairs lists the matchups of a turn, side A first in each
func pairs(b *entities.Battle) [][2]*entities.Combatant {
	if len(b.SideA) == 0 || len(b.SideB) == 0 {
		return nil
	}

	var out [][2]*entities.Combatant
	switch b.Topology {
	case entities.TopologyHunt:
		for _, m := range b.SideB {
			out = append(out, [2]*entities.Combatant{b.SideA[0], m})
		}
	case entities.TopologyRaid:
		for _, p := range b.SideA {
			out = append(out, [2]*entities.Combatant{p, b.SideB[0]})
		}
	default:
		out = append(out, [2]*entities.Combatant{b.SideA[0], b.SideB[0]})
	}
	return out
}

// revive restores a fallen combatant holding immortality, once per battle
func revive(s *clash.Side, turn int) (clash.Event, bool) {
	c := s.Combatant
	if c.Alive() || !c.HasSpecial(entities.SpecialImmortality) || s.Runtime.RevivalUsed {
		return clash.Event{}, false
	}

	s.Runtime.RevivalUsed = true
	c.Heal(c.MaxHP)
	c.RestoreMental(c.MaxMental)

	return clash.Event{
		Kind:    clash.EventStatus,
		Turn:    turn,
		Index:   -1,
		ActorID: c.ID,
		Amount:  c.HP,
		Message: c.Name + " rises again with full HP and mental",
	}, true
}

// advance moves a resolved battle to its next state: terminal when a side
// is wiped, otherwise the next turn with stuns applied.
func advance(b *entities.Battle) []clash.Event {
	switch {
	case !anyAlive(b.SideA):
		b.Outcome = entities.OutcomeSideBWins
	case !anyAlive(b.SideB):
		b.Outcome = entities.OutcomeSideAWins
	default:
		b.Outcome = entities.OutcomeContinuing
	}

	if b.Outcome != entities.OutcomeContinuing {
		b.State = entities.StateTerminal
		b.Stunned = nil
		return []clash.Event{{
			Kind:    clash.EventSummary,
			Turn:    b.Turn,
			Index:   -1,
			Message: "battle over: " + string(b.Outcome),
		}}
	}

	b.Turn++
	b.State = entities.StateAwaitingActions
	b.Stunned = make(map[string]bool)

	var entries []clash.Event
	for _, c := range b.Combatants() {
		if !c.Alive() || c.Mental > 0 {
			continue
		}
		b.Stunned[c.ID] = true
		recovered := c.RestoreMental(c.MaxMental / 2)
		entries = append(entries, clash.Event{
			Kind:    clash.EventStatus,
			Turn:    b.Turn,
			Index:   -1,
			ActorID: c.ID,
			Amount:  recovered,
			Message: c.Name + " panics and is stunned",
		})
	}
	return entries
}

func anyAlive(side []*entities.Combatant) bool {
	for _, c := range side {
		if c.Alive() {
			return true
		}
	}
	return false
}
