// Package ai picks cards for combatants that are not driven by a player.
package ai

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

// Card weights
const (
	WeightPreferred = 70
	WeightOther     = 15
	WeightBalanced  = 33
)

// CardSource resolves card names to cards
type CardSource interface {
	Card(name string) (cards.Card, error)
}

// Weight scores a card for a pattern by its first die.
func Weight(card cards.Card, pattern entities.Pattern) int {
	if pattern == entities.PatternBalanced || pattern == "" {
		return WeightBalanced
	}

	first := cards.None
	if ds := card.Dice(); len(ds) > 0 {
		first = ds[0].Type
	}

	if prefers(pattern, first) {
		return WeightPreferred
	}
	return WeightOther
}

func prefers(p entities.Pattern, t cards.ActionType) bool {
	switch p {
	case entities.PatternAggressive:
		return t == cards.Attack
	case entities.PatternDefensive:
		return t == cards.Defense || t == cards.Counter || t == cards.Heal
	}
	return false
}

// Choose draws one card from the combatant's deck, weighted by its pattern.
func Choose(c *entities.Combatant, source CardSource, roller dice.Roller) (string, error) {
	if len(c.Deck) == 0 {
		return "", errors.FailedPreconditionf("combatant %s has no cards", c.ID)
	}

	weights := make([]int, len(c.Deck))
	total := 0
	for i, name := range c.Deck {
		card, err := source.Card(name)
		if err != nil {
			return "", errors.Wrapf(err, "failed to load card %q", name)
		}
		weights[i] = Weight(card, c.Pattern)
		total += weights[i]
	}

	pick, err := roller.Roll(total)
	if err != nil {
		return "", errors.Wrap(err, "failed to roll card choice")
	}

	for i, w := range weights {
		if pick <= w {
			return c.Deck[i], nil
		}
		pick -= w
	}
	return c.Deck[len(c.Deck)-1], nil
}
