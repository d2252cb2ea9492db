package battle_test

import (
	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/engine/clash"
	"github.com/KirkDiggler/rpg-clash/internal/engine/effects"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
	"github.com/KirkDiggler/rpg-clash/internal/testutils/builders"
)

// testCatalogue is a small fixed content set. Every combatant below has zero
// attack and defense so die values reach the clash unscaled.
type testCatalogue struct {
	cards    map[string]cards.Card
	monsters map[string]*entities.Combatant
}

func newTestCatalogue() *testCatalogue {
	cat := &testCatalogue{
		cards:    make(map[string]cards.Card),
		monsters: make(map[string]*entities.Combatant),
	}

	for _, c := range []cards.Card{
		cards.NewStandard("Strike", []cards.Die{{Type: cards.Attack, Min: 10, Max: 10}}),
		cards.NewStandard("Block", []cards.Die{{Type: cards.Defense, Min: 5, Max: 5}}),
		cards.NewStandard("Rush", []cards.Die{{Type: cards.Attack, Min: 10, Max: 10, Effect: effects.TimeAccel{}}}),
		cards.NewStandard(clash.CardLastGamble, []cards.Die{{Type: cards.Defense, Min: 5, Max: 5}}),
	} {
		cat.cards[c.Name()] = c
	}

	cat.monsters["dummy"] = monster("dummy", 30, 20, "Strike")
	cat.monsters["brute"] = monster("brute", 100, 10, "Strike")
	cat.monsters["wall"] = monster("wall", 100, 20, "Block")

	cat.monsters["phoenix"] = builders.NewCombatantBuilder("phoenix").
		AsMonster(entities.PatternAggressive, "Strike").
		WithHP(10).
		WithMental(20).
		WithSpecial(entities.SpecialImmortality).
		Build()

	cat.monsters["gambler"] = builders.NewCombatantBuilder("gambler").
		AsMonster(entities.PatternDefensive, clash.CardLastGamble).
		WithHP(100).
		WithMental(20).
		WithSpecial(entities.SpecialGamble).
		Build()

	return cat
}

func monster(id string, hp, mental int, deck ...string) *entities.Combatant {
	return builders.NewCombatantBuilder(id).
		AsMonster(entities.PatternAggressive, deck...).
		WithHP(hp).
		WithMental(mental).
		Build()
}

func (c *testCatalogue) Card(name string) (cards.Card, error) {
	card, ok := c.cards[name]
	if !ok {
		return nil, errors.NotFoundf("card %q not found", name)
	}
	return card, nil
}

func (c *testCatalogue) Monster(id string) (*entities.Combatant, error) {
	m, ok := c.monsters[id]
	if !ok {
		return nil, errors.NotFoundf("monster %q not found", id)
	}
	return m.Clone(), nil
}

func hero(id string) *entities.Character {
	return builders.NewCharacterBuilder(id).
		WithCurrency(300).
		WithCards("Strike", "Block", "Rush").
		Build()
}
