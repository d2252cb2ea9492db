package content

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/engine/effects"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

func TestLoad_Embedded(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)

	t.Run("cards", func(t *testing.T) {
		assert.Contains(t, r.CardNames(), "Slash")

		card, err := r.Card("Bloodletting")
		require.NoError(t, err)
		require.Len(t, card.Dice(), 3)
		assert.Equal(t, effects.Bleed{Stacks: 2}, card.Dice()[0].Effect)

		for name, family := range map[string]cards.Family{
			"Coin Toss":   cards.FamilyCurrency,
			"Riposte":     cards.FamilyCounterStance,
			"Steel Will":  cards.FamilyResolve,
			"Fate's Edge": cards.FamilyFated,
			"Last Gamble": cards.FamilyStandard,
		} {
			c, err := r.Card(name)
			require.NoError(t, err, name)
			assert.Equal(t, family, c.Family(), name)
		}

		_, err = r.Card("Missing")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("monsters start at full health with artifact bonuses", func(t *testing.T) {
		m, err := r.Monster("bandit")
		require.NoError(t, err)
		assert.Equal(t, entities.KindMonster, m.Kind)
		assert.Equal(t, m.MaxHP, m.HP)
		assert.Equal(t, 6, m.Attack)
		assert.True(t, m.HasSpecial(entities.SpecialLifeDrain))

		other, err := r.Monster("bandit")
		require.NoError(t, err)
		other.Deck[0] = "changed"
		assert.Equal(t, "Slash", m.Deck[0], "every call builds a fresh combatant")
	})

	t.Run("heroes", func(t *testing.T) {
		assert.Equal(t, []string{"aria", "brannoc", "tamsin", "vex"}, r.HeroIDs())

		h, err := r.Hero("aria")
		require.NoError(t, err)
		require.NotNil(t, h.Artifact)
		assert.Equal(t, entities.SpecialLight, h.Artifact.Special)
		assert.Equal(t, entities.SpecialGoldenPurse, h.Engraved.Special)

		_, err = r.Hero("nobody")
		assert.True(t, errors.IsNotFound(err))
	})
}

func testFS(cardsYAML, monstersYAML string) fstest.MapFS {
	return fstest.MapFS{
		fileCards:     {Data: []byte(cardsYAML)},
		fileMonsters:  {Data: []byte(monstersYAML)},
		fileArtifacts: {Data: []byte("artifacts:\n  - { id: ring, name: Ring, level: 1, special: faith }\n")},
		fileHeroes:    {Data: []byte("heroes: []\n")},
	}
}

func TestLoadFS_Validation(t *testing.T) {
	const okMonsters = "monsters: []\n"

	testCases := []struct {
		name     string
		cards    string
		monsters string
		contains string
	}{
		{
			name:     "malformed effect tag",
			cards:    "cards:\n  - name: Bad\n    dice:\n      - { type: attack, min: 1, max: 2, effect: bleed_x }\n",
			monsters: okMonsters,
			contains: "cards[Bad].dice[0]",
		},
		{
			name:     "unknown die type",
			cards:    "cards:\n  - name: Bad\n    dice:\n      - { type: punch, min: 1, max: 2 }\n",
			monsters: okMonsters,
			contains: "unknown type",
		},
		{
			name:     "unknown family",
			cards:    "cards:\n  - name: Bad\n    family: cursed\n    dice:\n      - { type: attack, min: 1, max: 2 }\n",
			monsters: okMonsters,
			contains: "unknown family",
		},
		{
			name:     "inverted range",
			cards:    "cards:\n  - name: Bad\n    dice:\n      - { type: attack, min: 5, max: 2 }\n",
			monsters: okMonsters,
			contains: "invalid range",
		},
		{
			name:     "dangling deck reference",
			cards:    "cards:\n  - name: Poke\n    dice:\n      - { type: attack, min: 1, max: 2 }\n",
			monsters: "monsters:\n  - { id: rat, name: Rat, hp: 5, mental: 5, pattern: aggressive, deck: [Bite] }\n",
			contains: "unknown card \"Bite\"",
		},
		{
			name:     "unknown pattern",
			cards:    "cards:\n  - name: Poke\n    dice:\n      - { type: attack, min: 1, max: 2 }\n",
			monsters: "monsters:\n  - { id: rat, name: Rat, hp: 5, mental: 5, pattern: sneaky, deck: [Poke] }\n",
			contains: "unknown pattern",
		},
		{
			name:     "unknown artifact",
			cards:    "cards:\n  - name: Poke\n    dice:\n      - { type: attack, min: 1, max: 2 }\n",
			monsters: "monsters:\n  - { id: rat, name: Rat, hp: 5, mental: 5, pattern: aggressive, deck: [Poke], artifact: crown }\n",
			contains: "unknown artifact",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFS(testFS(tc.cards, tc.monsters))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestLoadFS_BadYAML(t *testing.T) {
	_, err := LoadFS(testFS("cards: [", "monsters: []\n"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestLoadFS_MissingFile(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{})
	require.Error(t, err)
}
