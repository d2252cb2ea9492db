package clash

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
	"github.com/KirkDiggler/rpg-clash/internal/testutils"
)

func TestApplyPairTriggers_LightDestruction(t *testing.T) {
	t.Run("below the threshold destroys the rolled count", func(t *testing.T) {
		target := newSide("target", atk(5), atk(5), atk(5))
		light := withSpecial(newSide("light"), entities.SpecialLight)
		light.Runtime.LightArmed = true

		_, err := ApplyPairTriggers(target, light, 2, testutils.NewScriptedRoller(1, 2, 2, 1))
		require.NoError(t, err)

		assert.Equal(t, cards.None, target.Dice[0].Type)
		assert.Equal(t, cards.None, target.Dice[1].Type)
		assert.Equal(t, 5, target.Dice[2].Value)
		assert.Equal(t, 2, light.Runtime.Get(KeyLightDestroy))
	})

	t.Run("reaching ten wipes every die and resets", func(t *testing.T) {
		target := newSide("target", atk(5), atk(5), atk(5))
		light := withSpecial(newSide("light"), entities.SpecialLight)
		light.Runtime.LightArmed = true
		light.Runtime.Set(KeyLightDestroy, 9)

		events, err := ApplyPairTriggers(target, light, 2, testutils.NewScriptedRoller(1, 3, 1))
		require.NoError(t, err)

		for _, d := range target.Dice {
			assert.False(t, d.Live())
			assert.Equal(t, 0, d.Value)
		}
		assert.Equal(t, 0, light.Runtime.Get(KeyLightDestroy))
		require.NotEmpty(t, events)
		assert.Contains(t, events[len(events)-1].Message, "erases every die")
	})

	t.Run("either side may hold the light", func(t *testing.T) {
		target := newSide("target", atk(5), atk(5))
		light := withSpecial(newSide("light"), entities.SpecialLight)
		light.Runtime.LightArmed = true

		_, err := ApplyPairTriggers(light, target, 2, testutils.NewScriptedRoller(1, 1, 2))
		require.NoError(t, err)

		assert.True(t, target.Dice[0].Live())
		assert.False(t, target.Dice[1].Live())
		assert.Equal(t, 1, light.Runtime.Get(KeyLightDestroy))
	})

	t.Run("not armed does nothing", func(t *testing.T) {
		target := newSide("target", atk(5))
		light := withSpecial(newSide("light"), entities.SpecialLight)

		_, err := ApplyPairTriggers(target, light, 2, testutils.ErrRoller{Err: errors.New("unexpected roll")})
		require.NoError(t, err)
		assert.True(t, target.Dice[0].Live())
	})
}

func TestApplyTurnTriggers_TimeStack(t *testing.T) {
	a := withSpecial(newSide("a", atk(5), none(), def(3)), entities.SpecialTime)
	a.Runtime.Set(KeyTimeStack, 2)

	_, err := ApplyTurnTriggers(a, newSide("b"), 1, testutils.NewFixedRoller(1))
	require.NoError(t, err)

	assert.Equal(t, 17, a.Dice[0].Value)
	assert.Equal(t, 0, a.Dice[1].Value)
	assert.Equal(t, 15, a.Dice[2].Value)
}

func TestApplyTurnTriggers_Nuke(t *testing.T) {
	a, b := newSide("a"), newSide("b")
	a.Combatant.Attack = 10
	a.Runtime.Set(KeyNukeArmed, 1)

	_, err := ApplyTurnTriggers(a, b, 1, testutils.NewFixedRoller(1))
	require.NoError(t, err)

	assert.Equal(t, 83, b.Combatant.HP)
	assert.Equal(t, 17, b.Taken)
	assert.Equal(t, 0, a.Runtime.Get(KeyNukeArmed))
}

func TestApplyTurnTriggers_Gamble(t *testing.T) {
	gambler := func(hp int) *Side {
		s := withSpecial(newSide("a", def(4), atk(6)), entities.SpecialGamble)
		s.CardName = CardLastGamble
		s.Combatant.HP = hp
		return s
	}

	t.Run("success heals and strikes with mental", func(t *testing.T) {
		a, b := gambler(40), newSide("b")

		_, err := ApplyTurnTriggers(a, b, 1, testutils.NewFixedRoller(1))
		require.NoError(t, err)

		assert.Equal(t, 100, a.Combatant.HP)
		assert.Equal(t, 50, b.Combatant.HP)
		assert.False(t, a.Dice[0].Live())
		assert.Equal(t, 6, a.Dice[1].Value)
	})

	t.Run("failure doubles defense", func(t *testing.T) {
		a, b := gambler(40), newSide("b")

		_, err := ApplyTurnTriggers(a, b, 1, testutils.NewFixedRoller(2))
		require.NoError(t, err)

		assert.Equal(t, 40, a.Combatant.HP)
		assert.Equal(t, 8, a.Dice[0].Value)
		assert.Equal(t, 100, b.Combatant.HP)
	})

	t.Run("above half HP never rolls", func(t *testing.T) {
		a, b := gambler(60), newSide("b")

		_, err := ApplyTurnTriggers(a, b, 1, testutils.ErrRoller{Err: errors.New("unexpected roll")})
		require.NoError(t, err)
		assert.Equal(t, 4, a.Dice[0].Value)
	})
}

func TestApplyTurnTriggers_LightArming(t *testing.T) {
	a := withSpecial(newSide("a", atk(3)), entities.SpecialLight)
	a.CardName = CardJudgementOfLight

	_, err := ApplyTurnTriggers(a, newSide("b"), 1, testutils.NewFixedRoller(1))
	require.NoError(t, err)

	assert.True(t, a.Runtime.LightPending)
	assert.False(t, a.Runtime.LightArmed, "arming takes effect next turn")

	a.Runtime.EndTurn(0)
	assert.True(t, a.Runtime.LightArmed)
}

func TestApplyTurnTriggers_NoOpponent(t *testing.T) {
	a := withSpecial(newSide("a", def(4)), entities.SpecialGamble)
	a.CardName = CardLastGamble
	a.Combatant.HP = 10
	a.Runtime.Set(KeyNukeArmed, 1)

	events, err := ApplyTurnTriggers(a, nil, 1, testutils.ErrRoller{Err: errors.New("unexpected roll")})
	require.NoError(t, err)

	assert.Empty(t, events)
	assert.Equal(t, 1, a.Runtime.Get(KeyNukeArmed), "stays banked until a target exists")
	assert.Equal(t, 4, a.Dice[0].Value)
}
