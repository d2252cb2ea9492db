// Package clash resolves one turn between two sides: the pre-clash triggers
// and the die-by-die resolution loop.
//
// Everything here is synchronous and performs no I/O. Randomness comes from
// the dice.Roller passed in, so a fixed roller gives a fixed outcome.
package clash

import (
	"fmt"

	"github.com/KirkDiggler/rpg-clash/internal/engine/cards"
	"github.com/KirkDiggler/rpg-clash/internal/entities"
)

// Runtime cooldown keys
const (
	KeyLightDestroy = "light_destroy"
	KeyTimeStack    = "time_stack"
	KeyTimeProgress = "time_progress"
	KeyNukeArmed    = "nuke_armed"
	KeyStormCharge  = "storm_charge"
	KeyDrainCount   = "drain_count"
)

// Card names with artifact triggers
const (
	CardLastGamble       = "Last Gamble"
	CardJudgementOfLight = "Judgement of Light"
)

// Tuning
const (
	LightThreshold    = 10
	LightMaxDestroy   = 3
	TimeBonusPerStack = 6
	TimeMaxStacks     = 10
	TimeBurstFactor   = 5
	BankedBonus       = 6
	StormCharges      = 5
	GambleOdds        = 7
	DrainEvery        = 5
	FaithDivisor      = 4
)

// Side is one combatant's participation in a pair resolution.
type Side struct {
	Combatant *entities.Combatant
	Runtime   *entities.Runtime
	// Dice is the scaled sequence for this pair. Triggers mutate it.
	Dice     cards.Sequence
	CardName string
	Stunned  bool
	// Taken accumulates HP actually lost while resolving.
	Taken int
}

func (s *Side) id() string {
	return s.Combatant.ID
}

func (s *Side) has(sp entities.Special) bool {
	return s.Combatant.HasSpecial(sp)
}

func (s *Side) hurt(amount int) int {
	n := s.Combatant.TakeDamage(amount)
	s.Taken += n
	return n
}

// EventKind classifies log entries
type EventKind string

// Event kinds
const (
	EventClash   EventKind = "clash"
	EventTrigger EventKind = "trigger"
	EventStatus  EventKind = "status"
	EventDrain   EventKind = "drain"
	EventDefeat  EventKind = "defeat"
	EventSummary EventKind = "summary"
)

// ClashRecord is the outcome of one die-versus-die comparison.
type ClashRecord struct {
	A         cards.DiceResult `json:"a"`
	B         cards.DiceResult `json:"b"`
	WinA      bool             `json:"win_a"`
	WinB      bool             `json:"win_b"`
	DamageToA int              `json:"damage_to_a"`
	DamageToB int              `json:"damage_to_b"`
	MentalToA int              `json:"mental_to_a"`
	MentalToB int              `json:"mental_to_b"`
}

// Event is one ordered line of the turn log.
type Event struct {
	Kind     EventKind    `json:"kind"`
	Turn     int          `json:"turn"`
	Index    int          `json:"index"`
	ActorID  string       `json:"actor_id,omitempty"`
	TargetID string       `json:"target_id,omitempty"`
	Amount   int          `json:"amount,omitempty"`
	Message  string       `json:"message"`
	Clash    *ClashRecord `json:"clash,omitempty"`
}

// Result is the output of Resolve.
type Result struct {
	Events []Event
	// Ended is set when a side reached 0 HP and the loop stopped early.
	Ended bool
}

type recorder struct {
	turn   int
	events []Event
}

func (r *recorder) emit(kind EventKind, index int, actor, target *Side, amount int, format string, args ...any) {
	e := Event{
		Kind:    kind,
		Turn:    r.turn,
		Index:   index,
		Amount:  amount,
		Message: fmt.Sprintf(format, args...),
	}
	if actor != nil {
		e.ActorID = actor.id()
	}
	if target != nil {
		e.TargetID = target.id()
	}
	r.events = append(r.events, e)
}
