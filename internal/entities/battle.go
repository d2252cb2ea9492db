package entities

// Topology is the shape of a battle
type Topology string

// Battle topologies
const (
	// TopologyDuel is one player against one opponent
	TopologyDuel Topology = "duel"
	// TopologyHunt is one player against several monsters
	TopologyHunt Topology = "hunt"
	// TopologyRaid is a party against one boss
	TopologyRaid Topology = "raid"
)

// BattleState is the state machine position of a battle
type BattleState string

// Battle states
const (
	StateAwaitingActions BattleState = "awaiting_actions"
	StateResolving       BattleState = "resolving"
	StateTerminal        BattleState = "terminal"
)

// Outcome is the result of a battle
type Outcome string

// Outcomes
const (
	OutcomeContinuing Outcome = "continuing"
	OutcomeSideAWins  Outcome = "side_a_wins"
	OutcomeSideBWins  Outcome = "side_b_wins"
)

// Battle is a battle session: the combatants of both sides plus everything
// that lives only as long as the battle.
type Battle struct {
	ID       string      `json:"id"`
	Topology Topology    `json:"topology"`
	State    BattleState `json:"state"`
	Outcome  Outcome     `json:"outcome"`
	Turn     int         `json:"turn"`
	Seed     int64       `json:"seed"`

	SideA []*Combatant `json:"side_a"`
	SideB []*Combatant `json:"side_b"`

	// Runtime is keyed by combatant ID.
	Runtime map[string]*Runtime `json:"runtime"`
	// Stunned marks combatants that cannot act on the pending turn.
	Stunned map[string]bool `json:"stunned,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Combatants returns side A followed by side B
func (b *Battle) Combatants() []*Combatant {
	out := make([]*Combatant, 0, len(b.SideA)+len(b.SideB))
	out = append(out, b.SideA...)
	return append(out, b.SideB...)
}

// Combatant finds a combatant of either side by ID
func (b *Battle) Combatant(id string) *Combatant {
	for _, c := range b.Combatants() {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RuntimeFor returns the runtime of a combatant, creating it if missing
func (b *Battle) RuntimeFor(id string) *Runtime {
	if b.Runtime == nil {
		b.Runtime = make(map[string]*Runtime)
	}
	rt, ok := b.Runtime[id]
	if !ok {
		rt = NewRuntime()
		b.Runtime[id] = rt
	}
	return rt
}

// Clone returns a deep copy
func (b *Battle) Clone() *Battle {
	if b == nil {
		return nil
	}
	out := *b
	out.SideA = cloneCombatants(b.SideA)
	out.SideB = cloneCombatants(b.SideB)
	out.Runtime = make(map[string]*Runtime, len(b.Runtime))
	for id, rt := range b.Runtime {
		out.Runtime[id] = rt.Clone()
	}
	if b.Stunned != nil {
		out.Stunned = make(map[string]bool, len(b.Stunned))
		for id, v := range b.Stunned {
			out.Stunned[id] = v
		}
	}
	return &out
}

func cloneCombatants(in []*Combatant) []*Combatant {
	if in == nil {
		return nil
	}
	out := make([]*Combatant, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
