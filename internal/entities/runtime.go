package entities

// Runtime is the per-battle ephemeral state of one combatant. It is owned by
// the battle session, keyed by combatant ID, created empty when the battle
// starts and dropped when it ends. It is never saved with a Character.
type Runtime struct {
	Cooldowns           map[string]int `json:"cooldowns"`
	RevivalUsed         bool           `json:"revival_used"`
	BankedBonus         int            `json:"banked_bonus"`
	BankedThisTurn      bool           `json:"banked_this_turn"`
	LightArmed          bool           `json:"light_armed"`
	LightPending        bool           `json:"light_pending"`
	DamageTakenLastTurn int            `json:"damage_taken_last_turn"`
}

// NewRuntime returns an empty runtime
func NewRuntime() *Runtime {
	return &Runtime{Cooldowns: make(map[string]int)}
}

// Get reads a cooldown counter, zero when unset
func (r *Runtime) Get(key string) int {
	return r.Cooldowns[key]
}

// Set writes a cooldown counter; negative values are stored as zero
func (r *Runtime) Set(key string, v int) {
	if r.Cooldowns == nil {
		r.Cooldowns = make(map[string]int)
	}
	r.Cooldowns[key] = max(0, v)
}

// Add increments a cooldown counter and returns the new value
func (r *Runtime) Add(key string, delta int) int {
	r.Set(key, r.Get(key)+delta)
	return r.Cooldowns[key]
}

// EndTurn rotates per-turn flags once every pair of the turn has resolved
func (r *Runtime) EndTurn(damageTaken int) {
	r.LightArmed = r.LightPending
	r.LightPending = false
	r.BankedThisTurn = false
	r.DamageTakenLastTurn = damageTaken
}

// Clone returns a deep copy, nil-safe
func (r *Runtime) Clone() *Runtime {
	if r == nil {
		return nil
	}
	out := *r
	out.Cooldowns = make(map[string]int, len(r.Cooldowns))
	for k, v := range r.Cooldowns {
		out.Cooldowns[k] = v
	}
	return &out
}
