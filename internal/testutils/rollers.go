package testutils

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller returns queued values in order, clamped to [1, size], and
// repeats its fallback once the queue is empty.
type ScriptedRoller struct {
	mu       sync.Mutex
	values   []int
	fallback int
	calls    []int
}

var _ dice.Roller = (*ScriptedRoller)(nil)

// NewScriptedRoller returns a roller that yields values, then fallback
func NewScriptedRoller(fallback int, values ...int) *ScriptedRoller {
	return &ScriptedRoller{values: values, fallback: fallback}
}

// NewFixedRoller always returns v (clamped to the die size)
func NewFixedRoller(v int) *ScriptedRoller {
	return NewScriptedRoller(v)
}

// NewMaxRoller always rolls the highest face
func NewMaxRoller() *ScriptedRoller {
	return NewScriptedRoller(1 << 30)
}

// Roll implements dice.Roller
func (r *ScriptedRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid die size %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, size)
	v := r.fallback
	if len(r.values) > 0 {
		v = r.values[0]
		r.values = r.values[1:]
	}
	return min(max(v, 1), size), nil
}

// RollN implements dice.Roller
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Calls returns the die sizes requested so far
func (r *ScriptedRoller) Calls() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.calls...)
}

// ErrRoller fails every roll
type ErrRoller struct {
	Err error
}

var _ dice.Roller = ErrRoller{}

// Roll implements dice.Roller
func (r ErrRoller) Roll(int) (int, error) { return 0, r.Err }

// RollN implements dice.Roller
func (r ErrRoller) RollN(int, int) ([]int, error) { return nil, r.Err }
