package entities

// Special names the one special effect an artifact may carry.
type Special string

// Artifact specials understood by the combat engine
const (
	SpecialNone        Special = ""
	SpecialLight       Special = "light"
	SpecialTime        Special = "time"
	SpecialStorm       Special = "storm"
	SpecialGamble      Special = "gamble"
	SpecialMeticulous  Special = "meticulous"
	SpecialLifeDrain   Special = "life_drain"
	SpecialReflection  Special = "reflection"
	SpecialFaith       Special = "faith"
	SpecialImmortality Special = "immortality"
	SpecialGoldenPurse Special = "golden_purse"
)

// KnownSpecials lists every special the engine reacts to
var KnownSpecials = []Special{
	SpecialLight,
	SpecialTime,
	SpecialStorm,
	SpecialGamble,
	SpecialMeticulous,
	SpecialLifeDrain,
	SpecialReflection,
	SpecialFaith,
	SpecialImmortality,
	SpecialGoldenPurse,
}

// Artifact is a piece of equipment with flat stat bonuses and at most one
// special. Its level is permanent; its in-battle stack progress is not.
type Artifact struct {
	ID      string         `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Level   int            `json:"level" yaml:"level"`
	Bonus   map[string]int `json:"bonus,omitempty" yaml:"bonus"`
	Special Special        `json:"special,omitempty" yaml:"special"`
}

// StatBonus returns the bonus for a stat at the artifact's level. Every five
// levels above the first add the base bonus once more.
func (a *Artifact) StatBonus(stat string) int {
	if a == nil {
		return 0
	}
	base := a.Bonus[stat]
	level := a.Level
	if level < 1 {
		level = 1
	}
	return base + base*(level-1)/5
}

// Clone returns a deep copy, nil-safe
func (a *Artifact) Clone() *Artifact {
	if a == nil {
		return nil
	}
	out := *a
	if a.Bonus != nil {
		out.Bonus = make(map[string]int, len(a.Bonus))
		for k, v := range a.Bonus {
			out.Bonus[k] = v
		}
	}
	return &out
}
