// Package effects defines the closed set of special effects a die can carry.
//
// Effects are authored in content as compact tags such as "bleed_3_on_win" or
// "self_dmg_by_para_30". Parse turns a tag into one of the variant types in
// this package when content loads, so the combat engine only ever switches
// over typed values.
package effects

import "fmt"

// Effect is implemented only by the variant types of this package.
type Effect interface {
	// Tag renders the effect back to its content tag
	Tag() string
	isEffect()
}

// Condition gates when a status effect lands.
type Condition int

const (
	// Always applies the effect to the opponent unconditionally
	Always Condition = iota
	// OnWin applies the effect to the opponent only if the die won its clash
	OnWin
	// Self applies the effect to the die's owner
	Self
)

func (c Condition) suffix() string {
	switch c {
	case OnWin:
		return "_on_win"
	case Self:
		return "_self"
	default:
		return ""
	}
}

// Bleed adds bleed stacks.
type Bleed struct {
	Stacks int
	When   Condition
}

// Paralysis adds paralysis stacks.
type Paralysis struct {
	Stacks int
	When   Condition
}

// ParalysisChance adds paralysis stacks to the opponent with Percent chance.
type ParalysisChance struct {
	Stacks  int
	Percent int
	OnWin   bool
}

// DamageByParalysis deals PerStack fixed damage per opponent paralysis stack.
type DamageByParalysis struct {
	PerStack int
}

// SelfDamage hurts the owner for a random amount in [Min, Max].
type SelfDamage struct {
	Min int
	Max int
}

// SelfDamageByParalysis hurts the owner PerStack per own paralysis stack.
type SelfDamageByParalysis struct {
	PerStack int
}

// AttackBoostByParalysis adds PerStack per opponent paralysis stack instead
// of being dampened by the owner's paralysis.
type AttackBoostByParalysis struct {
	PerStack int
}

// LockOthers destroys every later die of the opponent.
type LockOthers struct{}

// BleedSynergy adds the opponent's bleed stacks to the die value.
type BleedSynergy struct{}

// AbsorbHP heals the owner by the damage the die inflicted.
type AbsorbHP struct{}

// TimeAccel banks a next-turn bonus when the die wins.
type TimeAccel struct{}

// DestroyNextOnHit destroys the opponent's next die when the die connects.
type DestroyNextOnHit struct{}

func (Bleed) isEffect()                  {}
func (Paralysis) isEffect()              {}
func (ParalysisChance) isEffect()        {}
func (DamageByParalysis) isEffect()      {}
func (SelfDamage) isEffect()             {}
func (SelfDamageByParalysis) isEffect()  {}
func (AttackBoostByParalysis) isEffect() {}
func (LockOthers) isEffect()             {}
func (BleedSynergy) isEffect()           {}
func (AbsorbHP) isEffect()               {}
func (TimeAccel) isEffect()              {}
func (DestroyNextOnHit) isEffect()       {}

func (e Bleed) Tag() string     { return fmt.Sprintf("bleed_%d%s", e.Stacks, e.When.suffix()) }
func (e Paralysis) Tag() string { return fmt.Sprintf("paralysis_%d%s", e.Stacks, e.When.suffix()) }

func (e ParalysisChance) Tag() string {
	tag := fmt.Sprintf("paralysis_%d_prob_%d", e.Stacks, e.Percent)
	if e.OnWin {
		tag += "_on_win"
	}
	return tag
}

func (e DamageByParalysis) Tag() string      { return fmt.Sprintf("dmg_by_para_%d", e.PerStack) }
func (e SelfDamage) Tag() string             { return fmt.Sprintf("self_dmg_%d_%d", e.Min, e.Max) }
func (e SelfDamageByParalysis) Tag() string  { return fmt.Sprintf("self_dmg_by_para_%d", e.PerStack) }
func (e AttackBoostByParalysis) Tag() string { return fmt.Sprintf("atk_boost_para_%d", e.PerStack) }
func (LockOthers) Tag() string               { return tagLockOthers }
func (BleedSynergy) Tag() string             { return tagBleedSynergy }
func (AbsorbHP) Tag() string                 { return tagAbsorbHP }
func (TimeAccel) Tag() string                { return tagTimeAccel }
func (DestroyNextOnHit) Tag() string         { return tagDestroyNextOnHit }
