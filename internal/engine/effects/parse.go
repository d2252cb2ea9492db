package effects

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

const (
	tagLockOthers       = "lock_others"
	tagBleedSynergy     = "bleed_synergy"
	tagAbsorbHP         = "absorb_hp"
	tagTimeAccel        = "time_accel"
	tagDestroyNextOnHit = "destroy_next_on_hit"

	prefixDamageByPara     = "dmg_by_para_"
	prefixSelfDamageByPara = "self_dmg_by_para_"
	prefixSelfDamage       = "self_dmg_"
	prefixAttackBoostPara  = "atk_boost_para_"
	prefixBleed            = "bleed_"
	prefixParalysis        = "paralysis_"
)

// Parse converts a content tag into an Effect. An empty tag yields a nil
// Effect and no error.
func Parse(tag string) (Effect, error) {
	tag = strings.TrimSpace(tag)
	switch tag {
	case "":
		return nil, nil
	case tagLockOthers:
		return LockOthers{}, nil
	case tagBleedSynergy:
		return BleedSynergy{}, nil
	case tagAbsorbHP:
		return AbsorbHP{}, nil
	case tagTimeAccel:
		return TimeAccel{}, nil
	case tagDestroyNextOnHit:
		return DestroyNextOnHit{}, nil
	}

	// Longer prefixes first: self_dmg_by_para_ shares a prefix with self_dmg_.
	switch {
	case strings.HasPrefix(tag, prefixDamageByPara):
		n, err := positive(tag, strings.TrimPrefix(tag, prefixDamageByPara))
		if err != nil {
			return nil, err
		}
		return DamageByParalysis{PerStack: n}, nil

	case strings.HasPrefix(tag, prefixSelfDamageByPara):
		n, err := positive(tag, strings.TrimPrefix(tag, prefixSelfDamageByPara))
		if err != nil {
			return nil, err
		}
		return SelfDamageByParalysis{PerStack: n}, nil

	case strings.HasPrefix(tag, prefixSelfDamage):
		return parseSelfDamage(tag)

	case strings.HasPrefix(tag, prefixAttackBoostPara):
		n, err := positive(tag, strings.TrimPrefix(tag, prefixAttackBoostPara))
		if err != nil {
			return nil, err
		}
		return AttackBoostByParalysis{PerStack: n}, nil

	case strings.HasPrefix(tag, prefixBleed):
		stacks, when, err := parseStatus(tag, strings.TrimPrefix(tag, prefixBleed))
		if err != nil {
			return nil, err
		}
		return Bleed{Stacks: stacks, When: when}, nil

	case strings.HasPrefix(tag, prefixParalysis):
		return parseParalysis(tag)
	}

	return nil, errors.InvalidArgumentf("unknown effect tag %q", tag)
}

func parseSelfDamage(tag string) (Effect, error) {
	parts := strings.Split(strings.TrimPrefix(tag, prefixSelfDamage), "_")
	if len(parts) != 2 {
		return nil, errors.InvalidArgumentf("effect tag %q: expected self_dmg_<min>_<max>", tag)
	}

	lo, err := nonNegative(tag, parts[0])
	if err != nil {
		return nil, err
	}
	hi, err := nonNegative(tag, parts[1])
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, errors.InvalidArgumentf("effect tag %q: min %d exceeds max %d", tag, lo, hi)
	}

	return SelfDamage{Min: lo, Max: hi}, nil
}

func parseParalysis(tag string) (Effect, error) {
	rest := strings.TrimPrefix(tag, prefixParalysis)
	if !strings.Contains(rest, "_prob_") {
		stacks, when, err := parseStatus(tag, rest)
		if err != nil {
			return nil, err
		}
		return Paralysis{Stacks: stacks, When: when}, nil
	}

	onWin := strings.HasSuffix(rest, "_on_win")
	rest = strings.TrimSuffix(rest, "_on_win")

	parts := strings.Split(rest, "_prob_")
	if len(parts) != 2 {
		return nil, errors.InvalidArgumentf("effect tag %q: expected paralysis_<n>_prob_<p>", tag)
	}

	stacks, err := positive(tag, parts[0])
	if err != nil {
		return nil, err
	}
	percent, err := positive(tag, parts[1])
	if err != nil {
		return nil, err
	}
	if percent > 100 {
		return nil, errors.InvalidArgumentf("effect tag %q: probability %d exceeds 100", tag, percent)
	}

	return ParalysisChance{Stacks: stacks, Percent: percent, OnWin: onWin}, nil
}

// parseStatus reads "<n>", "<n>_on_win" or "<n>_self".
func parseStatus(tag, rest string) (int, Condition, error) {
	when := Always
	switch {
	case strings.HasSuffix(rest, "_on_win"):
		when = OnWin
		rest = strings.TrimSuffix(rest, "_on_win")
	case strings.HasSuffix(rest, "_self"):
		when = Self
		rest = strings.TrimSuffix(rest, "_self")
	}

	n, err := positive(tag, rest)
	if err != nil {
		return 0, Always, err
	}
	return n, when, nil
}

func positive(tag, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.InvalidArgumentf("effect tag %q: %q is not a positive number", tag, s)
	}
	return n, nil
}

func nonNegative(tag, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.InvalidArgumentf("effect tag %q: %q is not a number", tag, s)
	}
	return n, nil
}
