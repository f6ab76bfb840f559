package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/ihno999/avanced-ai-semester-project/internal/items"
)

// ErrNoStatPoints is returned when a stat allocation is attempted with no
// unassigned points remaining.
var ErrNoStatPoints = errors.New("no unassigned stat points")

// Resource regeneration tuning: when within threshold of max, snap to max;
// otherwise advance by step.
const (
	staminaRegenThreshold = 5
	staminaRegenStep      = 5
	manaRegenThreshold    = 2
	manaRegenStep         = 2
)

// RegenerateResource advances a resource toward max. If the gap is within
// fullThreshold the resource snaps to max, otherwise it gains step, capped
// at max.
func RegenerateResource(current, max, fullThreshold, step int) int {
	if current >= max {
		return max
	}
	if max-current <= fullThreshold {
		return max
	}
	if current+step > max {
		return max
	}
	return current + step
}

// Regenerate applies the per-turn stamina and mana regeneration.
func (s *PlayerStats) Regenerate() {
	s.Stamina = RegenerateResource(s.Stamina, s.MaxStamina, staminaRegenThreshold, staminaRegenStep)
	s.Mana = RegenerateResource(s.Mana, s.MaxMana, manaRegenThreshold, manaRegenStep)
}

// XPRequired returns the XP needed to clear the given level.
func XPRequired(level int) int {
	return 20 + (level-1)*15
}

// CheckLevelUp consumes accumulated XP, possibly over several levels at
// once. Each level grants +10 max health with a full heal and one
// unassigned stat point. Reports whether any level was gained.
func (s *PlayerStats) CheckLevelUp() bool {
	leveled := false
	for s.XP >= s.MaxXP {
		s.XP -= s.MaxXP
		s.Level++
		s.MaxHealth += 10
		s.Health = s.MaxHealth
		s.MaxXP = XPRequired(s.Level)
		s.UnassignedStatPoints++
		leveled = true
	}
	return leveled
}

// MitigateDamage reduces an incoming damage delta (negative) by 3% per
// defense point, rounding to the nearest integer. Mitigation can reach
// zero but never flips damage into healing.
func MitigateDamage(delta, defense int) int {
	reduced := int(math.Round(float64(delta) * (1 - float64(defense)*0.03)))
	if reduced > 0 {
		return 0
	}
	return reduced
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *PlayerStats) base(stat string) (*int, bool) {
	switch stat {
	case "strength":
		return &s.Strength, true
	case "defense":
		return &s.Defense, true
	case "intelligence":
		return &s.Intelligence, true
	case "endurance":
		return &s.Endurance, true
	case "magic":
		return &s.Magic, true
	}
	return nil, false
}

// TotalStat returns a base stat plus the boosts of all equipped items that
// appear in the item reference table. Unknown equipped items contribute
// nothing.
func (g *GameState) TotalStat(stat string) int {
	total := 0
	if base, ok := g.Stats.base(stat); ok {
		total = *base
	}
	for _, item := range g.Equipment {
		if item != "" {
			total += items.Boost(item, stat)
		}
	}
	return total
}

// AllocatePoint spends one unassigned stat point on the named stat.
// Endurance also raises max stamina by 5 with a full restore; magic does
// the same for mana.
func (g *GameState) AllocatePoint(stat string) error {
	if g.Stats.UnassignedStatPoints <= 0 {
		return ErrNoStatPoints
	}
	base, ok := g.Stats.base(stat)
	if !ok {
		return fmt.Errorf("unknown stat %q", stat)
	}
	*base++
	switch stat {
	case "endurance":
		g.Stats.MaxStamina += 5
		g.Stats.Stamina = g.Stats.MaxStamina
	case "magic":
		g.Stats.MaxMana += 5
		g.Stats.Mana = g.Stats.MaxMana
	}
	g.Stats.UnassignedStatPoints--
	return nil
}
