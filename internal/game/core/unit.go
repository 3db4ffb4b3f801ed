package core

import "fmt"

// Side identifies which army a unit fights for
type Side int

const (
	Friendly Side = iota
	Enemy
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == Friendly {
		return Enemy
	}
	return Friendly
}

func (s Side) String() string {
	switch s {
	case Friendly:
		return "friendly"
	case Enemy:
		return "enemy"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// CombatUnit is a value snapshot of one unit's simulated state.
// A unit with HP == 0 is dead but keeps its roster slot so ids stay stable.
type CombatUnit struct {
	ID             int
	Side           Side
	Type           string
	Pos            Coordinate
	HP             int
	MaxHP          int
	Range          int
	BasicDamage    int
	PiercingDamage int
	Armor          int
}

// Alive reports whether the unit still has hit points
func (u CombatUnit) Alive() bool {
	return u.HP > 0
}

// HPRatio returns current HP as a fraction of max HP
func (u CombatUnit) HPRatio() float64 {
	if u.MaxHP <= 0 {
		return 0
	}
	return float64(u.HP) / float64(u.MaxHP)
}

// InRange reports whether target is within this unit's Manhattan attack range
func (u CombatUnit) InRange(target CombatUnit) bool {
	return u.Pos.DistanceTo(target.Pos) <= u.Range
}

// TakeDamage subtracts n hit points, clamping at zero, and returns the HP actually lost
func (u *CombatUnit) TakeDamage(n int) int {
	if n <= 0 {
		return 0
	}
	if n > u.HP {
		n = u.HP
	}
	u.HP -= n
	return n
}

func (u CombatUnit) String() string {
	return fmt.Sprintf("%s %s#%d at %s (%d/%d hp)", u.Side, u.Type, u.ID, u.Pos, u.HP, u.MaxHP)
}

// MaxDamage is the full damage roll before the engine's 50-100% scaling
func MaxDamage(attacker CombatUnit, defenderArmor int) int {
	return max(attacker.BasicDamage-defenderArmor, 0) + attacker.PiercingDamage
}

// ExpectedDamage is the mean of the engine's uniform 50-100% roll of MaxDamage, floored:
// floor(0.75 * (max(basic-armor, 0) + piercing)). Piercing damage is part of the
// rolled amount, so it is scaled too rather than added after the 0.75.
func ExpectedDamage(attacker CombatUnit, defenderArmor int) int {
	return 3 * MaxDamage(attacker, defenderArmor) / 4
}
