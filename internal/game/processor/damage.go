package processor

import (
	"math/rand"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

// DamageModel decides how many hit points an attack removes
type DamageModel interface {
	Damage(attacker, defender core.CombatUnit) int
}

// ExpectedDamage applies the mean of the engine's roll. The search uses it so
// every branch is reproducible.
type ExpectedDamage struct{}

func (ExpectedDamage) Damage(attacker, defender core.CombatUnit) int {
	return core.ExpectedDamage(attacker, defender.Armor)
}

// RolledDamage scales the maximum damage by a uniform 50-100% roll, the way the
// live engine resolves attacks
type RolledDamage struct {
	rng *rand.Rand
}

// NewRolledDamage creates a rolled damage model drawing from rng
func NewRolledDamage(rng *rand.Rand) *RolledDamage {
	return &RolledDamage{rng: rng}
}

func (r *RolledDamage) Damage(attacker, defender core.CombatUnit) int {
	pct := 0.5 + 0.5*r.rng.Float64()
	return int(pct * float64(core.MaxDamage(attacker, defender.Armor)))
}
