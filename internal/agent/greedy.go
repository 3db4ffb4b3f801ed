package agent

import (
	"context"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/rules"
)

// GreedyAgent is the scripted opponent: every unit shoots the weakest enemy
// in range, otherwise steps toward the nearest one
type GreedyAgent struct {
	legal *rules.LegalMoveCalculator
}

func NewGreedyAgent() *GreedyAgent {
	return &GreedyAgent{legal: rules.NewLegalMoveCalculator()}
}

func (a *GreedyAgent) Name() string {
	return "greedy"
}

func (a *GreedyAgent) Decide(ctx context.Context, state core.BoardState) (core.ActionMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	actions := core.ActionMap{}
	side := state.ActingSide
	// Moves are replayed on a working copy so later units see the cells
	// earlier units step into
	working := state.Clone()

	for _, unit := range state.LivingUnits(side) {
		candidates := a.legal.LegalActions(unit, working)

		if target, ok := weakestTarget(candidates, working, side.Opponent()); ok {
			actions[unit.ID] = core.NewAttack(target)
			continue
		}

		nearest, ok := nearestOpponent(unit, working)
		if !ok {
			continue
		}
		best := unit.Pos.DistanceTo(nearest.Pos)
		var chosen *core.Action
		for i, action := range candidates {
			if action.Kind != core.Move {
				continue
			}
			if d := unit.Pos.Move(action.Direction).DistanceTo(nearest.Pos); d < best {
				best = d
				chosen = &candidates[i]
			}
		}
		if chosen == nil {
			continue
		}
		actions[unit.ID] = *chosen
		working.Unit(side, unit.ID).Pos = unit.Pos.Move(chosen.Direction)
	}

	return actions, nil
}

// weakestTarget picks the attack whose target has the fewest hit points.
// Attacks come in roster order, so ties go to the lowest id.
func weakestTarget(candidates []core.Action, state core.BoardState, opponent core.Side) (int, bool) {
	targetID, lowest := 0, 0
	found := false
	for _, action := range candidates {
		if action.Kind != core.Attack {
			continue
		}
		target := state.Unit(opponent, action.TargetID)
		if !found || target.HP < lowest {
			targetID, lowest, found = action.TargetID, target.HP, true
		}
	}
	return targetID, found
}

func nearestOpponent(unit core.CombatUnit, state core.BoardState) (core.CombatUnit, bool) {
	var nearest core.CombatUnit
	best := -1
	for _, other := range state.LivingUnits(unit.Side.Opponent()) {
		if d := unit.Pos.DistanceTo(other.Pos); best < 0 || d < best {
			nearest, best = other, d
		}
	}
	return nearest, best >= 0
}
