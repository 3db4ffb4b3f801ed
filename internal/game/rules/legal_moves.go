package rules

import "github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"

// LegalMoveCalculator computes legal actions for units
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// LegalActions returns every legal order for unit in state: first the cardinal
// moves onto free cells (north, east, south, west), then attacks on living
// opponents within Manhattan range in roster order. Dead units have no actions,
// and no pass action is ever produced.
func (lmc *LegalMoveCalculator) LegalActions(unit core.CombatUnit, state core.BoardState) []core.Action {
	if !unit.Alive() {
		return nil
	}

	actions := make([]core.Action, 0, 4)
	for _, dir := range core.Directions {
		if state.IsFree(unit.Pos.Move(dir)) {
			actions = append(actions, core.NewMove(dir))
		}
	}

	for _, target := range state.Units(unit.Side.Opponent()) {
		if target.Alive() && unit.InRange(target) {
			actions = append(actions, core.NewAttack(target.ID))
		}
	}
	return actions
}

// CountLegalActions returns len(LegalActions(unit, state)) without allocating
func (lmc *LegalMoveCalculator) CountLegalActions(unit core.CombatUnit, state core.BoardState) int {
	if !unit.Alive() {
		return 0
	}

	count := 0
	for _, dir := range core.Directions {
		if state.IsFree(unit.Pos.Move(dir)) {
			count++
		}
	}
	for _, target := range state.Units(unit.Side.Opponent()) {
		if target.Alive() && unit.InRange(target) {
			count++
		}
	}
	return count
}

// GetLegalActionMask returns a boolean mask over the unit's full action space.
// Layout:
// - indices 0-3 are moves north, east, south, west
// - index 4+i is an attack on the i-th unit of the opposing roster
// - true = legal action, false = illegal action
func (lmc *LegalMoveCalculator) GetLegalActionMask(unit core.CombatUnit, state core.BoardState) []bool {
	opponents := state.Units(unit.Side.Opponent())
	mask := make([]bool, 4+len(opponents))

	// Dead units get an all-false mask
	if !unit.Alive() {
		return mask
	}

	for i, dir := range core.Directions {
		mask[i] = state.IsFree(unit.Pos.Move(dir))
	}
	for i, target := range opponents {
		mask[4+i] = target.Alive() && unit.InRange(target)
	}
	return mask
}

// ValidateAction checks a single order against state, returning the sentinel
// error describing why it is illegal
func (lmc *LegalMoveCalculator) ValidateAction(unit core.CombatUnit, action core.Action, state core.BoardState) error {
	if !unit.Alive() {
		return core.ErrDeadUnit
	}

	switch action.Kind {
	case core.Move:
		if !action.Direction.Valid() {
			return core.ErrUnknownAction
		}
		dest := unit.Pos.Move(action.Direction)
		if !state.Terrain.InBounds(dest) {
			return core.ErrInvalidCoordinates
		}
		if state.Terrain.Blocked(dest) {
			return core.ErrCellBlocked
		}
		if _, occupied := state.OccupantAt(dest); occupied {
			return core.ErrCellOccupied
		}
		return nil
	case core.Attack:
		target := state.Unit(unit.Side.Opponent(), action.TargetID)
		if target == nil {
			return core.ErrUnknownUnit
		}
		if !target.Alive() {
			return core.ErrDeadUnit
		}
		if !unit.InRange(*target) {
			return core.ErrOutOfRange
		}
		return nil
	default:
		return core.ErrUnknownAction
	}
}
