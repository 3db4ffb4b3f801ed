package processor

import (
	"fmt"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/rules"
	"github.com/rs/zerolog"
)

// AttackResult records what one attack did
type AttackResult struct {
	AttackerID int
	TargetID   int
	Damage     int
	Killed     bool
}

// ActionProcessor applies one side's action map to a board state
type ActionProcessor struct {
	logger          zerolog.Logger
	damage          DamageModel
	legal           *rules.LegalMoveCalculator
	checkInvariants bool
}

// Option configures an ActionProcessor
type Option func(*ActionProcessor)

// WithDamageModel replaces the default expected-damage model
func WithDamageModel(model DamageModel) Option {
	return func(ap *ActionProcessor) {
		if model != nil {
			ap.damage = model
		}
	}
}

// WithInvariantChecks validates every resulting state
func WithInvariantChecks(enabled bool) Option {
	return func(ap *ActionProcessor) {
		ap.checkInvariants = enabled
	}
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(logger zerolog.Logger, opts ...Option) *ActionProcessor {
	ap := &ActionProcessor{
		logger: logger.With().Str("component", "ActionProcessor").Logger(),
		damage: ExpectedDamage{},
		legal:  rules.NewLegalMoveCalculator(),
	}
	for _, opt := range opts {
		opt(ap)
	}
	return ap
}

// Apply returns the state after the acting side executes actions. The input is
// left untouched; the result has ActingSide flipped and Ply incremented.
func (ap *ActionProcessor) Apply(state core.BoardState, actions core.ActionMap) (core.BoardState, error) {
	next, _, err := ap.ApplyWithResults(state, actions)
	return next, err
}

// ApplyWithResults is Apply that also reports each attack's outcome.
//
// Actions run in ascending unit id order against the intermediate state, so a
// unit may step into a cell vacated earlier in the same map, and an attack on a
// target that an earlier attack already killed does nothing. Every action is
// re-validated: the map may come from outside the search.
func (ap *ActionProcessor) ApplyWithResults(state core.BoardState, actions core.ActionMap) (core.BoardState, []AttackResult, error) {
	acting := state.ActingSide
	next := state.Clone()
	next.ActingSide = acting.Opponent()
	next.Ply++

	var results []AttackResult
	for _, id := range actions.SortedIDs() {
		action := actions[id]

		unit := next.Unit(acting, id)
		if unit == nil {
			return state, nil, core.WrapActionError(acting, id, action, core.ErrUnknownUnit)
		}
		if !unit.Alive() {
			return state, nil, core.WrapActionError(acting, id, action, core.ErrDeadUnit)
		}

		ap.logger.Debug().
			Int("unit_id", id).
			Str("side", acting.String()).
			Str("action", action.String()).
			Msg("Applying action")

		switch action.Kind {
		case core.Move:
			if err := ap.legal.ValidateAction(*unit, action, next); err != nil {
				return state, nil, core.WrapActionError(acting, id, action, err)
			}
			unit.Pos = unit.Pos.Move(action.Direction)

		case core.Attack:
			result, err := ap.attack(state, &next, *unit, action)
			if err != nil {
				return state, nil, core.WrapActionError(acting, id, action, err)
			}
			if result != nil {
				results = append(results, *result)
			}

		default:
			return state, nil, core.WrapActionError(acting, id, action, core.ErrUnknownAction)
		}
	}

	if ap.checkInvariants {
		if err := next.Validate(); err != nil {
			ap.logger.Error().Err(err).Int("ply", next.Ply).Msg("Transition broke board invariants")
			return state, nil, fmt.Errorf("after applying %s: %w", actions, err)
		}
	}
	return next, results, nil
}

// attack resolves one attack. The target must have been alive when the ply
// started; if it died earlier in this ply the attack is absorbed.
func (ap *ActionProcessor) attack(before core.BoardState, next *core.BoardState, attacker core.CombatUnit, action core.Action) (*AttackResult, error) {
	opponent := attacker.Side.Opponent()

	original := before.Unit(opponent, action.TargetID)
	if original == nil {
		return nil, core.ErrUnknownUnit
	}
	if !original.Alive() {
		return nil, core.ErrDeadUnit
	}

	target := next.Unit(opponent, action.TargetID)
	if !target.Alive() {
		ap.logger.Debug().
			Int("attacker_id", attacker.ID).
			Int("target_id", target.ID).
			Msg("Target already destroyed this ply")
		return nil, nil
	}
	if !attacker.InRange(*target) {
		return nil, core.ErrOutOfRange
	}

	dealt := target.TakeDamage(ap.damage.Damage(attacker, *target))
	return &AttackResult{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Damage:     dealt,
		Killed:     !target.Alive(),
	}, nil
}
