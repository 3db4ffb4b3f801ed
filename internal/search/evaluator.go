package search

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

// Weights are the evaluator's tunable coefficients.
// FriendlyHP must stay below EnemyHP so the search prefers finishing enemies
// over hoarding its own health.
type Weights struct {
	Distance           float64
	FriendlyHP         float64
	EnemyHP            float64
	Mobility           float64
	MobilityNormalizer float64
	DistanceSaturation float64
}

// DefaultWeights returns the weights the skirmish agent ships with
func DefaultWeights() Weights {
	return Weights{
		Distance:           1.0,
		FriendlyHP:         0.5,
		EnemyHP:            1.0,
		Mobility:           0.1,
		MobilityNormalizer: 25,
		DistanceSaturation: 2.0,
	}
}

// Validate checks that the weights describe a sensible evaluator
func (w Weights) Validate() error {
	if w.Distance < 0 || w.FriendlyHP < 0 || w.EnemyHP < 0 || w.Mobility < 0 {
		return errors.New("evaluator weights must be non-negative")
	}
	if w.FriendlyHP >= w.EnemyHP {
		return fmt.Errorf("friendly hp weight %.3f must be below enemy hp weight %.3f", w.FriendlyHP, w.EnemyHP)
	}
	if w.MobilityNormalizer <= 0 {
		return errors.New("mobility normalizer must be positive")
	}
	// 1/avg distance never exceeds 1 because living units never share a cell
	if w.DistanceSaturation < 1 {
		return errors.New("distance saturation must be at least 1")
	}
	return nil
}

// Features are the unweighted terms of a utility
type Features struct {
	Distance        float64
	FriendlyHPRatio float64
	EnemyHPRatio    float64
	Mobility        float64
}

// Evaluator scores states from one fixed side's point of view, regardless of
// whose turn it is.
type Evaluator struct {
	weights     Weights
	perspective core.Side
	gen         ActionGenerator
}

// NewEvaluator creates an evaluator that scores states for perspective
func NewEvaluator(weights Weights, perspective core.Side, gen ActionGenerator) *Evaluator {
	return &Evaluator{
		weights:     weights,
		perspective: perspective,
		gen:         gen,
	}
}

// Perspective returns the side whose utility is being maximized
func (e *Evaluator) Perspective() core.Side {
	return e.perspective
}

// Utility is the weighted sum of the state's features
func (e *Evaluator) Utility(state core.BoardState) float64 {
	f := e.Features(state)
	return e.weights.Distance*f.Distance +
		e.weights.FriendlyHP*f.FriendlyHPRatio -
		e.weights.EnemyHP*f.EnemyHPRatio +
		e.weights.Mobility*f.Mobility
}

// Features computes every term of the utility.
//
// Distance is 1 over the average, across own living units, of the Chebyshev
// distance to the nearest living opponent. It saturates when no opponent is
// left and is zero when no own unit is left. HP ratios are aggregate
// sum(hp)/sum(maxHP) per side. Mobility is the product of own units' legal
// action counts over the normalizer, capped at 1.
func (e *Evaluator) Features(state core.BoardState) Features {
	own := state.LivingUnits(e.perspective)
	opponents := state.LivingUnits(e.perspective.Opponent())

	return Features{
		Distance:        e.distanceFeature(own, opponents),
		FriendlyHPRatio: hpRatio(state.Units(e.perspective)),
		EnemyHPRatio:    hpRatio(state.Units(e.perspective.Opponent())),
		Mobility:        e.mobilityFeature(own, state),
	}
}

func (e *Evaluator) distanceFeature(own, opponents []core.CombatUnit) float64 {
	if len(own) == 0 {
		return 0
	}
	if len(opponents) == 0 {
		return e.weights.DistanceSaturation
	}

	total := 0
	for _, u := range own {
		nearest := -1
		for _, o := range opponents {
			d := u.Pos.ChebyshevDistanceTo(o.Pos)
			if nearest < 0 || d < nearest {
				nearest = d
			}
		}
		total += nearest
	}
	avg := float64(total) / float64(len(own))
	if avg <= 0 {
		return e.weights.DistanceSaturation
	}
	return 1 / avg
}

func (e *Evaluator) mobilityFeature(own []core.CombatUnit, state core.BoardState) float64 {
	if len(own) == 0 {
		return 0
	}
	product := 1.0
	for _, u := range own {
		product *= float64(e.gen.CountLegalActions(u, state))
	}
	return min(product/e.weights.MobilityNormalizer, 1)
}

func hpRatio(units []core.CombatUnit) float64 {
	hp, maxHP := 0, 0
	for _, u := range units {
		hp += u.HP
		maxHP += u.MaxHP
	}
	if maxHP == 0 {
		return 0
	}
	return float64(hp) / float64(maxHP)
}
