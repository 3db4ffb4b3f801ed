package agent

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/search"
)

// MinimaxAgent plays each turn by running an alpha-beta search from the
// observed state
type MinimaxAgent struct {
	search *search.AlphaBeta
	depth  int
	logger zerolog.Logger
	last   search.Result
}

func NewMinimaxAgent(ab *search.AlphaBeta, depth int, logger zerolog.Logger) *MinimaxAgent {
	return &MinimaxAgent{
		search: ab,
		depth:  depth,
		logger: logger.With().Str("component", "MinimaxAgent").Logger(),
	}
}

func (a *MinimaxAgent) Name() string {
	return "minimax"
}

func (a *MinimaxAgent) Decide(ctx context.Context, state core.BoardState) (core.ActionMap, error) {
	result, err := a.search.Search(ctx, state, a.depth)
	if err != nil {
		return nil, err
	}
	a.last = result

	a.logger.Debug().
		Str("side", state.ActingSide.String()).
		Int("depth", a.depth).
		Float64("value", result.Value).
		Bool("partial", result.Partial).
		Int64("nodes", result.Metrics.NodesExpanded).
		Int64("cutoffs", result.Metrics.Cutoffs).
		Dur("duration", result.Metrics.Duration).
		Str("actions", result.Actions.String()).
		Msg("Search complete")

	if result.Partial {
		a.logger.Warn().
			Int("depth", a.depth).
			Msg("Search stopped at the deadline, using best completed root move")
	}
	return result.Actions, nil
}

// LastResult returns the full result of the most recent Decide call
func (a *MinimaxAgent) LastResult() search.Result {
	return a.last
}
