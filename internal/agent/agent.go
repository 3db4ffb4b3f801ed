package agent

import (
	"context"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

// Agent chooses the acting side's moves for one turn
type Agent interface {
	// Decide returns one action per unit of state.ActingSide that should act.
	// Units absent from the map stand still.
	Decide(ctx context.Context, state core.BoardState) (core.ActionMap, error)
	Name() string
}
