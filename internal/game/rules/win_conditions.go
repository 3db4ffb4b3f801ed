package rules

import (
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/rs/zerolog"
)

// Outcome describes how a skirmish stands
type Outcome int

const (
	Ongoing Outcome = iota
	FriendlyWin
	EnemyWin
	Draw
)

func (o Outcome) String() string {
	switch o {
	case FriendlyWin:
		return "friendly_win"
	case EnemyWin:
		return "enemy_win"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether one side has been wiped out.
// Both sides dead at once counts as a draw.
func (wc *WinConditionChecker) CheckGameOver(state core.BoardState) (bool, Outcome) {
	friendlyAlive := len(state.LivingUnits(core.Friendly))
	enemyAlive := len(state.LivingUnits(core.Enemy))

	var outcome Outcome
	switch {
	case friendlyAlive == 0 && enemyAlive == 0:
		outcome = Draw
	case enemyAlive == 0:
		outcome = FriendlyWin
	case friendlyAlive == 0:
		outcome = EnemyWin
	default:
		outcome = Ongoing
	}

	gameOver := outcome != Ongoing
	if gameOver {
		wc.logger.Info().Str("outcome", outcome.String()).Msg("Winner determined")
	}
	wc.logger.Debug().
		Bool("is_game_over", gameOver).
		Int("friendly_alive", friendlyAlive).
		Int("enemy_alive", enemyAlive).
		Msg("Game over check complete")

	return gameOver, outcome
}

// OutcomeOnTimeout decides a skirmish that hit its turn limit by remaining HP share
func (wc *WinConditionChecker) OutcomeOnTimeout(state core.BoardState) Outcome {
	friendly := hpShare(state.Units(core.Friendly))
	enemy := hpShare(state.Units(core.Enemy))
	switch {
	case friendly > enemy:
		return FriendlyWin
	case enemy > friendly:
		return EnemyWin
	default:
		return Draw
	}
}

func hpShare(units []core.CombatUnit) float64 {
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
