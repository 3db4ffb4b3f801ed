package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/agent"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/events"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/processor"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/rules"
)

// GameConfig holds everything needed to start a skirmish
type GameConfig struct {
	State    core.BoardState
	Friendly agent.Agent
	Enemy    agent.Agent
	// MaxTurns caps the number of plies; 0 means play until one side is wiped out
	MaxTurns int
	// RollDamage applies the engine's 50-100% damage roll instead of its expectation
	RollDamage bool
	Rng        *rand.Rand
	MatchID    string
	EventBus   *events.EventBus
	Logger     zerolog.Logger
}

// Engine plays two agents against each other on a simulated battlefield.
// Each Step is one ply: the acting side chooses an action map, it is applied,
// and the turn passes.
type Engine struct {
	matchID    string
	state      core.BoardState
	agents     map[core.Side]agent.Agent
	processor  *processor.ActionProcessor
	winChecker *rules.WinConditionChecker
	eventBus   *events.EventBus
	logger     zerolog.Logger

	turn      int
	maxTurns  int
	gameOver  bool
	outcome   rules.Outcome
	startTime time.Time
}

// NewEngine validates the starting state and publishes the match start
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if cfg.Friendly == nil || cfg.Enemy == nil {
		return nil, fmt.Errorf("both sides need an agent")
	}
	if cfg.MaxTurns < 0 {
		return nil, fmt.Errorf("max turns must be >= 0, got %d", cfg.MaxTurns)
	}
	if err := cfg.State.Validate(); err != nil {
		return nil, fmt.Errorf("starting state: %w", err)
	}

	if cfg.MatchID == "" {
		cfg.MatchID = uuid.New().String()
	}
	logger := cfg.Logger.With().Str("component", "Engine").Str("match_id", cfg.MatchID).Logger()

	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus(cfg.Logger)
	}

	var damage processor.DamageModel = processor.ExpectedDamage{}
	if cfg.RollDamage {
		if cfg.Rng == nil {
			logger.Debug().Msg("No RNG provided, creating new seeded RNG")
			cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		damage = processor.NewRolledDamage(cfg.Rng)
	}

	e := &Engine{
		matchID: cfg.MatchID,
		state:   cfg.State.Clone(),
		agents: map[core.Side]agent.Agent{
			core.Friendly: cfg.Friendly,
			core.Enemy:    cfg.Enemy,
		},
		processor:  processor.NewActionProcessor(cfg.Logger, processor.WithDamageModel(damage)),
		winChecker: rules.NewWinConditionChecker(cfg.Logger),
		eventBus:   cfg.EventBus,
		logger:     logger,
		maxTurns:   cfg.MaxTurns,
		startTime:  time.Now(),
	}

	e.eventBus.Publish(events.NewMatchStartedEvent(
		e.matchID,
		e.state.Terrain.W,
		e.state.Terrain.H,
		len(e.state.LivingUnits(core.Friendly)),
		len(e.state.LivingUnits(core.Enemy)),
	))

	logger.Info().
		Int("width", e.state.Terrain.W).
		Int("height", e.state.Terrain.H).
		Str("friendly_agent", cfg.Friendly.Name()).
		Str("enemy_agent", cfg.Enemy.Name()).
		Bool("roll_damage", cfg.RollDamage).
		Msg("Engine created successfully")

	// A starting state may already be decided
	e.checkGameOver()
	return e, nil
}

// Step plays one ply for the acting side
func (e *Engine) Step(ctx context.Context) error {
	if e.gameOver {
		return core.ErrGameOver
	}

	turn := e.turn + 1
	side := e.state.ActingSide
	current := e.agents[side]
	e.eventBus.Publish(events.NewTurnStartedEvent(e.matchID, turn, side))

	thinkStart := time.Now()
	actions, err := current.Decide(ctx, e.state)
	if err != nil {
		return fmt.Errorf("turn %d: %s agent %s: %w", turn, side, current.Name(), err)
	}
	think := time.Since(thinkStart)
	e.eventBus.Publish(events.NewActionsChosenEvent(e.matchID, turn, side, current.Name(), actions, think))

	applyStart := time.Now()
	next, results, err := e.processor.ApplyWithResults(e.state, actions)
	if err != nil {
		return fmt.Errorf("turn %d: %w", turn, err)
	}
	e.turn = turn
	e.state = next
	e.publishAttacks(side, results)

	e.eventBus.Publish(events.NewTurnEndedEvent(e.matchID, turn, side, len(actions), time.Since(applyStart)))

	e.logger.Debug().
		Int("turn", turn).
		Str("side", side.String()).
		Str("actions", actions.String()).
		Dur("think_time", think).
		Msg("Turn processed")

	e.checkGameOver()
	return nil
}

// Run steps until the match is decided and returns the outcome
func (e *Engine) Run(ctx context.Context) (rules.Outcome, error) {
	for !e.gameOver {
		if err := e.Step(ctx); err != nil {
			return rules.Ongoing, err
		}
	}
	return e.outcome, nil
}

func (e *Engine) publishAttacks(side core.Side, results []processor.AttackResult) {
	for _, r := range results {
		target := e.state.Unit(side.Opponent(), r.TargetID)
		e.eventBus.Publish(events.NewAttackResolvedEvent(e.matchID, e.turn, side, r.AttackerID, r.TargetID, r.Damage, target.HP))
		if r.Killed {
			e.eventBus.Publish(events.NewUnitKilledEvent(e.matchID, e.turn, side.Opponent(), r.TargetID, r.AttackerID, target.Pos))
		}
	}
}

// checkGameOver ends the match on annihilation or when the turn limit is reached
func (e *Engine) checkGameOver() {
	over, outcome := e.winChecker.CheckGameOver(e.state)
	if !over && e.maxTurns > 0 && e.turn >= e.maxTurns {
		over, outcome = true, e.winChecker.OutcomeOnTimeout(e.state)
		e.logger.Info().Int("max_turns", e.maxTurns).Msg("Turn limit reached")
	}
	if !over {
		return
	}

	e.gameOver = true
	e.outcome = outcome
	duration := time.Since(e.startTime)
	e.eventBus.Publish(events.NewMatchEndedEvent(e.matchID, outcome.String(), duration, e.turn))

	e.logger.Info().
		Str("outcome", outcome.String()).
		Int("final_turn", e.turn).
		Dur("duration", duration).
		Msg("Match ended")
}

// Public accessors
func (e *Engine) State() core.BoardState     { return e.state.Clone() }
func (e *Engine) IsGameOver() bool           { return e.gameOver }
func (e *Engine) Outcome() rules.Outcome     { return e.outcome }
func (e *Engine) MatchID() string            { return e.matchID }
func (e *Engine) Turn() int                  { return e.turn }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }
