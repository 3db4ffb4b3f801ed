package events

import (
	"time"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

// Event type constants
const (
	TypeMatchStarted   = "match.started"
	TypeMatchEnded     = "match.ended"
	TypeTurnStarted    = "turn.started"
	TypeTurnEnded      = "turn.ended"
	TypeActionsChosen  = "actions.chosen"
	TypeAttackResolved = "attack.resolved"
	TypeUnitKilled     = "unit.killed"
)

// MatchStartedEvent is published when a skirmish begins
type MatchStartedEvent struct {
	BaseEvent
	Width         int
	Height        int
	FriendlyUnits int
	EnemyUnits    int
}

// NewMatchStartedEvent creates a new MatchStartedEvent
func NewMatchStartedEvent(matchID string, width, height, friendly, enemy int) *MatchStartedEvent {
	return &MatchStartedEvent{
		BaseEvent:     newBase(TypeMatchStarted, matchID),
		Width:         width,
		Height:        height,
		FriendlyUnits: friendly,
		EnemyUnits:    enemy,
	}
}

// MatchEndedEvent is published when a skirmish ends
type MatchEndedEvent struct {
	BaseEvent
	Outcome   string
	Duration  time.Duration
	FinalTurn int
}

// NewMatchEndedEvent creates a new MatchEndedEvent
func NewMatchEndedEvent(matchID, outcome string, duration time.Duration, finalTurn int) *MatchEndedEvent {
	return &MatchEndedEvent{
		BaseEvent: newBase(TypeMatchEnded, matchID),
		Outcome:   outcome,
		Duration:  duration,
		FinalTurn: finalTurn,
	}
}

// TurnStartedEvent is published before a side chooses its actions
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int
	Side       core.Side
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(matchID string, turn int, side core.Side) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, matchID),
		TurnNumber: turn,
		Side:       side,
	}
}

// TurnEndedEvent is published once a side's actions have been applied
type TurnEndedEvent struct {
	BaseEvent
	TurnNumber    int
	Side          core.Side
	ActionsCount  int
	ProcessedTime time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(matchID string, turn int, side core.Side, actionsCount int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, matchID),
		TurnNumber:    turn,
		Side:          side,
		ActionsCount:  actionsCount,
		ProcessedTime: processedTime,
	}
}

// ActionsChosenEvent carries the action map an agent picked
type ActionsChosenEvent struct {
	BaseEvent
	TurnNumber int
	Side       core.Side
	Agent      string
	Actions    core.ActionMap
	ThinkTime  time.Duration
}

// NewActionsChosenEvent creates a new ActionsChosenEvent
func NewActionsChosenEvent(matchID string, turn int, side core.Side, agent string, actions core.ActionMap, think time.Duration) *ActionsChosenEvent {
	return &ActionsChosenEvent{
		BaseEvent:  newBase(TypeActionsChosen, matchID),
		TurnNumber: turn,
		Side:       side,
		Agent:      agent,
		Actions:    actions,
		ThinkTime:  think,
	}
}

// AttackResolvedEvent is published for every attack that dealt damage
type AttackResolvedEvent struct {
	BaseEvent
	TurnNumber   int
	AttackerSide core.Side
	AttackerID   int
	TargetID     int
	Damage       int
	TargetHP     int
}

// NewAttackResolvedEvent creates a new AttackResolvedEvent
func NewAttackResolvedEvent(matchID string, turn int, side core.Side, attackerID, targetID, damage, targetHP int) *AttackResolvedEvent {
	return &AttackResolvedEvent{
		BaseEvent:    newBase(TypeAttackResolved, matchID),
		TurnNumber:   turn,
		AttackerSide: side,
		AttackerID:   attackerID,
		TargetID:     targetID,
		Damage:       damage,
		TargetHP:     targetHP,
	}
}

// UnitKilledEvent is published when a unit's HP reaches zero
type UnitKilledEvent struct {
	BaseEvent
	TurnNumber int
	Side       core.Side
	UnitID     int
	KilledBy   int
	Location   core.Coordinate
}

// NewUnitKilledEvent creates a new UnitKilledEvent
func NewUnitKilledEvent(matchID string, turn int, side core.Side, unitID, killedBy int, location core.Coordinate) *UnitKilledEvent {
	return &UnitKilledEvent{
		BaseEvent:  newBase(TypeUnitKilled, matchID),
		TurnNumber: turn,
		Side:       side,
		UnitID:     unitID,
		KilledBy:   killedBy,
		Location:   location,
	}
}
