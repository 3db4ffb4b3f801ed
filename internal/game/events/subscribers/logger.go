package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("match_id", event.MatchID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)

	switch e := event.(type) {
	case *events.MatchStartedEvent:
		logEvent.
			Int("width", e.Width).
			Int("height", e.Height).
			Int("friendly_units", e.FriendlyUnits).
			Int("enemy_units", e.EnemyUnits)

	case *events.MatchEndedEvent:
		logEvent.
			Str("outcome", e.Outcome).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Str("side", e.Side.String())

	case *events.TurnEndedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Str("side", e.Side.String()).
			Int("actions_count", e.ActionsCount).
			Dur("process_time", e.ProcessedTime)

	case *events.ActionsChosenEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Str("side", e.Side.String()).
			Str("agent", e.Agent).
			Str("actions", e.Actions.String()).
			Dur("think_time", e.ThinkTime)

	case *events.AttackResolvedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Str("attacker_side", e.AttackerSide.String()).
			Int("attacker_id", e.AttackerID).
			Int("target_id", e.TargetID).
			Int("damage", e.Damage).
			Int("target_hp", e.TargetHP)

	case *events.UnitKilledEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Str("side", e.Side.String()).
			Int("unit_id", e.UnitID).
			Int("killed_by", e.KilledBy).
			Int("location_x", e.Location.X).
			Int("location_y", e.Location.Y)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Match event")
}
