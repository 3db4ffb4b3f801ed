package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/agent"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/config"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/events"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/mapgen"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/processor"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/rules"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/scenario"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/search"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml next to the config file)")
	scenarioPath := flag.String("scenario", "", "Scenario YAML file (empty to use config, then the built-in footmen vs archers)")
	random := flag.Bool("random", false, "Generate a random scenario instead of loading one")
	seed := flag.Int64("seed", -1, "RNG seed for damage rolls and map generation (-1 to use config, 0 for time-based)")
	depth := flag.Int("depth", -1, "Search depth in plies (-1 to use config default)")
	maxTurns := flag.Int("max-turns", -1, "Turn limit (-1 to use config default, 0 for none)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	dump := flag.String("dump", "", "Write the starting scenario as YAML to this path")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *scenarioPath == "" {
		*scenarioPath = cfg.Match.Scenario
	}
	if !*random {
		*random = cfg.Match.Random.Enabled
	}
	if *seed == -1 {
		*seed = cfg.Match.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *depth == -1 {
		*depth = cfg.Search.MaxDepth
	}
	if *maxTurns == -1 {
		*maxTurns = cfg.Match.MaxTurns
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	// Setup logging
	setupLogging(*logLevel, cfg.Logging.Format)

	if *watch {
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			zerolog.SetGlobalLevel(parseLevel(config.Get().Logging.Level))
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rng := rand.New(rand.NewSource(*seed))

	snap, err := loadScenario(*scenarioPath, *random, cfg.Match.Random, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load scenario")
	}
	if *dump != "" {
		if err := dumpScenario(snap, *dump); err != nil {
			log.Fatal().Err(err).Msg("Failed to write scenario")
		}
	}

	state, err := snap.Board(scenario.DefaultCatalog())
	if err != nil {
		log.Fatal().Err(err).Msg("Scenario does not describe a valid board")
	}

	opts := []search.Option{
		search.WithWeights(weightsFromConfig(cfg.Evaluator)),
		search.WithLogger(log.Logger),
		search.WithTimeBudget(cfg.Search.TimeBudget),
		search.WithParallelRoot(cfg.Search.ParallelWorkers),
		search.WithMetrics(),
	}
	if cfg.Search.ValidateStates {
		opts = append(opts, search.WithTransition(
			processor.NewActionProcessor(log.Logger, processor.WithInvariantChecks(true))))
	}
	minimax := agent.NewMinimaxAgent(search.NewAlphaBeta(opts...), *depth, log.Logger)

	bus := events.NewEventBus(log.Logger)
	if cfg.Logging.Events {
		bus.Subscribe(subscribers.NewLoggerSubscriber("cli-events", log.Logger, zerolog.InfoLevel))
	}

	engine, err := game.NewEngine(ctx, game.GameConfig{
		State:      state,
		Friendly:   minimax,
		Enemy:      agent.NewGreedyAgent(),
		MaxTurns:   *maxTurns,
		RollDamage: cfg.Match.RollDamage,
		Rng:        rng,
		EventBus:   bus,
		Logger:     log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create engine")
	}

	log.Info().
		Str("match_id", engine.MatchID()).
		Str("scenario", snap.Name).
		Int64("seed", *seed).
		Int("depth", *depth).
		Int("max_turns", *maxTurns).
		Msg("Starting skirmish")

	fmt.Printf("Initial board:\n%s\n", engine.Board())

	for !engine.IsGameOver() {
		side := engine.State().ActingSide
		if err := engine.Step(ctx); err != nil {
			log.Fatal().Err(err).Int("turn", engine.Turn()+1).Msg("Turn failed")
		}

		fmt.Printf("Turn %d (%s)", engine.Turn(), side)
		if side == core.Friendly {
			result := minimax.LastResult()
			fmt.Printf(": %s value=%.3f nodes=%d", result.Actions, result.Value, result.Metrics.NodesExpanded)
			if result.Partial {
				fmt.Print(" (partial)")
			}
		}
		fmt.Printf("\n%s\n", engine.Board())
	}

	switch engine.Outcome() {
	case rules.FriendlyWin:
		fmt.Printf("Friendly side wins after %d turns\n", engine.Turn())
	case rules.EnemyWin:
		fmt.Printf("Enemy side wins after %d turns\n", engine.Turn())
	default:
		fmt.Printf("Match drawn after %d turns\n", engine.Turn())
	}
}

func loadScenario(path string, random bool, rc config.RandomConfig, rng *rand.Rand) (*scenario.Snapshot, error) {
	switch {
	case random:
		mc := mapgen.DefaultMapConfig(rc.Width, rc.Height, rc.UnitsPerSide)
		mc.ObstacleRatio = rc.ObstacleRatio
		mc.MinSideSpacing = rc.MinSideSpacing
		return mapgen.NewGenerator(mc, rng).GenerateMap()
	case path != "":
		return scenario.Load(path)
	default:
		return scenario.Default(), nil
	}
}

func dumpScenario(snap *scenario.Snapshot, path string) error {
	data, err := snap.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	log.Info().Str("path", path).Msg("Scenario written")
	return nil
}

func weightsFromConfig(ec config.EvaluatorConfig) search.Weights {
	return search.Weights{
		Distance:           ec.Distance,
		FriendlyHP:         ec.FriendlyHP,
		EnemyHP:            ec.EnemyHP,
		Mobility:           ec.Mobility,
		MobilityNormalizer: ec.MobilityNormalizer,
		DistanceSaturation: ec.DistanceSaturation,
	}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
