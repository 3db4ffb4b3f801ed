package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Search    SearchConfig    `mapstructure:"search"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator"`
	Match     MatchConfig     `mapstructure:"match"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SearchConfig holds alpha-beta search settings
type SearchConfig struct {
	MaxDepth        int           `mapstructure:"max_depth"`
	TimeBudget      time.Duration `mapstructure:"time_budget"`
	ParallelWorkers int           `mapstructure:"parallel_workers"`
	ValidateStates  bool          `mapstructure:"validate_states"`
}

// EvaluatorConfig holds the utility function's weights
type EvaluatorConfig struct {
	Distance           float64 `mapstructure:"distance"`
	FriendlyHP         float64 `mapstructure:"friendly_hp"`
	EnemyHP            float64 `mapstructure:"enemy_hp"`
	Mobility           float64 `mapstructure:"mobility"`
	MobilityNormalizer float64 `mapstructure:"mobility_normalizer"`
	DistanceSaturation float64 `mapstructure:"distance_saturation"`
}

// MatchConfig holds skirmish runner settings
type MatchConfig struct {
	MaxTurns   int          `mapstructure:"max_turns"`
	Seed       int64        `mapstructure:"seed"`
	Scenario   string       `mapstructure:"scenario"`
	RollDamage bool         `mapstructure:"roll_damage"`
	Random     RandomConfig `mapstructure:"random"`
}

// RandomConfig holds random scenario generation settings
type RandomConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	Width          int  `mapstructure:"width"`
	Height         int  `mapstructure:"height"`
	UnitsPerSide   int  `mapstructure:"units_per_side"`
	ObstacleRatio  int  `mapstructure:"obstacle_ratio"`
	MinSideSpacing int  `mapstructure:"min_side_spacing"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Events bool   `mapstructure:"events"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Search defaults
	v.SetDefault("search.max_depth", 3)
	v.SetDefault("search.time_budget", 0)
	v.SetDefault("search.parallel_workers", 1)
	v.SetDefault("search.validate_states", false)

	// Evaluator defaults
	v.SetDefault("evaluator.distance", 1.0)
	v.SetDefault("evaluator.friendly_hp", 0.5)
	v.SetDefault("evaluator.enemy_hp", 1.0)
	v.SetDefault("evaluator.mobility", 0.1)
	v.SetDefault("evaluator.mobility_normalizer", 25.0)
	v.SetDefault("evaluator.distance_saturation", 2.0)

	// Match defaults
	v.SetDefault("match.max_turns", 200)
	v.SetDefault("match.seed", 0)
	v.SetDefault("match.scenario", "")
	v.SetDefault("match.roll_damage", true)
	v.SetDefault("match.random.enabled", false)
	v.SetDefault("match.random.width", 10)
	v.SetDefault("match.random.height", 8)
	v.SetDefault("match.random.units_per_side", 2)
	v.SetDefault("match.random.obstacle_ratio", 10)
	v.SetDefault("match.random.min_side_spacing", 3)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.events", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/skirmish-minimax")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("SKM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// A specific file that does not exist falls back to defaults; for the
		// default locations only ConfigFileNotFoundError is ignored
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	// Overlays live next to the base config file
	if used := v.ConfigFileUsed(); used != "" {
		envFile = filepath.Join(filepath.Dir(used), envFile)
	}

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	// Re-unmarshal with merged config
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// GetDuration gets a duration value from config
func GetDuration(key string) time.Duration {
	return v.GetDuration(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. onChange receives the
// validation error of the new config, if any; an invalid file leaves the
// previous values in place.
func WatchConfig(onChange func(error)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			*cfg = *next
		}
		if onChange != nil {
			onChange(err)
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate search settings
	if c.Search.MaxDepth < 0 {
		return fmt.Errorf("search.max_depth must be non-negative")
	}
	if c.Search.TimeBudget < 0 {
		return fmt.Errorf("search.time_budget must be non-negative")
	}
	if c.Search.ParallelWorkers < 1 {
		return fmt.Errorf("search.parallel_workers must be at least 1")
	}

	// Validate evaluator weights
	e := c.Evaluator
	if e.Distance < 0 || e.FriendlyHP < 0 || e.EnemyHP < 0 || e.Mobility < 0 {
		return fmt.Errorf("evaluator weights must be non-negative")
	}
	if e.FriendlyHP >= e.EnemyHP {
		return fmt.Errorf("evaluator.friendly_hp must be below evaluator.enemy_hp")
	}
	if e.MobilityNormalizer <= 0 {
		return fmt.Errorf("evaluator.mobility_normalizer must be positive")
	}
	if e.DistanceSaturation < 1 {
		return fmt.Errorf("evaluator.distance_saturation must be at least 1")
	}

	// Validate match settings
	if c.Match.MaxTurns < 0 {
		return fmt.Errorf("match.max_turns must be non-negative")
	}
	r := c.Match.Random
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("match.random dimensions must be positive")
	}
	if r.UnitsPerSide < 1 {
		return fmt.Errorf("match.random.units_per_side must be at least 1")
	}
	if 2*r.UnitsPerSide > r.Width*r.Height {
		return fmt.Errorf("match.random.units_per_side does not fit on a %dx%d map", r.Width, r.Height)
	}
	if r.ObstacleRatio < 0 || r.MinSideSpacing < 0 {
		return fmt.Errorf("match.random.obstacle_ratio and min_side_spacing must be non-negative")
	}

	// Validate logging settings
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}
