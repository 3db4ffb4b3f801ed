package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

//go:embed default.yaml
var defaultScenario []byte

// Observation is one unit as the engine reports it at the start of a turn
type Observation struct {
	ID   int    `yaml:"id"`
	Side string `yaml:"side"`
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	// HP of zero means full health
	HP int `yaml:"hp,omitempty"`
}

// Cell is a blocked grid position
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Snapshot is the per-turn observation a search starts from
type Snapshot struct {
	Name    string        `yaml:"name,omitempty"`
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	Acting  string        `yaml:"acting,omitempty"`
	Blocked []Cell        `yaml:"blocked,omitempty"`
	Units   []Observation `yaml:"units"`
	// Catalog entries here override the catalog passed to Board
	Catalog Catalog `yaml:"catalog,omitempty"`
}

// ParseSide converts "friendly" or "enemy" into a core.Side
func ParseSide(s string) (core.Side, error) {
	switch s {
	case "friendly":
		return core.Friendly, nil
	case "enemy":
		return core.Enemy, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

// Validate checks the snapshot's shape before it is turned into a board
func (s *Snapshot) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d", core.ErrInvalidState, s.Width, s.Height)
	}
	if s.Acting != "" {
		if _, err := ParseSide(s.Acting); err != nil {
			return fmt.Errorf("%w: acting: %v", core.ErrInvalidState, err)
		}
	}
	for _, obs := range s.Units {
		if _, err := ParseSide(obs.Side); err != nil {
			return fmt.Errorf("%w: unit %d: %v", core.ErrInvalidState, obs.ID, err)
		}
		if obs.HP < 0 {
			return fmt.Errorf("%w: unit %d has negative hp", core.ErrInvalidState, obs.ID)
		}
	}
	if err := s.Catalog.Validate(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidState, err)
	}
	return nil
}

// Board builds the root search state. Unit stats come from catalog, overridden
// by the snapshot's own catalog entries. A type missing from both yields
// core.ErrMissingTemplate.
func (s *Snapshot) Board(catalog Catalog) (core.BoardState, error) {
	if err := s.Validate(); err != nil {
		return core.BoardState{}, err
	}
	merged := catalog.Merge(s.Catalog)

	acting := core.Friendly
	if s.Acting != "" {
		acting, _ = ParseSide(s.Acting)
	}

	var friendly, enemy []core.CombatUnit
	for _, obs := range s.Units {
		side, _ := ParseSide(obs.Side)
		tmpl, ok := merged[obs.Type]
		if !ok {
			return core.BoardState{}, fmt.Errorf("unit %d: %w: %q", obs.ID, core.ErrMissingTemplate, obs.Type)
		}
		hp := obs.HP
		if hp == 0 {
			hp = tmpl.MaxHP
		}
		unit, err := merged.Unit(obs.Type, obs.ID, side, core.Coordinate{X: obs.X, Y: obs.Y}, hp)
		if err != nil {
			return core.BoardState{}, err
		}
		if side == core.Friendly {
			friendly = append(friendly, unit)
		} else {
			enemy = append(enemy, unit)
		}
	}

	blocked := make([]core.Coordinate, 0, len(s.Blocked))
	for _, c := range s.Blocked {
		blocked = append(blocked, core.Coordinate{X: c.X, Y: c.Y})
	}

	state := core.NewBoardState(core.NewTerrain(s.Width, s.Height, blocked), friendly, enemy, acting)
	if err := state.Validate(); err != nil {
		return core.BoardState{}, err
	}
	return state, nil
}

// FromBoard captures the living units of a state as a snapshot. The catalog
// is rebuilt from the units' own stats.
func FromBoard(state core.BoardState) Snapshot {
	snap := Snapshot{
		Width:   state.Terrain.W,
		Height:  state.Terrain.H,
		Acting:  state.ActingSide.String(),
		Catalog: Catalog{},
	}
	for _, c := range state.Terrain.BlockedCells() {
		snap.Blocked = append(snap.Blocked, Cell{X: c.X, Y: c.Y})
	}
	for _, side := range []core.Side{core.Friendly, core.Enemy} {
		for _, u := range state.LivingUnits(side) {
			snap.Units = append(snap.Units, Observation{
				ID: u.ID, Side: side.String(), Type: u.Type, X: u.Pos.X, Y: u.Pos.Y, HP: u.HP,
			})
			snap.Catalog[u.Type] = Template{
				MaxHP:          u.MaxHP,
				Range:          u.Range,
				BasicDamage:    u.BasicDamage,
				PiercingDamage: u.PiercingDamage,
				Armor:          u.Armor,
			}
		}
	}
	return snap
}

// Marshal encodes the snapshot as YAML
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding scenario YAML: %w", err)
	}
	return data, nil
}

// LoadFromBytes parses a YAML scenario and validates it
func LoadFromBytes(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a YAML scenario file
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	s, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading scenario %q: %w", path, err)
	}
	return s, nil
}

// Default returns the built-in footmen vs archers skirmish
func Default() *Snapshot {
	s, err := LoadFromBytes(defaultScenario)
	if err != nil {
		panic(fmt.Sprintf("built-in scenario is invalid: %v", err))
	}
	return s
}
