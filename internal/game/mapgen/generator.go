package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/scenario"
)

// MapConfig holds configuration for random skirmish generation
type MapConfig struct {
	Width          int
	Height         int
	FriendlyUnits  int
	EnemyUnits     int
	FriendlyType   string
	EnemyType      string
	ObstacleRatio  int // 1 obstacle per N tiles, 0 disables obstacles
	MinSideSpacing int // Minimum Chebyshev distance between opposing units
}

// DefaultMapConfig returns a footmen vs archers configuration
func DefaultMapConfig(w, h, unitsPerSide int) MapConfig {
	return MapConfig{
		Width:          w,
		Height:         h,
		FriendlyUnits:  unitsPerSide,
		EnemyUnits:     unitsPerSide,
		FriendlyType:   "footman",
		EnemyType:      "archer",
		ObstacleRatio:  10,
		MinSideSpacing: 3,
	}
}

// Validate checks the configuration can describe a board
func (c MapConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid map dimensions %dx%d", c.Width, c.Height)
	}
	if c.FriendlyUnits < 1 || c.EnemyUnits < 1 {
		return fmt.Errorf("each side needs at least one unit")
	}
	if c.FriendlyUnits+c.EnemyUnits > c.Width*c.Height {
		return fmt.Errorf("%d units do not fit on a %dx%d map", c.FriendlyUnits+c.EnemyUnits, c.Width, c.Height)
	}
	if c.ObstacleRatio < 0 || c.MinSideSpacing < 0 {
		return fmt.Errorf("obstacle ratio and spacing must be non-negative")
	}
	return nil
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// grid tracks which cells are taken while a map is being built
type grid struct {
	w, h     int
	blocked  []bool
	occupied []bool
}

func (g *grid) free(idx int) bool {
	return !g.blocked[idx] && !g.occupied[idx]
}

// GenerateMap creates a snapshot with obstacles and both sides' units placed.
// Friendly units are listed first, each side numbered from 1.
func (g *Generator) GenerateMap() (*scenario.Snapshot, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	b := &grid{
		w:        g.config.Width,
		h:        g.config.Height,
		blocked:  make([]bool, g.config.Width*g.config.Height),
		occupied: make([]bool, g.config.Width*g.config.Height),
	}

	g.placeObstacles(b)

	snap := &scenario.Snapshot{
		Name:   fmt.Sprintf("random-%dx%d", g.config.Width, g.config.Height),
		Width:  g.config.Width,
		Height: g.config.Height,
		Acting: core.Friendly.String(),
	}
	for idx, blocked := range b.blocked {
		if blocked {
			snap.Blocked = append(snap.Blocked, scenario.Cell{X: idx % b.w, Y: idx / b.w})
		}
	}

	friendly, err := g.placeSide(b, core.Friendly, g.config.FriendlyUnits, g.config.FriendlyType, nil)
	if err != nil {
		return nil, err
	}
	enemy, err := g.placeSide(b, core.Enemy, g.config.EnemyUnits, g.config.EnemyType, friendly)
	if err != nil {
		return nil, err
	}
	snap.Units = append(friendly, enemy...)

	return snap, nil
}

func (g *Generator) placeObstacles(b *grid) {
	if g.config.ObstacleRatio == 0 {
		return
	}
	want := (b.w * b.h) / g.config.ObstacleRatio
	// Leave room for every unit
	if limit := b.w*b.h - g.config.FriendlyUnits - g.config.EnemyUnits; want > limit {
		want = limit
	}
	placed := 0

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	attempts := 0

	for placed < want && attempts < maxAttempts {
		idx := g.rng.Intn(b.w * b.h)
		if !b.blocked[idx] {
			b.blocked[idx] = true
			placed++
		}
		attempts++
	}
}

func (g *Generator) placeSide(b *grid, side core.Side, count int, unitType string, opponents []scenario.Observation) ([]scenario.Observation, error) {
	units := make([]scenario.Observation, 0, count)
	for id := 1; id <= count; id++ {
		idx, err := g.findUnitLocation(b, opponents)
		if err != nil {
			return nil, fmt.Errorf("placing %s unit %d: %w", side, id, err)
		}
		b.occupied[idx] = true
		units = append(units, scenario.Observation{
			ID:   id,
			Side: side.String(),
			Type: unitType,
			X:    idx % b.w,
			Y:    idx / b.w,
		})
	}
	return units, nil
}

func (g *Generator) findUnitLocation(b *grid, opponents []scenario.Observation) (int, error) {
	maxAttempts := b.w * b.h // Fallback to prevent infinite loops

	for attempts := 0; attempts < maxAttempts; attempts++ {
		idx := g.rng.Intn(b.w * b.h)
		if !b.free(idx) {
			continue
		}

		// Check minimum distance from opposing units
		pos := core.Coordinate{X: idx % b.w, Y: idx / b.w}
		validLocation := true
		for _, other := range opponents {
			if pos.ChebyshevDistanceTo(core.Coordinate{X: other.X, Y: other.Y}) < g.config.MinSideSpacing {
				validLocation = false
				break
			}
		}

		if validLocation {
			return idx, nil
		}
	}

	// Fallback: place on the first free cell
	for idx := range b.blocked {
		if b.free(idx) {
			return idx, nil
		}
	}

	return 0, fmt.Errorf("no free cell left on a %dx%d map", b.w, b.h)
}
