package core

import (
	"fmt"
	"sort"
)

// Terrain holds the static part of the battlefield. It is never mutated after
// NewTerrain returns, so every BoardState in a search tree can share one.
type Terrain struct {
	W, H    int
	blocked []bool
}

// NewTerrain creates a width x height grid with the given impassable cells.
// Out-of-bounds blocked cells are ignored.
func NewTerrain(width, height int, blocked []Coordinate) *Terrain {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid terrain dimensions %dx%d", width, height))
	}
	t := &Terrain{W: width, H: height, blocked: make([]bool, width*height)}
	for _, c := range blocked {
		if c.IsValid(width, height) {
			t.blocked[c.ToIndex(width)] = true
		}
	}
	return t
}

// InBounds checks if a cell lies on the grid
func (t *Terrain) InBounds(c Coordinate) bool {
	return c.IsValid(t.W, t.H)
}

// Blocked reports whether a cell is an obstacle. Out-of-bounds cells are not blocked, just invalid.
func (t *Terrain) Blocked(c Coordinate) bool {
	if !t.InBounds(c) {
		return false
	}
	return t.blocked[c.ToIndex(t.W)]
}

// BlockedCells returns the obstacle cells in row-major order
func (t *Terrain) BlockedCells() []Coordinate {
	var cells []Coordinate
	for idx, b := range t.blocked {
		if b {
			cells = append(cells, Coordinate{X: idx % t.W, Y: idx / t.W})
		}
	}
	return cells
}

// BoardState is the simulated battlefield at one search node.
// Rosters are value slices sorted by unit id; call Clone before mutating a state
// that another node may still read.
type BoardState struct {
	Friendly   []CombatUnit
	Enemy      []CombatUnit
	Terrain    *Terrain
	ActingSide Side
	Ply        int
}

// NewBoardState copies the rosters, sorts them by id and stamps each unit's side
func NewBoardState(terrain *Terrain, friendly, enemy []CombatUnit, acting Side) BoardState {
	s := BoardState{
		Friendly:   copyRoster(friendly, Friendly),
		Enemy:      copyRoster(enemy, Enemy),
		Terrain:    terrain,
		ActingSide: acting,
	}
	return s
}

func copyRoster(units []CombatUnit, side Side) []CombatUnit {
	out := make([]CombatUnit, len(units))
	copy(out, units)
	for i := range out {
		out[i].Side = side
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clone returns a state that shares nothing mutable with s
func (s BoardState) Clone() BoardState {
	c := s
	c.Friendly = append([]CombatUnit(nil), s.Friendly...)
	c.Enemy = append([]CombatUnit(nil), s.Enemy...)
	return c
}

// Units returns the roster of the given side
func (s BoardState) Units(side Side) []CombatUnit {
	if side == Friendly {
		return s.Friendly
	}
	return s.Enemy
}

// Unit returns a pointer to the roster entry with the given id, or nil.
// The pointer aliases the state's roster.
func (s *BoardState) Unit(side Side, id int) *CombatUnit {
	roster := s.Friendly
	if side == Enemy {
		roster = s.Enemy
	}
	for i := range roster {
		if roster[i].ID == id {
			return &roster[i]
		}
	}
	return nil
}

// LivingUnits returns copies of the side's units with HP > 0, in roster order
func (s BoardState) LivingUnits(side Side) []CombatUnit {
	var out []CombatUnit
	for _, u := range s.Units(side) {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// HasLiving reports whether any unit of the side is alive
func (s BoardState) HasLiving(side Side) bool {
	for _, u := range s.Units(side) {
		if u.Alive() {
			return true
		}
	}
	return false
}

// OccupantAt returns the living unit standing on c, if any
func (s BoardState) OccupantAt(c Coordinate) (CombatUnit, bool) {
	for _, roster := range [][]CombatUnit{s.Friendly, s.Enemy} {
		for _, u := range roster {
			if u.Alive() && u.Pos == c {
				return u, true
			}
		}
	}
	return CombatUnit{}, false
}

// IsFree checks whether a unit may step onto c
func (s BoardState) IsFree(c Coordinate) bool {
	if !s.Terrain.InBounds(c) || s.Terrain.Blocked(c) {
		return false
	}
	_, occupied := s.OccupantAt(c)
	return !occupied
}

// Validate checks the structural invariants every search node relies on
func (s BoardState) Validate() error {
	if s.Terrain == nil {
		return fmt.Errorf("%w: missing terrain", ErrInvalidState)
	}
	if s.ActingSide != Friendly && s.ActingSide != Enemy {
		return fmt.Errorf("%w: acting side %d", ErrInvalidState, int(s.ActingSide))
	}

	occupied := make(map[Coordinate]int)
	for _, side := range []Side{Friendly, Enemy} {
		ids := make(map[int]struct{})
		for _, u := range s.Units(side) {
			if _, dup := ids[u.ID]; dup {
				return fmt.Errorf("%w: duplicate %s unit id %d", ErrInvalidState, side, u.ID)
			}
			ids[u.ID] = struct{}{}

			if u.Side != side {
				return fmt.Errorf("%w: unit #%d listed as %s but tagged %s", ErrInvalidState, u.ID, side, u.Side)
			}
			if u.MaxHP <= 0 || u.HP < 0 || u.HP > u.MaxHP {
				return fmt.Errorf("%w: %s hp out of range", ErrInvalidState, u)
			}
			if !u.Alive() {
				continue
			}
			if !s.Terrain.InBounds(u.Pos) {
				return fmt.Errorf("%w: %s is off the grid", ErrInvalidState, u)
			}
			if s.Terrain.Blocked(u.Pos) {
				return fmt.Errorf("%w: %s stands on a blocked cell", ErrInvalidState, u)
			}
			occupied[u.Pos]++
			if occupied[u.Pos] > 1 {
				return fmt.Errorf("%w: cell %s holds more than one living unit", ErrInvalidState, u.Pos)
			}
		}
	}
	return nil
}
