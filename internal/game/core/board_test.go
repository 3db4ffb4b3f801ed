package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState() BoardState {
	f := footman()
	f.Pos = Coordinate{0, 0}
	a := archer()
	a.Pos = Coordinate{2, 0}
	terrain := NewTerrain(5, 5, []Coordinate{{X: 3, Y: 3}})
	return NewBoardState(terrain, []CombatUnit{f}, []CombatUnit{a}, Friendly)
}

func TestNewTerrain(t *testing.T) {
	terrain := NewTerrain(4, 3, []Coordinate{{X: 1, Y: 1}, {X: 9, Y: 9}, {X: 3, Y: 0}})

	assert.Equal(t, 4, terrain.W)
	assert.Equal(t, 3, terrain.H)
	assert.True(t, terrain.Blocked(Coordinate{1, 1}))
	assert.True(t, terrain.Blocked(Coordinate{3, 0}))
	assert.False(t, terrain.Blocked(Coordinate{0, 0}))
	assert.False(t, terrain.Blocked(Coordinate{9, 9}), "out-of-bounds obstacles are dropped")
	assert.Equal(t, []Coordinate{{X: 3, Y: 0}, {X: 1, Y: 1}}, terrain.BlockedCells())

	assert.Panics(t, func() { NewTerrain(0, 5, nil) })
}

func TestNewBoardState_SortsAndStampsSides(t *testing.T) {
	terrain := NewTerrain(5, 5, nil)
	friendly := []CombatUnit{
		{ID: 9, HP: 1, MaxHP: 1, Pos: Coordinate{0, 0}},
		{ID: 3, HP: 1, MaxHP: 1, Pos: Coordinate{1, 0}},
	}
	s := NewBoardState(terrain, friendly, []CombatUnit{{ID: 1, HP: 1, MaxHP: 1, Pos: Coordinate{4, 4}}}, Friendly)

	require.Len(t, s.Friendly, 2)
	assert.Equal(t, 3, s.Friendly[0].ID)
	assert.Equal(t, 9, s.Friendly[1].ID)
	assert.Equal(t, Enemy, s.Enemy[0].Side)

	// Input slice is not aliased
	friendly[0].HP = 0
	assert.Equal(t, 1, s.Friendly[1].HP)
}

func TestBoardState_CloneIsIndependent(t *testing.T) {
	s := testState()
	c := s.Clone()

	c.Unit(Friendly, 1).Pos = Coordinate{1, 0}
	c.Unit(Enemy, 2).TakeDamage(10)
	c.Ply++

	assert.Equal(t, Coordinate{0, 0}, s.Friendly[0].Pos)
	assert.Equal(t, 50, s.Enemy[0].HP)
	assert.Equal(t, 0, s.Ply)
	assert.Same(t, s.Terrain, c.Terrain)
}

func TestBoardState_Lookups(t *testing.T) {
	s := testState()

	assert.Nil(t, s.Unit(Friendly, 2), "ids are per side")
	require.NotNil(t, s.Unit(Enemy, 2))

	occupant, ok := s.OccupantAt(Coordinate{2, 0})
	require.True(t, ok)
	assert.Equal(t, 2, occupant.ID)

	assert.False(t, s.IsFree(Coordinate{2, 0}), "occupied")
	assert.False(t, s.IsFree(Coordinate{3, 3}), "blocked")
	assert.False(t, s.IsFree(Coordinate{-1, 0}), "off grid")
	assert.True(t, s.IsFree(Coordinate{1, 0}))

	s.Unit(Enemy, 2).HP = 0
	assert.True(t, s.IsFree(Coordinate{2, 0}), "dead units do not occupy cells")
	assert.False(t, s.HasLiving(Enemy))
	assert.Empty(t, s.LivingUnits(Enemy))
	assert.Len(t, s.Units(Enemy), 1, "dead units keep their roster slot")
}

func TestBoardState_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *BoardState)
		valid  bool
	}{
		{"valid", func(s *BoardState) {}, true},
		{"missing terrain", func(s *BoardState) { s.Terrain = nil }, false},
		{"hp above max", func(s *BoardState) { s.Friendly[0].HP = 101 }, false},
		{"negative hp", func(s *BoardState) { s.Enemy[0].HP = -1 }, false},
		{"off grid", func(s *BoardState) { s.Friendly[0].Pos = Coordinate{5, 0} }, false},
		{"on obstacle", func(s *BoardState) { s.Friendly[0].Pos = Coordinate{3, 3} }, false},
		{"shared cell", func(s *BoardState) { s.Friendly[0].Pos = Coordinate{2, 0} }, false},
		{"dead unit may share a cell", func(s *BoardState) {
			s.Friendly[0].Pos = Coordinate{2, 0}
			s.Friendly[0].HP = 0
		}, true},
		{"duplicate id", func(s *BoardState) {
			dup := s.Friendly[0]
			dup.Pos = Coordinate{4, 4}
			s.Friendly = append(s.Friendly, dup)
		}, false},
		{"bad acting side", func(s *BoardState) { s.ActingSide = Side(5) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testState()
			tt.mutate(&s)
			err := s.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidState)
			}
		})
	}
}
