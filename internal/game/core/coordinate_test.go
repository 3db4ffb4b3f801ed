package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCoordinate(t *testing.T) {
	c := NewCoordinate(3, 5)
	assert.Equal(t, 3, c.X)
	assert.Equal(t, 5, c.Y)
}

func TestCoordinate_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		coord    Coordinate
		expected bool
	}{
		{"Origin", Coordinate{0, 0}, true},
		{"BottomRight", Coordinate{4, 4}, true},
		{"NegativeX", Coordinate{-1, 2}, false},
		{"NegativeY", Coordinate{2, -1}, false},
		{"PastWidth", Coordinate{5, 0}, false},
		{"PastHeight", Coordinate{0, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.coord.IsValid(5, 5))
		})
	}
}

func TestCoordinate_Distances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Coordinate
		manhattan int
		chebyshev int
	}{
		{"Same", Coordinate{2, 2}, Coordinate{2, 2}, 0, 0},
		{"Horizontal", Coordinate{0, 0}, Coordinate{3, 0}, 3, 3},
		{"Diagonal", Coordinate{0, 0}, Coordinate{1, 1}, 2, 1},
		{"Knight", Coordinate{4, 1}, Coordinate{2, 2}, 3, 2},
		{"Negative", Coordinate{-1, -1}, Coordinate{1, 2}, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.manhattan, tt.a.DistanceTo(tt.b))
			assert.Equal(t, tt.manhattan, tt.b.DistanceTo(tt.a))
			assert.Equal(t, tt.chebyshev, tt.a.ChebyshevDistanceTo(tt.b))
			assert.Equal(t, tt.chebyshev, tt.b.ChebyshevDistanceTo(tt.a))
		})
	}
}

func TestCoordinate_Move(t *testing.T) {
	origin := Coordinate{2, 2}
	assert.Equal(t, Coordinate{2, 1}, origin.Move(North))
	assert.Equal(t, Coordinate{3, 2}, origin.Move(East))
	assert.Equal(t, Coordinate{2, 3}, origin.Move(South))
	assert.Equal(t, Coordinate{1, 2}, origin.Move(West))
	assert.Equal(t, origin, origin.Move(Direction(9)), "unknown direction leaves the coordinate unchanged")
}

func TestCoordinate_DirectionTo(t *testing.T) {
	origin := Coordinate{2, 2}
	for _, d := range Directions {
		assert.Equal(t, d, origin.DirectionTo(origin.Move(d)), d.String())
	}
	assert.Equal(t, Direction(-1), origin.DirectionTo(Coordinate{3, 3}))
	assert.Equal(t, Direction(-1), origin.DirectionTo(origin))
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "north", North.String())
	assert.Equal(t, "west", West.String())
	assert.Equal(t, "direction(7)", Direction(7).String())
	assert.True(t, East.Valid())
	assert.False(t, Direction(4).Valid())
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "(5,3)", Coordinate{5, 3}.String())
}
