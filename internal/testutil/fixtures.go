package testutil

import (
	"pgregory.net/rapid"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

// Footman returns a full-health footman at (x,y)
func Footman(id, x, y int) core.CombatUnit {
	return core.CombatUnit{
		ID: id, Type: "footman", Pos: core.Coordinate{X: x, Y: y},
		HP: 100, MaxHP: 100, Range: 1, BasicDamage: 6, Armor: 1,
	}
}

// Archer returns a full-health archer at (x,y)
func Archer(id, x, y int) core.CombatUnit {
	return core.CombatUnit{
		ID: id, Type: "archer", Pos: core.Coordinate{X: x, Y: y},
		HP: 50, MaxHP: 50, Range: 3, BasicDamage: 3, PiercingDamage: 1,
	}
}

// WithHP returns a copy of u with its current HP replaced
func WithHP(u core.CombatUnit, hp int) core.CombatUnit {
	u.HP = hp
	return u
}

// NewState builds a friendly-to-act state on a width x height grid
func NewState(width, height int, blocked []core.Coordinate, friendly, enemy []core.CombatUnit) core.BoardState {
	return core.NewBoardState(core.NewTerrain(width, height, blocked), friendly, enemy, core.Friendly)
}

// FootmanVsArcher is one footman at (0,0) facing one archer at (2,0) on an empty 5x5 grid
func FootmanVsArcher() core.BoardState {
	return NewState(5, 5, nil,
		[]core.CombatUnit{Footman(1, 0, 0)},
		[]core.CombatUnit{Archer(1, 2, 0)},
	)
}

// DrawState generates a small valid skirmish for property tests: a grid of at
// most 5x5 with a few obstacles, one or two units per side on distinct free
// cells, and arbitrary living HP.
func DrawState(t *rapid.T) core.BoardState {
	width := rapid.IntRange(3, 5).Draw(t, "width")
	height := rapid.IntRange(3, 5).Draw(t, "height")

	cells := make([]core.Coordinate, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells = append(cells, core.Coordinate{X: x, Y: y})
		}
	}
	perm := rapid.Permutation(cells).Draw(t, "cells")

	friendlyCount := rapid.IntRange(1, 2).Draw(t, "friendly")
	enemyCount := rapid.IntRange(1, 2).Draw(t, "enemy")
	blockedCount := rapid.IntRange(0, 2).Draw(t, "blocked")

	next := 0
	take := func() core.Coordinate {
		c := perm[next]
		next++
		return c
	}

	friendly := make([]core.CombatUnit, 0, friendlyCount)
	for i := 0; i < friendlyCount; i++ {
		friendly = append(friendly, drawUnit(t, i+1, take(), "f"))
	}
	enemy := make([]core.CombatUnit, 0, enemyCount)
	for i := 0; i < enemyCount; i++ {
		enemy = append(enemy, drawUnit(t, i+1, take(), "e"))
	}
	blocked := make([]core.Coordinate, 0, blockedCount)
	for i := 0; i < blockedCount; i++ {
		blocked = append(blocked, take())
	}

	return NewState(width, height, blocked, friendly, enemy)
}

func drawUnit(t *rapid.T, id int, pos core.Coordinate, label string) core.CombatUnit {
	var u core.CombatUnit
	if rapid.Bool().Draw(t, label+"_archer") {
		u = Archer(id, pos.X, pos.Y)
	} else {
		u = Footman(id, pos.X, pos.Y)
	}
	u.HP = rapid.IntRange(1, u.MaxHP).Draw(t, label+"_hp")
	return u
}
