package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

// This file contains all board rendering functionality for the skirmish engine.

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorGray  = "\033[90m"
)

var sideColors = map[core.Side]string{
	core.Friendly: ColorBlue,
	core.Enemy:    ColorRed,
}

const (
	EmptySymbol    = "·"
	ObstacleSymbol = "▲"
)

// Board returns a string representation of the current battlefield
func (e *Engine) Board() string {
	return RenderBoard(e.state)
}

// RenderBoard draws the grid with each living unit shown as its type initial
// and id, followed by a roster of hit points
func RenderBoard(state core.BoardState) string {
	width := state.Terrain.W
	height := state.Terrain.H

	// Each cell takes 3 visible chars plus ~10 chars of ANSI codes
	var sb strings.Builder
	sb.Grow((width*13+4)*(height+2) + 64*(len(state.Friendly)+len(state.Enemy)))

	// Header row
	sb.WriteString("   ")
	for x := 0; x < width; x++ {
		fmt.Fprintf(&sb, "%3d", x)
	}
	sb.WriteString("\n")

	for y := 0; y < height; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < width; x++ {
			writeCell(&sb, state, core.Coordinate{X: x, Y: y})
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for _, side := range []core.Side{core.Friendly, core.Enemy} {
		sb.WriteString(sideColors[side])
		sb.WriteString(side.String())
		sb.WriteString(ColorReset)
		sb.WriteString(":")
		for _, u := range state.Units(side) {
			if !u.Alive() {
				fmt.Fprintf(&sb, " %s%s dead%s", ColorGray, unitLabel(u), ColorReset)
				continue
			}
			fmt.Fprintf(&sb, " %s %d/%d", unitLabel(u), u.HP, u.MaxHP)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(EmptySymbol + "=empty " + ObstacleSymbol + "=obstacle\n")

	return sb.String()
}

// writeCell writes one cell directly to the builder
func writeCell(sb *strings.Builder, state core.BoardState, c core.Coordinate) {
	if u, ok := state.OccupantAt(c); ok {
		sb.WriteString(sideColors[u.Side])
		sb.WriteString(fmt.Sprintf("%3s", unitLabel(u)))
		sb.WriteString(ColorReset)
		return
	}

	if state.Terrain.Blocked(c) {
		sb.WriteString(ColorGray)
		sb.WriteString("  " + ObstacleSymbol)
	} else {
		sb.WriteString(ColorGray)
		sb.WriteString("  " + EmptySymbol)
	}
	sb.WriteString(ColorReset)
}

// unitLabel is the unit type's upper-cased initial followed by its id, e.g. "F1"
func unitLabel(u core.CombatUnit) string {
	initial := "?"
	if u.Type != "" {
		initial = strings.ToUpper(u.Type[:1])
	}
	return fmt.Sprintf("%s%d", initial, u.ID)
}
