package core

import (
	"fmt"
	"sort"
	"strings"
)

// ActionKind tags the Action variant
type ActionKind int

const (
	Move ActionKind = iota
	Attack
)

func (k ActionKind) String() string {
	switch k {
	case Move:
		return "move"
	case Attack:
		return "attack"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is a single unit's order for one ply: a one-cell move or an attack on an opposing unit.
// Direction is only meaningful for Move and TargetID only for Attack.
type Action struct {
	Kind      ActionKind
	Direction Direction
	TargetID  int
}

// NewMove creates a move action
func NewMove(d Direction) Action {
	return Action{Kind: Move, Direction: d}
}

// NewAttack creates an attack action against the opposing unit with the given id
func NewAttack(targetID int) Action {
	return Action{Kind: Attack, TargetID: targetID}
}

func (a Action) String() string {
	switch a.Kind {
	case Move:
		return "move " + a.Direction.String()
	case Attack:
		return fmt.Sprintf("attack #%d", a.TargetID)
	default:
		return a.Kind.String()
	}
}

// ActionMap assigns one action to each commanded unit id.
// Units absent from the map do nothing this ply.
type ActionMap map[int]Action

// SortedIDs returns the unit ids in application order
func (m ActionMap) SortedIDs() []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns an independent copy of the map
func (m ActionMap) Clone() ActionMap {
	out := make(ActionMap, len(m))
	for id, a := range m {
		out[id] = a
	}
	return out
}

func (m ActionMap) String() string {
	if len(m) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(m))
	for _, id := range m.SortedIDs() {
		parts = append(parts, fmt.Sprintf("#%d: %s", id, m[id]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
