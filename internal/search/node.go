package search

import (
	"errors"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

// ActionGenerator enumerates the legal orders of a unit
type ActionGenerator interface {
	LegalActions(unit core.CombatUnit, state core.BoardState) []core.Action
	CountLegalActions(unit core.CombatUnit, state core.BoardState) int
}

// Transition applies an action map for the state's acting side
type Transition interface {
	Apply(state core.BoardState, actions core.ActionMap) (core.BoardState, error)
}

// Node is one position in the search tree. Parent is only used to walk back to
// the root decision.
type Node struct {
	State    core.BoardState
	Incoming core.ActionMap
	Parent   *Node
}

// NewRoot wraps state as a search root
func NewRoot(state core.BoardState) *Node {
	return &Node{State: state, Incoming: core.ActionMap{}}
}

// IsRoot reports whether the node has no parent
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// RootActions returns the action map the root side played to reach this line
func (n *Node) RootActions() core.ActionMap {
	if n.IsRoot() {
		return core.ActionMap{}
	}
	cur := n
	for !cur.Parent.IsRoot() {
		cur = cur.Parent
	}
	return cur.Incoming
}

// Children expands n: one child per combination of legal actions of the acting
// side's living units. Units without legal actions sit the ply out. Joint
// combinations that send two units into the same cell are not playable and are
// dropped. A node whose acting side cannot act has no children.
func (n *Node) Children(gen ActionGenerator, transition Transition) ([]*Node, error) {
	type choice struct {
		id      int
		actions []core.Action
	}

	var choices []choice
	for _, u := range n.State.LivingUnits(n.State.ActingSide) {
		if actions := gen.LegalActions(u, n.State); len(actions) > 0 {
			choices = append(choices, choice{id: u.ID, actions: actions})
		}
	}
	if len(choices) == 0 {
		return nil, nil
	}

	total := 1
	for _, c := range choices {
		total *= len(c.actions)
	}
	children := make([]*Node, 0, total)

	idx := make([]int, len(choices))
	for {
		actions := make(core.ActionMap, len(choices))
		for i, c := range choices {
			actions[c.id] = c.actions[idx[i]]
		}

		next, err := transition.Apply(n.State, actions)
		switch {
		case err == nil:
			children = append(children, &Node{State: next, Incoming: actions, Parent: n})
		case errors.Is(err, core.ErrCellOccupied):
			// collision between two of the side's own moves
		default:
			return nil, err
		}

		// Advance the odometer, last unit fastest
		k := len(idx) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < len(choices[k].actions) {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return children, nil
		}
	}
}
