package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/processor"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/rules"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/testutil"
)

// countingTransition wraps a transition and records how often it was used
type countingTransition struct {
	inner Transition
	calls int
	err   error
}

func (c *countingTransition) Apply(state core.BoardState, actions core.ActionMap) (core.BoardState, error) {
	c.calls++
	if c.err != nil {
		return state, c.err
	}
	return c.inner.Apply(state, actions)
}

func newTransition() Transition {
	return processor.NewActionProcessor(testutil.NopLogger(), processor.WithInvariantChecks(true))
}

func incoming(children []*Node) []core.ActionMap {
	maps := make([]core.ActionMap, len(children))
	for i, c := range children {
		maps[i] = c.Incoming
	}
	return maps
}

func TestNode_ChildrenSingleUnit(t *testing.T) {
	root := NewRoot(testutil.FootmanVsArcher())
	require.True(t, root.IsRoot())

	children, err := root.Children(rules.NewLegalMoveCalculator(), newTransition())
	require.NoError(t, err)

	assert.Equal(t, []core.ActionMap{
		{1: core.NewMove(core.East)},
		{1: core.NewMove(core.South)},
	}, incoming(children))

	for _, c := range children {
		assert.Same(t, root, c.Parent)
		assert.Equal(t, core.Enemy, c.State.ActingSide)
		assert.Equal(t, 1, c.State.Ply)
	}
	// Siblings do not share rosters
	children[0].State.Friendly[0].HP = 1
	assert.Equal(t, 100, children[1].State.Friendly[0].HP)
	assert.Equal(t, 100, root.State.Friendly[0].HP)
}

func TestNode_ChildrenCrossProductDropsCollisions(t *testing.T) {
	// f1 can go east or south, f2 south or west; east+west collide on (1,0)
	state := testutil.NewState(3, 2, nil,
		[]core.CombatUnit{testutil.Footman(1, 0, 0), testutil.Footman(2, 2, 0)},
		[]core.CombatUnit{testutil.Archer(1, 1, 1)})
	state.Enemy[0].HP = 0

	children, err := NewRoot(state).Children(rules.NewLegalMoveCalculator(), newTransition())
	require.NoError(t, err)

	assert.Equal(t, []core.ActionMap{
		{1: core.NewMove(core.East), 2: core.NewMove(core.South)},
		{1: core.NewMove(core.South), 2: core.NewMove(core.South)},
		{1: core.NewMove(core.South), 2: core.NewMove(core.West)},
	}, incoming(children))
}

func TestNode_ChildrenOmitUnitsWithoutActions(t *testing.T) {
	// f1 is walled in; only f2 acts
	state := testutil.NewState(4, 4, []core.Coordinate{{X: 1, Y: 0}, {X: 0, Y: 1}},
		[]core.CombatUnit{testutil.Footman(1, 0, 0), testutil.Footman(2, 3, 3)},
		[]core.CombatUnit{testutil.Archer(1, 3, 0)})

	children, err := NewRoot(state).Children(rules.NewLegalMoveCalculator(), newTransition())
	require.NoError(t, err)
	require.Len(t, children, 2)
	for _, c := range children {
		assert.NotContains(t, c.Incoming, 1)
		assert.Contains(t, c.Incoming, 2)
	}
}

func TestNode_NoChildren(t *testing.T) {
	gen := rules.NewLegalMoveCalculator()
	tr := &countingTransition{inner: newTransition()}

	t.Run("acting side all dead", func(t *testing.T) {
		state := testutil.NewState(3, 3, nil,
			[]core.CombatUnit{testutil.WithHP(testutil.Footman(1, 0, 0), 0)},
			[]core.CombatUnit{testutil.Archer(1, 2, 2)})
		children, err := NewRoot(state).Children(gen, tr)
		require.NoError(t, err)
		assert.Empty(t, children)
	})

	t.Run("acting side boxed in", func(t *testing.T) {
		state := testutil.NewState(3, 3, []core.Coordinate{{X: 1, Y: 0}, {X: 0, Y: 1}},
			[]core.CombatUnit{testutil.Footman(1, 0, 0)},
			[]core.CombatUnit{testutil.Archer(1, 2, 2)})
		children, err := NewRoot(state).Children(gen, tr)
		require.NoError(t, err)
		assert.Empty(t, children)
	})

	assert.Zero(t, tr.calls)
}

func TestNode_ChildrenPropagatesTransitionBugs(t *testing.T) {
	boom := errors.New("boom")
	tr := &countingTransition{err: boom}

	_, err := NewRoot(testutil.FootmanVsArcher()).Children(rules.NewLegalMoveCalculator(), tr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, tr.calls)
}

func TestNode_RootActions(t *testing.T) {
	gen := rules.NewLegalMoveCalculator()
	root := NewRoot(testutil.FootmanVsArcher())
	assert.Empty(t, root.RootActions())

	children, err := root.Children(gen, newTransition())
	require.NoError(t, err)
	grandchildren, err := children[1].Children(gen, newTransition())
	require.NoError(t, err)
	require.NotEmpty(t, grandchildren)

	assert.Equal(t, core.ActionMap{1: core.NewMove(core.South)}, grandchildren[0].RootActions())
	assert.Equal(t, children[1].Incoming, children[1].RootActions())
}
