package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/processor"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/search"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/testutil"
)

func enemyToAct(width, height int, friendly, enemy []core.CombatUnit) core.BoardState {
	return core.NewBoardState(core.NewTerrain(width, height, nil), friendly, enemy, core.Enemy)
}

func TestMinimaxAgent(t *testing.T) {
	ab := search.NewAlphaBeta(search.WithMetrics())
	agent := NewMinimaxAgent(ab, 2, testutil.NopLogger())
	assert.Equal(t, "minimax", agent.Name())

	actions, err := agent.Decide(context.Background(), testutil.FootmanVsArcher())
	require.NoError(t, err)
	assert.Equal(t, core.ActionMap{1: core.NewMove(core.East)}, actions)

	last := agent.LastResult()
	assert.Equal(t, actions, last.Actions)
	assert.False(t, last.Partial)
	assert.Positive(t, last.Metrics.NodesExpanded)
}

func TestMinimaxAgentInvalidDepth(t *testing.T) {
	agent := NewMinimaxAgent(search.NewAlphaBeta(), -1, testutil.NopLogger())

	_, err := agent.Decide(context.Background(), testutil.FootmanVsArcher())
	assert.ErrorIs(t, err, core.ErrInvalidDepth)
}

func TestGreedyAgent(t *testing.T) {
	testCases := []struct {
		name     string
		state    core.BoardState
		expected core.ActionMap
	}{
		{
			name: "ShootsTargetInRange",
			state: enemyToAct(5, 5,
				[]core.CombatUnit{testutil.Footman(1, 0, 0)},
				[]core.CombatUnit{testutil.Archer(1, 2, 0)}),
			expected: core.ActionMap{1: core.NewAttack(1)},
		},
		{
			name: "PrefersWeakestTarget",
			state: enemyToAct(5, 5,
				[]core.CombatUnit{testutil.Footman(1, 0, 2), testutil.WithHP(testutil.Footman(2, 2, 0), 30)},
				[]core.CombatUnit{testutil.Archer(1, 2, 2)}),
			expected: core.ActionMap{1: core.NewAttack(2)},
		},
		{
			name: "TiesGoToLowestID",
			state: enemyToAct(5, 5,
				[]core.CombatUnit{testutil.Footman(1, 0, 2), testutil.Footman(2, 2, 0)},
				[]core.CombatUnit{testutil.Archer(1, 2, 2)}),
			expected: core.ActionMap{1: core.NewAttack(1)},
		},
		{
			name: "StepsTowardNearest",
			state: enemyToAct(8, 3,
				[]core.CombatUnit{testutil.Footman(1, 0, 0)},
				[]core.CombatUnit{testutil.Archer(1, 6, 0)}),
			expected: core.ActionMap{1: core.NewMove(core.West)},
		},
		{
			name: "OwnUnitsDoNotCollide",
			state: testutil.NewState(3, 5, nil,
				[]core.CombatUnit{testutil.Footman(1, 0, 1), testutil.Footman(2, 1, 0)},
				[]core.CombatUnit{testutil.Archer(1, 1, 4)}),
			// Footman 2 would step onto (1,1) but footman 1 already claimed it
			expected: core.ActionMap{1: core.NewMove(core.East)},
		},
		{
			name: "NoOpponentsLeft",
			state: testutil.NewState(3, 3, nil,
				[]core.CombatUnit{testutil.Footman(1, 0, 0)},
				[]core.CombatUnit{testutil.WithHP(testutil.Archer(1, 2, 2), 0)}),
			expected: core.ActionMap{},
		},
	}

	agent := NewGreedyAgent()
	assert.Equal(t, "greedy", agent.Name())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actions, err := agent.Decide(context.Background(), tc.state)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actions)
		})
	}
}

func TestGreedyAgentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGreedyAgent().Decide(ctx, testutil.FootmanVsArcher())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGreedyAgentActionsApply(t *testing.T) {
	agent := NewGreedyAgent()
	ap := processor.NewActionProcessor(testutil.NopLogger(), processor.WithInvariantChecks(true))

	rapid.Check(t, func(t *rapid.T) {
		state := testutil.DrawState(t)

		actions, err := agent.Decide(context.Background(), state)
		if err != nil {
			t.Fatalf("decide: %v", err)
		}
		for id := range actions {
			if u := state.Unit(state.ActingSide, id); u == nil || !u.Alive() {
				t.Fatalf("action for unit %d that cannot act", id)
			}
		}
		if _, err := ap.Apply(state, actions); err != nil {
			t.Fatalf("greedy actions %s rejected: %v", actions, err)
		}
	})
}
