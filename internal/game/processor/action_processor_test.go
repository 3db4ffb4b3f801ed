package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/testutil"
)

func TestApply_MoveFlipsTurnAndLeavesInputAlone(t *testing.T) {
	ap := NewActionProcessor(testutil.NopLogger())
	state := testutil.FootmanVsArcher()

	next, err := ap.Apply(state, core.ActionMap{1: core.NewMove(core.East)})
	require.NoError(t, err)

	assert.Equal(t, core.Coordinate{X: 1, Y: 0}, next.Friendly[0].Pos)
	assert.Equal(t, core.Enemy, next.ActingSide)
	assert.Equal(t, 1, next.Ply)

	assert.Equal(t, core.Coordinate{X: 0, Y: 0}, state.Friendly[0].Pos)
	assert.Equal(t, core.Friendly, state.ActingSide)
	assert.Equal(t, 0, state.Ply)
}

func TestApply_EmptyMapStillPassesTheTurn(t *testing.T) {
	ap := NewActionProcessor(testutil.NopLogger())
	state := testutil.FootmanVsArcher()

	next, err := ap.Apply(state, core.ActionMap{})
	require.NoError(t, err)
	assert.Equal(t, core.Enemy, next.ActingSide)
	assert.Equal(t, state.Friendly, next.Friendly)
}

func TestApply_ExpectedDamage(t *testing.T) {
	ap := NewActionProcessor(testutil.NopLogger())
	state := testutil.NewState(5, 5, nil,
		[]core.CombatUnit{testutil.Footman(1, 0, 0)},
		[]core.CombatUnit{testutil.Archer(1, 2, 0)})
	state.ActingSide = core.Enemy

	next, results, err := ap.ApplyWithResults(state, core.ActionMap{1: core.NewAttack(1)})
	require.NoError(t, err)

	// archer: max(3-1,0)+1 = 3, 75% floored = 2
	assert.Equal(t, 98, next.Friendly[0].HP)
	assert.Equal(t, []AttackResult{{AttackerID: 1, TargetID: 1, Damage: 2}}, results)
	assert.Equal(t, 100, state.Friendly[0].HP)
}

func TestApply_DamageClampsAndOverkillIsAbsorbed(t *testing.T) {
	ap := NewActionProcessor(testutil.NopLogger())
	state := testutil.NewState(3, 3, nil,
		[]core.CombatUnit{testutil.Footman(1, 0, 1), testutil.Footman(2, 1, 0)},
		[]core.CombatUnit{testutil.WithHP(testutil.Archer(1, 1, 1), 3)})

	next, results, err := ap.ApplyWithResults(state, core.ActionMap{
		1: core.NewAttack(1),
		2: core.NewAttack(1),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, next.Enemy[0].HP)
	require.Len(t, results, 1, "second attack hits a corpse and does nothing")
	assert.Equal(t, AttackResult{AttackerID: 1, TargetID: 1, Damage: 3, Killed: true}, results[0])
}

func TestApply_UnitIDOrder(t *testing.T) {
	ap := NewActionProcessor(testutil.NopLogger())
	// Unit 1 steps east out of (1,0); unit 2 then steps east into it
	state := testutil.NewState(4, 1, nil,
		[]core.CombatUnit{testutil.Footman(1, 1, 0), testutil.Footman(2, 0, 0)},
		[]core.CombatUnit{testutil.Archer(1, 3, 0)})

	next, err := ap.Apply(state, core.ActionMap{2: core.NewMove(core.East), 1: core.NewMove(core.East)})
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{X: 2, Y: 0}, next.Unit(core.Friendly, 1).Pos)
	assert.Equal(t, core.Coordinate{X: 1, Y: 0}, next.Unit(core.Friendly, 2).Pos)
}

func TestApply_Errors(t *testing.T) {
	base := func() core.BoardState {
		return testutil.NewState(3, 3, []core.Coordinate{{X: 0, Y: 1}},
			[]core.CombatUnit{testutil.Footman(1, 0, 0), testutil.Footman(2, 2, 0), testutil.WithHP(testutil.Footman(3, 2, 2), 0)},
			[]core.CombatUnit{testutil.Archer(1, 1, 2), testutil.WithHP(testutil.Archer(2, 0, 2), 0)})
	}

	tests := []struct {
		name    string
		actions core.ActionMap
		err     error
	}{
		{"unknown acting unit", core.ActionMap{7: core.NewMove(core.East)}, core.ErrUnknownUnit},
		{"dead acting unit", core.ActionMap{3: core.NewMove(core.North)}, core.ErrDeadUnit},
		{"move off grid", core.ActionMap{1: core.NewMove(core.North)}, core.ErrInvalidCoordinates},
		{"move onto obstacle", core.ActionMap{1: core.NewMove(core.South)}, core.ErrCellBlocked},
		{"collision", core.ActionMap{1: core.NewMove(core.East), 2: core.NewMove(core.West)}, core.ErrCellOccupied},
		{"unknown target", core.ActionMap{1: core.NewAttack(5)}, core.ErrUnknownUnit},
		{"dead target", core.ActionMap{1: core.NewAttack(2)}, core.ErrDeadUnit},
		{"out of range", core.ActionMap{1: core.NewAttack(1)}, core.ErrOutOfRange},
		{"unknown action", core.ActionMap{1: {Kind: core.ActionKind(4)}}, core.ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ap := NewActionProcessor(testutil.NopLogger())
			state := base()

			_, err := ap.Apply(state, tt.actions)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			// The input is never half-applied
			assert.Equal(t, base(), state)
		})
	}
}

func TestApply_InvariantChecks(t *testing.T) {
	ap := NewActionProcessor(testutil.NopLogger(), WithInvariantChecks(true))
	state := testutil.FootmanVsArcher()

	_, err := ap.Apply(state, core.ActionMap{1: core.NewMove(core.South)})
	assert.NoError(t, err)

	// Corrupt the input so the result cannot validate
	state.Enemy[0].HP = 500
	_, err = ap.Apply(state, core.ActionMap{1: core.NewMove(core.South)})
	assert.ErrorIs(t, err, core.ErrInvalidState)
}

func TestRolledDamage(t *testing.T) {
	model := NewRolledDamage(testutil.NewTestRNG(42))
	attacker := testutil.Footman(1, 0, 0)
	defender := testutil.Archer(1, 1, 0)

	for i := 0; i < 200; i++ {
		dmg := model.Damage(attacker, defender)
		// max damage 6, roll in [50%, 100%)
		assert.GreaterOrEqual(t, dmg, 3)
		assert.LessOrEqual(t, dmg, 6)
	}

	ap := NewActionProcessor(testutil.NopLogger(), WithDamageModel(NewRolledDamage(testutil.NewTestRNG(1))))
	state := testutil.NewState(3, 1, nil, []core.CombatUnit{attacker}, []core.CombatUnit{defender})
	next, err := ap.Apply(state, core.ActionMap{1: core.NewAttack(1)})
	require.NoError(t, err)
	assert.Less(t, next.Enemy[0].HP, 50)
}

func TestExpectedDamageModel(t *testing.T) {
	assert.Equal(t, 3, ExpectedDamage{}.Damage(core.CombatUnit{BasicDamage: 6}, core.CombatUnit{Armor: 1}))
}
