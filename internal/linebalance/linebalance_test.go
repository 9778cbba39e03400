package linebalance_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqOpt/internal/linebalance"
	"seqOpt/internal/perm"
	"seqOpt/internal/precedence"
)

func scenarioA(t *testing.T) *linebalance.Problem {
	t.Helper()
	inst, err := linebalance.NewInstance(8, 20,
		[]int{11, 17, 9, 5, 8, 12, 10, 3},
		[]precedence.Pair{{Pre: 1, Suc: 2}, {Pre: 2, Suc: 3}, {Pre: 2, Suc: 4}, {Pre: 3, Suc: 5}, {Pre: 3, Suc: 6}, {Pre: 4, Suc: 6}, {Pre: 5, Suc: 7}, {Pre: 6, Suc: 8}},
	)
	require.NoError(t, err)
	p, err := linebalance.NewProblem(inst)
	require.NoError(t, err)
	return p
}

func TestStationsScenarioA(t *testing.T) {
	p := scenarioA(t)
	seq := []int{1, 2, 3, 4, 5, 6, 7, 8}
	require.True(t, p.Matrix.Feasible(seq))

	// 11 | 17 | 9+5 | 8+12 | 10+3
	st, err := p.Evaluator.Stations(seq)
	require.NoError(t, err)
	assert.Equal(t, 5, st)
	assert.Equal(t, st, p.Evaluator.MustStations(seq))
	assert.Equal(t, 4, p.Evaluator.LowerBound())
}

func TestStationsBoundsOnFeasibleSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for trial := 0; trial < 50; trial++ {
		inst := linebalance.RandomInstance(5+rng.Intn(20), 25, 1, 25, 0.2, rng)
		p, err := linebalance.NewProblem(inst)
		require.NoError(t, err)

		seq := p.Matrix.Repair(perm.Random(inst.Ops, rng))
		st := p.Evaluator.MustStations(seq)
		assert.GreaterOrEqual(t, st, 1)
		assert.GreaterOrEqual(t, st, p.Evaluator.LowerBound())
	}
}

func TestStationsRejectsBadSequence(t *testing.T) {
	p := scenarioA(t)
	_, err := p.Evaluator.Stations([]int{1, 2, 3})
	assert.ErrorIs(t, err, precedence.ErrNotPermutation)
}

func TestInstanceValidate(t *testing.T) {
	tests := []struct {
		name string
		inst *linebalance.Instance
	}{
		{"nil", nil},
		{"no ops", &linebalance.Instance{Ops: 0, CycleTime: 1}},
		{"length mismatch", &linebalance.Instance{Ops: 2, Durations: []int{1}, CycleTime: 1}},
		{"negative duration", &linebalance.Instance{Ops: 1, Durations: []int{-1}, CycleTime: 1}},
		{"zero cycle", &linebalance.Instance{Ops: 1, Durations: []int{1}, CycleTime: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.inst.Validate())
		})
	}
}

func TestNewProblemRejectsCycle(t *testing.T) {
	inst := &linebalance.Instance{Ops: 2, Durations: []int{1, 1}, CycleTime: 5,
		Pairs: []precedence.Pair{{Pre: 1, Suc: 2}, {Pre: 2, Suc: 1}}}
	_, err := linebalance.NewProblem(inst)
	assert.ErrorIs(t, err, precedence.ErrCycle)
}
