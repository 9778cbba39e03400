package solver_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/linebalance"
	"seqOpt/internal/opt"
	"seqOpt/internal/precedence"
	"seqOpt/internal/solver"
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

func smallParams() solver.Params {
	params := solver.DefaultParams()
	params.GA.Population = 10
	params.PSO.Particles = 10
	params.ACO.Ants = 10
	params.ACO.GreedyHeuristic = true
	params.TS.NeighborsPerIter = 10
	return params
}

func TestNewStationsBuildsEveryKind(t *testing.T) {
	p := scenarioA(t)
	for _, kind := range opt.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			s, err := solver.NewStations(kind, p, smallParams(), rand.New(rand.NewSource(1)))
			require.NoError(t, err)

			res, err := opt.Run(context.Background(), kind, s, 10)
			require.NoError(t, err)
			assert.Equal(t, kind, res.Algorithm)
			require.True(t, p.Matrix.Feasible(res.Sequence))
			assert.Equal(t, p.Evaluator.MustStations(res.Sequence), res.Stations)
			assert.GreaterOrEqual(t, res.Stations, p.Evaluator.LowerBound())
			assert.Positive(t, res.Evaluations)
		})
	}
}

func TestNewParetoBuildsEveryKind(t *testing.T) {
	p, err := disassembly.NewProblem(disassembly.Stapler(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	params := solver.DefaultParetoParams()
	params.GA.Population = 10
	params.PSO.Particles = 10
	params.PSO.NeighborhoodStart = 1

	for _, kind := range opt.ParetoKinds() {
		t.Run(string(kind), func(t *testing.T) {
			s, err := solver.NewPareto(kind, p, params, rand.New(rand.NewSource(2)))
			require.NoError(t, err)

			res, err := opt.RunPareto(context.Background(), kind, s, 4)
			require.NoError(t, err)
			assert.Len(t, res.History, 4)
			assert.NotEmpty(t, res.Front)
			assert.True(t, p.Matrix.Feasible(res.Best.Sequence))
		})
	}
}

func TestUnknownKind(t *testing.T) {
	p := scenarioA(t)
	_, err := solver.NewStations("tabu", p, solver.DefaultParams(), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, opt.ErrUnknownKind)

	_, err = solver.NewPareto("moead", nil, solver.DefaultParetoParams(), rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestInvalidConfigReturnsNilStepper(t *testing.T) {
	p := scenarioA(t)
	params := solver.DefaultParams()
	params.GA.Population = 0
	s, err := solver.NewStations(opt.KindGA, p, params, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
	assert.Nil(t, s)

	s, err = solver.NewStations(opt.KindSA, p, solver.DefaultParams(), nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestParseKind(t *testing.T) {
	k, err := opt.ParseKind(" ACO ")
	require.NoError(t, err)
	assert.Equal(t, opt.KindACO, k)

	pk, err := opt.ParseParetoKind("NSGA2_legacy")
	require.NoError(t, err)
	assert.Equal(t, opt.KindNSGA2Legacy, pk)

	_, err = opt.ParseKind("kg")
	assert.ErrorIs(t, err, opt.ErrUnknownKind)
}
