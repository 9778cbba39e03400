package moga

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/moo"
	"seqOpt/internal/opt"
	"seqOpt/internal/precedence"
)

func staplerProblem(t *testing.T) *disassembly.Problem {
	t.Helper()
	p, err := disassembly.NewProblem(disassembly.Stapler(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return p
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Population = 20
	return cfg
}

type constructor func(Config, *disassembly.Problem, *rand.Rand) (opt.ParetoStepper, error)

func constructors() map[opt.ParetoKind]constructor {
	return map[opt.ParetoKind]constructor{
		opt.KindKG: func(c Config, p *disassembly.Problem, r *rand.Rand) (opt.ParetoStepper, error) {
			return NewKG(c, p, r)
		},
		opt.KindNSGA2: func(c Config, p *disassembly.Problem, r *rand.Rand) (opt.ParetoStepper, error) {
			return NewNSGA2(c, p, r)
		},
		opt.KindNSGA2Legacy: func(c Config, p *disassembly.Problem, r *rand.Rand) (opt.ParetoStepper, error) {
			return NewLegacy(c, p, r)
		},
		opt.KindBlockGA: func(c Config, p *disassembly.Problem, r *rand.Rand) (opt.ParetoStepper, error) {
			return NewBlockGA(c, p, r)
		},
	}
}

func TestVariantsKeepFeasibleNonDominatedFront(t *testing.T) {
	p := staplerProblem(t)
	for kind, build := range constructors() {
		t.Run(string(kind), func(t *testing.T) {
			s, err := build(smallConfig(), p, rand.New(rand.NewSource(42)))
			require.NoError(t, err)

			res, err := opt.RunPareto(context.Background(), kind, s, 15)
			require.NoError(t, err)
			require.Len(t, res.History, 15)

			for i := 1; i < len(res.History); i++ {
				assert.GreaterOrEqual(t, res.History[i], res.History[i-1])
			}
			assert.GreaterOrEqual(t, res.History[14], 0.0)
			assert.LessOrEqual(t, res.History[14], 1.0)

			require.NotEmpty(t, res.Front)
			assert.LessOrEqual(t, len(res.Front), 20)
			points := make([]moo.Point, len(res.Front))
			for i, m := range res.Front {
				require.NoError(t, precedence.ValidatePermutation(m.Sequence, p.Matrix.N()))
				require.True(t, p.Matrix.Feasible(m.Sequence))
				points[i] = m.Point
			}
			assert.Len(t, moo.NonDominated(points), len(points))

			require.True(t, p.Matrix.Feasible(res.Best.Sequence))
			assert.Equal(t, p.Evaluator.Evaluate(res.Best.Sequence), res.Best.Score)
		})
	}
}

func TestBalancedBestOnlyImproves(t *testing.T) {
	p := staplerProblem(t)
	for kind, build := range constructors() {
		t.Run(string(kind), func(t *testing.T) {
			s, err := build(smallConfig(), p, rand.New(rand.NewSource(7)))
			require.NoError(t, err)

			prev := math.Inf(1)
			for i := 0; i < 10; i++ {
				snap := s.Evolve()
				d := moo.Distance(snap.Score.Point(), p.Utopia())
				assert.LessOrEqual(t, d, prev)
				prev = d
			}
		})
	}
}

func TestEvaluationCounts(t *testing.T) {
	p := staplerProblem(t)
	cfg := smallConfig()

	kg, err := NewKG(cfg, p, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	nsga, err := NewNSGA2(cfg, p, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	legacy, err := NewLegacy(cfg, p, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		kg.Evolve()
		nsga.Evolve()
		legacy.Evolve()
	}
	assert.Equal(t, 20+5*20, kg.Evaluations())
	assert.Equal(t, 20+5*20, nsga.Evaluations())
	assert.Equal(t, 5*20, legacy.Evaluations())
}

func TestOddPopulationCarriesLastParent(t *testing.T) {
	p := staplerProblem(t)
	cfg := smallConfig()
	cfg.Population = 7
	cfg.CrossoverRate = 0
	s, err := NewKG(cfg, p, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	parents := s.randomPopulation(7)
	kids := s.mate(parents, s.ppx)
	require.Len(t, kids, 7)
	for i := range parents {
		assert.Equal(t, parents[i], kids[i])
	}
	kids[6][0] = -1
	assert.NotEqual(t, -1, parents[6][0])
}

func TestSurvivors(t *testing.T) {
	points := []moo.Point{
		{Profit: 10, Carbon: 1},
		{Profit: 9, Carbon: 2},
		{Profit: 5, Carbon: 0.5},
		{Profit: 4, Carbon: 1.5},
		{Profit: 1, Carbon: 0.1},
		{Profit: 0.5, Carbon: 0.6},
	}

	assert.ElementsMatch(t, []int{0, 2, 4}, survivors(points, 3))
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, survivors(points, 6))

	got := survivors(points, 4)
	require.Len(t, got, 4)
	assert.ElementsMatch(t, []int{0, 2, 4}, got[:3])
	// Внутренняя точка второго фронта имеет конечный crowding и отбрасывается первой
	assert.Contains(t, []int{1, 5}, got[3])
}

func TestLegacyArchiveIsFirstFront(t *testing.T) {
	p := staplerProblem(t)
	s, err := NewLegacy(smallConfig(), p, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		s.Evolve()
		arch := s.Archive()
		require.NotEmpty(t, arch)
		points := make([]moo.Point, len(arch))
		for j, m := range arch {
			points[j] = m.Point
			assert.True(t, p.Matrix.Feasible(m.Sequence))
		}
		assert.Len(t, moo.NonDominated(points), len(points))
	}
	assert.Len(t, s.population(), 20)
}

func TestBlockCrossoverAndGreedyInsert(t *testing.T) {
	p := staplerProblem(t)
	s, err := NewBlockGA(smallConfig(), p, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	assert.Equal(t, max(2, int(float64(p.Matrix.N())*0.4)), s.blockSize)

	for i := 0; i < 50; i++ {
		p1, p2 := s.randomFeasible(), s.randomFeasible()

		child := s.blockCrossover(p1, p2)
		require.NoError(t, precedence.ValidatePermutation(child, p.Matrix.N()))
		require.True(t, p.Matrix.Feasible(child))

		before := p.Evaluator.Evaluate(p1).Profit
		mutated := s.greedyInsert(p1)
		require.NoError(t, precedence.ValidatePermutation(mutated, p.Matrix.N()))
		require.True(t, p.Matrix.Feasible(mutated))
		assert.GreaterOrEqual(t, p.Evaluator.Evaluate(mutated).Profit, before)
	}
}

func TestConfigValidate(t *testing.T) {
	p := staplerProblem(t)
	bad := []func(*Config){
		func(c *Config) { c.Population = 1 },
		func(c *Config) { c.CrossoverRate = 1.5 },
		func(c *Config) { c.MutationRate = -0.1 },
		func(c *Config) { c.BlockSizeRatio = 0 },
	}
	for _, mod := range bad {
		cfg := DefaultConfig()
		mod(&cfg)
		_, err := NewNSGA2(cfg, p, rand.New(rand.NewSource(1)))
		assert.Error(t, err)
	}
	_, err := NewKG(DefaultConfig(), p, nil)
	assert.Error(t, err)
}
