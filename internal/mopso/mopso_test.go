package mopso

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
	"seqOpt/internal/perm"
)

func staplerProblem(t *testing.T) *disassembly.Problem {
	t.Helper()
	p, err := disassembly.NewProblem(disassembly.Stapler(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return p
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Particles = 15
	cfg.NeighborhoodStart = 3
	return cfg
}

func TestSwarmsKeepFeasibleNonDominatedArchive(t *testing.T) {
	p := staplerProblem(t)
	cases := map[opt.ParetoKind]func() (opt.ParetoStepper, error){
		opt.KindNPSO: func() (opt.ParetoStepper, error) {
			return NewNPSO(smallConfig(), p, rand.New(rand.NewSource(2)))
		},
		opt.KindPSOPPX: func() (opt.ParetoStepper, error) {
			return NewHybrid(smallConfig(), p, rand.New(rand.NewSource(2)))
		},
	}
	for kind, build := range cases {
		t.Run(string(kind), func(t *testing.T) {
			s, err := build()
			require.NoError(t, err)

			res, err := opt.RunPareto(context.Background(), kind, s, 12)
			require.NoError(t, err)
			assert.Equal(t, 12*15, res.Evaluations)

			for i := 1; i < len(res.History); i++ {
				assert.GreaterOrEqual(t, res.History[i], res.History[i-1])
			}

			require.NotEmpty(t, res.Front)
			assert.LessOrEqual(t, len(res.Front), 15)
			points := make([]moo.Point, len(res.Front))
			for i, m := range res.Front {
				require.True(t, p.Matrix.Feasible(m.Sequence))
				points[i] = m.Point
			}
			assert.Len(t, moo.NonDominated(points), len(points))

			require.True(t, p.Matrix.Feasible(res.Best.Sequence))
			assert.Equal(t, p.Evaluator.Evaluate(res.Best.Sequence), res.Best.Score)
		})
	}
}

func TestPersonalBestsOnlyImprove(t *testing.T) {
	p := staplerProblem(t)
	s, err := NewNPSO(smallConfig(), p, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	s.Evolve()
	prev := append([]float64(nil), s.pBestDist...)
	prevBest := s.bestDist
	for i := 0; i < 8; i++ {
		s.Evolve()
		for j, d := range s.pBestDist {
			assert.LessOrEqual(t, d, prev[j])
			assert.GreaterOrEqual(t, d, s.bestDist)
		}
		assert.LessOrEqual(t, s.bestDist, prevBest)
		prev = append(prev[:0], s.pBestDist...)
		prevBest = s.bestDist
	}
	assert.False(t, math.IsInf(s.bestDist, 1))
}

func TestHybridInjectsArchiveIntoTail(t *testing.T) {
	p := staplerProblem(t)
	cfg := smallConfig()
	s, err := NewHybrid(cfg, p, rand.New(rand.NewSource(6)))
	require.NoError(t, err)

	for i := 0; i < cfg.NeighborhoodStart+1; i++ {
		s.Evolve()
	}

	front := s.Front()
	require.NotEmpty(t, front)
	n := len(s.swarm)
	seq := make([]int, p.Matrix.N())
	idx := make([]int, p.Matrix.N())
	for k := 0; k < len(front) && k < n; k++ {
		perm.DecodeSPV(s.swarm[n-1-k].Pos, seq, idx)
		assert.Equal(t, front[k].Sequence, seq)
	}
	for i := range s.swarm {
		perm.DecodeSPV(s.swarm[i].Pos, seq, idx)
		assert.True(t, p.Matrix.Feasible(seq))
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.CrossoverRate = 2
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.NeighborhoodStart = -1
	assert.Error(t, cfg.Validate())

	assert.NoError(t, DefaultConfig().Validate())
}
