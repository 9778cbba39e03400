package pso_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqOpt/internal/linebalance"
	"seqOpt/internal/precedence"
	"seqOpt/internal/pso"
)

func TestEvolveKeepsFeasibleMonotoneBest(t *testing.T) {
	inst := linebalance.RandomInstance(15, 18, 2, 12, 0.2, rand.New(rand.NewSource(1)))
	p, err := linebalance.NewProblem(inst)
	require.NoError(t, err)

	cfg := pso.DefaultConfig()
	cfg.Particles = 30
	s, err := pso.New(cfg, p.Matrix, p.Evaluator, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	prev := 1 << 30
	for it := 0; it < 30; it++ {
		snap := s.Evolve()
		require.True(t, p.Matrix.Feasible(snap.Sequence))
		assert.Equal(t, p.Evaluator.MustStations(snap.Sequence), snap.Stations)
		assert.LessOrEqual(t, snap.Stations, prev)
		prev = snap.Stations
	}
	assert.Equal(t, 30*30, s.Evaluations())
}

func TestParticleDecodeRepairs(t *testing.T) {
	m := precedence.MustBuild(4, []precedence.Pair{{Pre: 4, Suc: 1}})
	cfg := pso.DefaultConfig()
	sw := pso.NewSwarm(1, 4, cfg, rand.New(rand.NewSource(3)))
	sw[0].Pos = []float64{-5, 1, 2, 3}

	seq := sw[0].Decode(m)
	assert.True(t, m.Feasible(seq))
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, seq)
}

func TestMoveUsesBests(t *testing.T) {
	cfg := pso.Config{Particles: 1, W: 0, C1: 0, C2: 1, InitPosMin: 0, InitPosMax: 1}
	sw := pso.NewSwarm(1, 3, cfg, rand.New(rand.NewSource(4)))
	p := &sw[0]
	p.Remember()
	before := append([]float64(nil), p.Pos...)

	// gbest совпадает с позицией: при W=0 и C1=0 частица стоит на месте
	p.Move(before, cfg, rand.New(rand.NewSource(5)))
	assert.Equal(t, before, p.Pos)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, pso.DefaultConfig().Validate())
	cfg := pso.DefaultConfig()
	cfg.InitPosMin = 10
	assert.Error(t, cfg.Validate())
	cfg = pso.DefaultConfig()
	cfg.Particles = 0
	assert.Error(t, cfg.Validate())
}
