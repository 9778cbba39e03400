package moga

import (
	"math/rand"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/moo"
	"seqOpt/internal/opt"
	"seqOpt/internal/perm"
)

const distanceEps = 1e-9

// KG — генетический алгоритм со скаляризацией: приспособленность обратна
// расстоянию до утопии, скрещивание PPX.
type KG struct {
	engine
	population []moo.Member
}

func NewKG(cfg Config, p *disassembly.Problem, rng *rand.Rand) (*KG, error) {
	e, err := newEngine(cfg, p, rng)
	if err != nil {
		return nil, err
	}
	return &KG{engine: e}, nil
}

// Evolve — отбор рулеткой, PPX для перемешанных пар, мутация обменом, оценка.
func (s *KG) Evolve() opt.ParetoSnapshot {
	if s.population == nil {
		s.population = s.evaluate(s.randomPopulation(s.Cfg.Population))
		s.observe(s.population)
	}

	utopia := s.problem.Utopia()
	weights := make([]float64, len(s.population))
	for i, m := range s.population {
		weights[i] = 1 / (moo.Distance(m.Point, utopia) + distanceEps)
	}
	parents := make([][]int, len(s.population))
	for i := range parents {
		parents[i] = s.population[perm.Roulette(weights, s.Rng)].Sequence
	}

	offspring := s.mate(shuffled(parents, s.Rng), s.ppx)
	s.mutateSwap(offspring)

	s.population = s.evaluate(offspring)
	s.observe(s.population)
	return s.snapshot()
}
