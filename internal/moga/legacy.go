package moga

import (
	"math/rand"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/moo"
	"seqOpt/internal/opt"
)

// Legacy — архивный вариант NSGA-II: поколение собирается из лучшего фронта
// предыдущего поколения и свежих случайных решений, затем перемешивается
// скрещиванием и мутацией. Родословная потомков не сохраняется.
type Legacy struct {
	engine
	started bool
	front   []moo.Member
}

func NewLegacy(cfg Config, p *disassembly.Problem, rng *rand.Rand) (*Legacy, error) {
	e, err := newEngine(cfg, p, rng)
	if err != nil {
		return nil, err
	}
	return &Legacy{engine: e}, nil
}

// population собирает очередное поколение: фронт (усечённый по crowding distance) + случайные.
func (s *Legacy) population() [][]int {
	if !s.started {
		s.started = true
		return s.randomPopulation(s.Cfg.Population)
	}
	kept := moo.Truncate(s.front, s.Cfg.Population)
	pop := make([][]int, 0, s.Cfg.Population)
	for _, m := range kept {
		pop = append(pop, clone(m.Sequence))
	}
	for len(pop) < s.Cfg.Population {
		pop = append(pop, s.randomFeasible())
	}
	return pop
}

func (s *Legacy) Evolve() opt.ParetoSnapshot {
	pop := s.mate(shuffled(s.population(), s.Rng), s.ppx)
	s.mutateSwap(pop)

	members := s.evaluate(pop)
	first := moo.FastNonDominatedSort(pointsOf(members))[0]
	s.front = s.front[:0]
	for _, i := range first {
		s.front = append(s.front, members[i])
	}
	s.observe(members)
	return s.snapshot()
}

// Archive — лучший фронт последнего поколения.
func (s *Legacy) Archive() []moo.Member {
	out := make([]moo.Member, len(s.front))
	for i, m := range s.front {
		out[i] = m.Clone()
	}
	return out
}
