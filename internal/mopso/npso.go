// Package mopso — рои частиц для задачи разборки: NPSO и гибрид с PPX-окрестностью.
package mopso

import (
	"fmt"
	"math"
	"math/rand"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/moo"
	"seqOpt/internal/opt"
	"seqOpt/internal/pso"
)

// NPSO — рой частиц, в котором личные и глобальный рекорды
// выбираются по расстоянию до утопии.
type NPSO struct {
	Cfg Config
	Rng *rand.Rand

	problem *disassembly.Problem
	archive *moo.Archive

	swarm     []pso.Particle
	pBestDist []float64

	gBestPos []float64
	best     moo.Member
	bestDist float64

	evaluations int
}

func NewNPSO(cfg Config, p *disassembly.Problem, rng *rand.Rand) (*NPSO, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if p == nil {
		return nil, fmt.Errorf("задача разборки не задана (nil)")
	}
	return &NPSO{
		Cfg:      cfg,
		Rng:      rng,
		problem:  p,
		archive:  moo.NewArchive(cfg.Particles),
		bestDist: math.Inf(1),
	}, nil
}

func (s *NPSO) Evaluations() int { return s.evaluations }

func (s *NPSO) Front() []moo.Member { return s.archive.Members() }

func (s *NPSO) Evolve() opt.ParetoSnapshot {
	s.advance()
	return s.snapshot()
}

// advance оценивает рой, обновляет рекорды и архив, затем сдвигает частицы.
// Возвращает оценённые последовательности в порядке частиц.
func (s *NPSO) advance() []moo.Member {
	if s.swarm == nil {
		s.swarm = pso.NewSwarm(s.Cfg.Particles, s.problem.Matrix.N(), s.Cfg.swarm(), s.Rng)
		s.pBestDist = make([]float64, s.Cfg.Particles)
		for i := range s.pBestDist {
			s.pBestDist[i] = math.Inf(1)
		}
	}

	utopia := s.problem.Utopia()
	members := make([]moo.Member, len(s.swarm))
	for i := range s.swarm {
		p := &s.swarm[i]
		m := s.problem.Member(p.Decode(s.problem.Matrix))
		s.evaluations++
		members[i] = m

		d := moo.Distance(m.Point, utopia)
		if d < s.pBestDist[i] {
			s.pBestDist[i] = d
			p.Remember()
		}
		if d < s.bestDist {
			s.bestDist = d
			s.best = m.Clone()
			s.gBestPos = append(s.gBestPos[:0], p.Pos...)
		}
	}
	s.archive.Merge(members)

	// Сдвиг возможен только после появления глобального рекорда
	if s.gBestPos != nil {
		cfg := s.Cfg.swarm()
		for i := range s.swarm {
			s.swarm[i].Move(s.gBestPos, cfg, s.Rng)
		}
	}
	return members
}

func (s *NPSO) snapshot() opt.ParetoSnapshot {
	return opt.ParetoSnapshot{
		Sequence: append([]int(nil), s.best.Sequence...),
		Score: disassembly.Score{
			Profit: s.best.Point.Profit,
			Carbon: s.best.Point.Carbon,
			Cut:    s.best.Cut,
		},
		Hypervolume: s.problem.Sampler.Set(s.archive.Points()),
	}
}
