package mopso

import (
	"math/rand"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/opt"
	"seqOpt/internal/perm"
)

// Hybrid — NPSO, к которому после NeighborhoodStart поколений добавляется
// PPX-окрестность: декодированные частицы скрещиваются попарно,
// хвост роя замещается архивом, и результат кодируется обратно в позиции.
type Hybrid struct {
	NPSO
	gen int
}

func NewHybrid(cfg Config, p *disassembly.Problem, rng *rand.Rand) (*Hybrid, error) {
	base, err := NewNPSO(cfg, p, rng)
	if err != nil {
		return nil, err
	}
	return &Hybrid{NPSO: *base}, nil
}

func (s *Hybrid) Evolve() opt.ParetoSnapshot {
	s.advance()
	s.gen++
	if s.gen > s.Cfg.NeighborhoodStart {
		s.neighborhood()
	}
	return s.snapshot()
}

// neighborhood перемещает частицы в позиции потомков; скорости сохраняются.
func (s *Hybrid) neighborhood() {
	m := s.problem.Matrix
	n := len(s.swarm)

	current := make([][]int, n)
	for i := range s.swarm {
		current[i] = append([]int(nil), s.swarm[i].Decode(m)...)
	}

	order := s.Rng.Perm(n)
	next := make([][]int, 0, n)
	for i := 0; i+1 < n; i += 2 {
		p1, p2 := current[order[i]], current[order[i+1]]
		if s.Rng.Float64() < s.Cfg.CrossoverRate {
			c1 := perm.PPX(p1, p2, s.Rng)
			c2 := perm.PPX(p2, p1, s.Rng)
			m.RepairInPlace(c1)
			m.RepairInPlace(c2)
			next = append(next, c1, c2)
		} else {
			next = append(next, p1, p2)
		}
	}
	if n%2 == 1 {
		next = append(next, current[order[n-1]])
	}

	// Архив замещает последние слоты
	front := s.archive.Members()
	for k := 0; k < len(front) && k < n; k++ {
		next[n-1-k] = front[k].Sequence
	}

	for i := range s.swarm {
		perm.EncodePositions(next[i], s.swarm[i].Pos)
	}
}

var (
	_ opt.ParetoStepper = (*NPSO)(nil)
	_ opt.ParetoStepper = (*Hybrid)(nil)
)
