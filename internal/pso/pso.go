package pso

import (
	"fmt"
	"math/rand"

	"seqOpt/internal/opt"
	"seqOpt/internal/precedence"
)

// StationScorer — оценщик числа станций.
type StationScorer interface {
	MustStations(seq []int) int
}

// Solver - структура реализации алгоритма роя частиц
type Solver struct {
	Cfg Config
	Rng *rand.Rand

	matrix *precedence.Matrix
	eval   StationScorer

	swarm     []Particle
	bestCosts []int

	gBestPos    []float64
	gBestSeq    []int
	gBestCost   int
	evaluations int
}

// New возвращает новый PSO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, m *precedence.Matrix, eval StationScorer, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if m == nil || eval == nil {
		return nil, fmt.Errorf("матрица предшествования и оценщик обязательны")
	}
	return &Solver{Cfg: cfg, Rng: rng, matrix: m, eval: eval}, nil
}

func (s *Solver) Evaluations() int { return s.evaluations }

// Evolve — оценка всех частиц (по декодированной и исправленной последовательности),
// обновление рекордов, затем сдвиг роя.
func (s *Solver) Evolve() opt.Snapshot {
	n := s.matrix.N()
	if s.swarm == nil {
		s.swarm = NewSwarm(s.Cfg.Particles, n, s.Cfg, s.Rng)
		s.bestCosts = make([]int, s.Cfg.Particles)
	}

	for i := range s.swarm {
		p := &s.swarm[i]
		seq := p.Decode(s.matrix)
		cost := s.eval.MustStations(seq)
		s.evaluations++

		// Обновление личного лучшего решения
		if !p.HasBest || cost < s.bestCosts[i] {
			s.bestCosts[i] = cost
			p.Remember()
		}

		// Обновление глобального лучшего решения
		if s.gBestPos == nil || cost < s.gBestCost {
			s.gBestCost = cost
			s.gBestPos = append(s.gBestPos[:0], p.Pos...)
			s.gBestSeq = append(s.gBestSeq[:0], seq...)
		}
	}

	// Сдвиг возможен только после появления глобального рекорда
	if s.gBestPos != nil {
		for i := range s.swarm {
			s.swarm[i].Move(s.gBestPos, s.Cfg, s.Rng)
		}
	}

	return opt.Snapshot{Sequence: append([]int(nil), s.gBestSeq...), Stations: s.gBestCost}
}
