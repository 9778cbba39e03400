package sa

import (
	"fmt"
	"math"
	"math/rand"

	"seqOpt/internal/opt"
	"seqOpt/internal/perm"
	"seqOpt/internal/precedence"
)

// StationScorer — оценщик числа станций.
type StationScorer interface {
	MustStations(seq []int) int
}

// Solver - структура реализации алгоритма имитации отжига.
// Цикл ведёт вызывающий: Evolve до тех пор, пока Done() == false.
type Solver struct {
	Cfg Config
	Rng *rand.Rand

	matrix *precedence.Matrix
	eval   StationScorer

	// Текущее и кандидатное решения
	curr     []int
	cand     []int
	currCost int

	best     []int
	bestCost int

	temp        float64
	evaluations int
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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
	return &Solver{Cfg: cfg, Rng: rng, matrix: m, eval: eval, temp: cfg.InitialTemp}, nil
}

func (s *Solver) Evaluations() int { return s.evaluations }

// Temperature — текущая температура.
func (s *Solver) Temperature() float64 { return s.temp }

// Done — температура опустилась до порога остановки.
func (s *Solver) Done() bool { return s.temp <= s.Cfg.StoppingTemp }

func (s *Solver) init() {
	n := s.matrix.N()
	s.curr = perm.Random(n, s.Rng)
	s.matrix.RepairInPlace(s.curr)
	s.cand = make([]int, n)
	s.currCost = s.eval.MustStations(s.curr)
	s.evaluations++
	s.bestCost = s.currCost
	s.best = append([]int(nil), s.curr...)
}

// Evolve — один шаг: сосед, критерий Метрополиса, охлаждение.
func (s *Solver) Evolve() opt.Snapshot {
	if s.curr == nil {
		s.init()
	}

	copy(s.cand, s.curr)
	switch s.Cfg.Neighborhood {
	case NeighborhoodInsert:
		// Окрестность на основе вставки элемента в другую позицию
		perm.RandomInsert(s.cand, s.Rng)
	default:
		// Окрестность на основе обмена двух элементов
		perm.Swap(s.cand, s.Rng)
	}
	s.matrix.RepairInPlace(s.cand)

	candCost := s.eval.MustStations(s.cand)
	s.evaluations++

	delta := candCost - s.currCost
	accept := false
	if delta < 0 {
		// Улучшающее решение принимаем всегда
		accept = true
	} else if s.Rng.Float64() < math.Exp(-float64(delta)/s.temp) {
		// Критерий Метрополиса:
		// допускает принятие ухудшающих решений
		accept = true
	}

	if accept {
		// Обмен ролей текущего и кандидатного решений
		s.curr, s.cand = s.cand, s.curr
		s.currCost = candCost

		// Обновление глобально лучшего решения
		if s.currCost < s.bestCost {
			s.bestCost = s.currCost
			copy(s.best, s.curr)
		}
	}

	// Охлаждение температуры
	s.temp *= s.Cfg.CoolingRate

	return opt.Snapshot{Sequence: append([]int(nil), s.best...), Stations: s.bestCost}
}
