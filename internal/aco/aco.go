package aco

import (
	"fmt"
	"math"
	"math/rand"

	"seqOpt/internal/opt"
	"seqOpt/internal/precedence"
)

// StationScorer — оценщик числа станций.
type StationScorer interface {
	MustStations(seq []int) int
}

// Solver - структура реализации муравьиного алгоритма.
// Муравей выбирает только операции, все предшественники которых уже выполнены,
// поэтому исправление последовательностей не требуется.
type Solver struct {
	Cfg Config
	Rng *rand.Rand

	matrix *precedence.Matrix
	eval   StationScorer

	tau []float64 // tau[from*n+to], from/to 0-базовые
	eta []float64

	// Вспомогательные буферы
	seq       []int
	succ      [][]int // прямые последователи, 0-базовые
	pending   []int   // число невыполненных прямых предшественников
	available []int
	weights   []float64

	bestSeq     []int
	bestCost    int
	evaluations int
}

// New возвращает новый ACO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

	n := m.N()
	s := &Solver{
		Cfg:       cfg,
		Rng:       rng,
		matrix:    m,
		eval:      eval,
		tau:       make([]float64, n*n),
		eta:       make([]float64, n),
		seq:       make([]int, n),
		pending:   make([]int, n),
		available: make([]int, 0, n),
		weights:   make([]float64, n),
	}
	for i := range s.tau {
		s.tau[i] = cfg.Tau0
	}
	for i := range s.eta {
		s.eta[i] = 1
	}
	s.succ = make([][]int, n)
	for j := 1; j <= n; j++ {
		for _, pre := range m.Direct(j) {
			s.succ[pre-1] = append(s.succ[pre-1], j-1)
		}
	}
	return s, nil
}

// SetHeuristic задаёт эвристику η для операций 1..N.
func (s *Solver) SetHeuristic(eta []float64) error {
	if len(eta) != len(s.eta) {
		return fmt.Errorf("длина эвристики должна быть %d (получено %d)", len(s.eta), len(eta))
	}
	for i, v := range eta {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("eta[%d] должно быть >= 0 (получено %f)", i, v)
		}
	}
	copy(s.eta, eta)
	return nil
}

func (s *Solver) Evaluations() int { return s.evaluations }

// Evolve — все муравьи строят решения, затем испарение и
// отложение феромона только по глобально лучшему пути.
func (s *Solver) Evolve() opt.Snapshot {
	for a := 0; a < s.Cfg.Ants; a++ {
		seq := s.construct()
		cost := s.eval.MustStations(seq)
		s.evaluations++

		// Глобальное лучшее за всё время
		if s.bestSeq == nil || cost < s.bestCost {
			s.bestCost = cost
			s.bestSeq = append(s.bestSeq[:0], seq...)
		}
	}

	// Испарение феромона
	ev := 1.0 - s.Cfg.Rho
	for i := range s.tau {
		s.tau[i] *= ev
		if s.tau[i] < 1e-12 {
			s.tau[i] = 1e-12
		}
	}

	// Элитное отложение
	s.deposit(s.bestSeq, s.Cfg.Q/float64(s.bestCost))

	return opt.Snapshot{Sequence: append([]int(nil), s.bestSeq...), Stations: s.bestCost}
}

func (s *Solver) deposit(seq []int, delta float64) {
	n := s.matrix.N()
	for i := 0; i+1 < len(seq); i++ {
		s.tau[(seq[i]-1)*n+(seq[i+1]-1)] += delta
	}
}

// construct строит одну допустимую последовательность.
// Возвращаемый срез — внутренний буфер.
func (s *Solver) construct() []int {
	n := s.matrix.N()
	done := make([]bool, n)
	for j := 1; j <= n; j++ {
		s.pending[j-1] = len(s.matrix.Direct(j))
	}

	prev := -1
	for pos := 0; pos < n; pos++ {
		s.available = s.available[:0]
		for j := 0; j < n; j++ {
			if !done[j] && s.pending[j] == 0 {
				s.available = append(s.available, j)
			}
		}

		if len(s.available) == 0 {
			// Для ациклического графа недостижимо: дописываем остаток и чиним
			for j := 0; j < n; j++ {
				if !done[j] {
					s.seq[pos] = j + 1
					pos++
				}
			}
			s.matrix.RepairInPlace(s.seq)
			return s.seq
		}

		job := s.pick(prev)
		s.seq[pos] = job + 1
		done[job] = true
		prev = job

		for _, j := range s.succ[job] {
			s.pending[j]--
		}
	}
	return s.seq
}

// pick выбирает следующую операцию рулеткой по tau^alpha * eta^beta.
// Первый выбор в последовательности использует tau = 1.
func (s *Solver) pick(prev int) int {
	n := s.matrix.N()

	// Ограничение списка кандидатов
	k := len(s.available)
	if s.Cfg.CandidateK > 0 && s.Cfg.CandidateK < k {
		for t := 0; t < s.Cfg.CandidateK; t++ {
			r := t + s.Rng.Intn(k-t)
			s.available[t], s.available[r] = s.available[r], s.available[t]
		}
		k = s.Cfg.CandidateK
	}

	// Подсчёт весов вероятностей выбора
	sumW := 0.0
	for i := 0; i < k; i++ {
		j := s.available[i]
		t := 1.0
		if prev >= 0 {
			t = s.tau[prev*n+j]
		}
		w := fastPow(t, s.Cfg.Alpha) * fastPow(s.eta[j], s.Cfg.Beta)
		s.weights[i] = w
		sumW += w
	}

	// Стохастический выбор следующей работы
	if sumW <= 0 {
		return s.available[s.Rng.Intn(k)]
	}
	r := s.Rng.Float64() * sumW
	acc := 0.0
	for i := 0; i < k; i++ {
		acc += s.weights[i]
		if r < acc {
			return s.available[i]
		}
	}
	return s.available[k-1]
}

// fastPow — оптимизация для частых степеней.
// Таким образом избегаем вызова math.Pow в простых случаях.
func fastPow(x, p float64) float64 {
	if p == 0 {
		return 1.0
	}
	if p == 1 {
		return x
	}
	if p == 2 {
		return x * x
	}
	return math.Pow(x, p)
}
