package ga

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

// Solver — генетический алгоритм минимизации числа станций.
type Solver struct {
	Cfg Config
	Rng *rand.Rand

	matrix *precedence.Matrix
	eval   StationScorer

	population [][]int
	scores     []int

	best        []int
	bestScore   int
	evaluations int
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Population возвращает копию текущей популяции.
func (s *Solver) Population() [][]int {
	out := make([][]int, len(s.population))
	for i, p := range s.population {
		out[i] = append([]int(nil), p...)
	}
	return out
}

func (s *Solver) init() {
	s.population = make([][]int, s.Cfg.Population)
	s.scores = make([]int, s.Cfg.Population)
	for i := range s.population {
		s.population[i] = randomFeasible(s.matrix, s.Rng)
		s.scores[i] = s.score(s.population[i])
	}
}

func (s *Solver) score(p []int) int {
	st := s.eval.MustStations(p)
	s.evaluations++
	if s.best == nil || st < s.bestScore {
		s.bestScore = st
		s.best = append(s.best[:0], p...)
	}
	return st
}

// Evolve — одно поколение: кроссовер, мутация, оценка, рулеточный отбор.
func (s *Solver) Evolve() opt.Snapshot {
	if s.population == nil {
		s.init()
	}
	size := len(s.population)

	// Элита текущего поколения
	elite := s.eliteIndices()
	eliteSeqs := make([][]int, len(elite))
	eliteScores := make([]int, len(elite))
	for i, idx := range elite {
		eliteSeqs[i] = append([]int(nil), s.population[idx]...)
		eliteScores[i] = s.scores[idx]
	}

	// Кроссовер по парам; последняя особь без пары переносится как есть
	next := make([][]int, 0, size)
	for i := 0; i+1 < size; i += 2 {
		p1, p2 := s.population[i], s.population[i+1]
		if s.Rng.Float64() < s.Cfg.CrossoverRate {
			c1, c2 := crossoverPair(p1, p2, s.matrix, s.Cfg.RepairAfterCrossover, s.Rng)
			next = append(next, c1, c2)
		} else {
			next = append(next, append([]int(nil), p1...), append([]int(nil), p2...))
		}
	}
	carried := -1
	if size%2 == 1 {
		carried = size - 1
		next = append(next, append([]int(nil), s.population[size-1]...))
	}

	// Мутация
	for i := range next {
		if i == carried {
			continue
		}
		if s.Rng.Float64() < s.Cfg.MutationRate {
			mutateSwap(next[i], s.matrix, s.Rng)
		}
	}

	// Оценка
	scores := make([]int, size)
	fitness := make([]float64, size)
	for i, p := range next {
		scores[i] = s.score(p)
		fitness[i] = 1.0 / float64(scores[i])
	}

	// Рулеточный отбор с возвращением
	picked := rouletteSelect(fitness, size, s.Rng)
	pop := make([][]int, size)
	popScores := make([]int, size)
	for i, idx := range picked {
		pop[i] = append([]int(nil), next[idx]...)
		popScores[i] = scores[idx]
	}
	for i := range eliteSeqs {
		pop[i] = eliteSeqs[i]
		popScores[i] = eliteScores[i]
	}
	s.population, s.scores = pop, popScores

	return opt.Snapshot{Sequence: append([]int(nil), s.best...), Stations: s.bestScore}
}

// eliteIndices — индексы Cfg.Elite лучших особей.
func (s *Solver) eliteIndices() []int {
	if s.Cfg.Elite == 0 {
		return nil
	}
	idx := make([]int, len(s.scores))
	for i := range idx {
		idx[i] = i
	}
	// частичная сортировка выбором: Elite мало
	for e := 0; e < s.Cfg.Elite; e++ {
		minIdx := e
		for j := e + 1; j < len(idx); j++ {
			if s.scores[idx[j]] < s.scores[idx[minIdx]] {
				minIdx = j
			}
		}
		idx[e], idx[minIdx] = idx[minIdx], idx[e]
	}
	return idx[:s.Cfg.Elite]
}
