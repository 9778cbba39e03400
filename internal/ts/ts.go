package ts

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

// Solver - структура реализации поиска с запретами.
type Solver struct {
	Cfg Config
	Rng *rand.Rand

	matrix *precedence.Matrix
	eval   StationScorer

	curr     []int
	currCost int
	cand     []int
	move     []int // лучший сосед текущей итерации
	fallback []int // лучший сосед без учёта табу

	best     []int
	bestCost int

	tabu        *tabuList
	iter        int
	evaluations int
}

// New возвращает новый TS-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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
	if m.N() < 2 {
		return nil, fmt.Errorf("поиску с запретами нужно не менее 2 операций (получено %d)", m.N())
	}
	return &Solver{Cfg: cfg, Rng: rng, matrix: m, eval: eval}, nil
}

func (s *Solver) Evaluations() int { return s.evaluations }

func (s *Solver) init() {
	n := s.matrix.N()
	s.curr = perm.Random(n, s.Rng)
	s.matrix.RepairInPlace(s.curr)
	s.currCost = s.eval.MustStations(s.curr)
	s.evaluations++

	s.cand = make([]int, n)
	s.move = make([]int, n)
	s.fallback = make([]int, n)
	s.best = append([]int(nil), s.curr...)
	s.bestCost = s.currCost

	// Ёмкость выбирается с запасом относительно длины табу
	s.tabu = newTabuList(max(32, (s.Cfg.TabuTenure+s.Cfg.TabuTenureRand)*4))
}

// Evolve — одна итерация: выборка соседей, выбор лучшего нетабуированного хода.
func (s *Solver) Evolve() opt.Snapshot {
	if s.curr == nil {
		s.init()
	}
	n := len(s.curr)

	moveCost, fallbackCost := math.MaxInt, math.MaxInt
	var moveTo, fallbackTo, moveOp, fallbackOp int
	moveFrom, fallbackFrom := -1, -1

	// Итерация по случайно сгенерированным соседям
	for k := 0; k < s.Cfg.NeighborsPerIter; k++ {
		from := s.Rng.Intn(n)
		to := s.Rng.Intn(n - 1)
		if to >= from {
			to++
		}

		op := s.curr[from]
		key := tabuKey(op, from, to)

		// Формирование соседнего решения с восстановлением допустимости
		copy(s.cand, s.curr)
		switch s.Cfg.Neighborhood {
		case NeighborhoodSwap:
			s.cand[from], s.cand[to] = s.cand[to], s.cand[from]
		default:
			perm.Insert(s.cand, from, to)
		}
		s.matrix.RepairInPlace(s.cand)

		cost := s.eval.MustStations(s.cand)
		s.evaluations++

		if cost < fallbackCost {
			fallbackCost = cost
			fallbackFrom, fallbackTo, fallbackOp = from, to, op
			copy(s.fallback, s.cand)
		}

		// Табуированный ход пропускается,
		// если не выполняется критерий аспирации
		if s.tabu.IsTabu(key, s.iter) && cost >= s.bestCost {
			continue
		}
		if cost < moveCost {
			moveCost = cost
			moveFrom, moveTo, moveOp = from, to, op
			copy(s.move, s.cand)
		}
	}

	// Все ходы табуированы — берём лучший из них
	if moveFrom < 0 {
		moveCost = fallbackCost
		moveFrom, moveTo, moveOp = fallbackFrom, fallbackTo, fallbackOp
		s.move, s.fallback = s.fallback, s.move
	}

	s.curr, s.move = s.move, s.curr
	s.currCost = moveCost

	// Добавление обратного хода в табу-список
	tenure := s.Cfg.TabuTenure
	if s.Cfg.TabuTenureRand > 0 {
		tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
	}
	s.tabu.Add(tabuKey(moveOp, moveTo, moveFrom), s.iter+tenure)
	s.iter++

	// Обновление глобально лучшего решения
	if s.currCost < s.bestCost {
		s.bestCost = s.currCost
		copy(s.best, s.curr)
	}

	return opt.Snapshot{Sequence: append([]int(nil), s.best...), Stations: s.bestCost}
}
