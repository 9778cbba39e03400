package moga

import (
	"math"
	"math/rand"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/opt"
)

// BlockGA — блочный генетический алгоритм: лучший по прибыли блок одного родителя
// переносится в другого, мутация жадно переставляет одну операцию.
type BlockGA struct {
	engine
	population [][]int
	blockSize  int
}

func NewBlockGA(cfg Config, p *disassembly.Problem, rng *rand.Rand) (*BlockGA, error) {
	e, err := newEngine(cfg, p, rng)
	if err != nil {
		return nil, err
	}
	bs := int(float64(p.Matrix.N()) * cfg.BlockSizeRatio)
	if bs < 2 {
		bs = 2
	}
	if bs > p.Matrix.N() {
		bs = p.Matrix.N()
	}
	return &BlockGA{engine: e, blockSize: bs}, nil
}

func (s *BlockGA) Evolve() opt.ParetoSnapshot {
	if s.population == nil {
		s.population = s.randomPopulation(s.Cfg.Population)
	}

	next := s.mate(shuffled(s.population, s.Rng), func(p1, p2 []int) ([]int, []int) {
		return s.blockCrossover(p1, p2), s.blockCrossover(p2, p1)
	})
	for i := range next {
		if s.Rng.Float64() < s.Cfg.MutationRate {
			next[i] = s.greedyInsert(next[i])
		}
	}

	s.population = next
	s.observe(s.evaluate(next))
	return s.snapshot()
}

// blockCrossover находит в p1 окно длины blockSize с максимальной прибылью
// (блок считается полностью разобранным), удаляет его операции из p2
// и вставляет блок на ту же позицию.
func (s *BlockGA) blockCrossover(p1, p2 []int) []int {
	n := len(p1)
	bs := s.blockSize

	bestStart := 0
	bestProfit := math.Inf(-1)
	for i := 0; i+bs <= n; i++ {
		profit, _ := s.problem.Evaluator.MetricsAt(p1[i:i+bs], bs)
		if profit > bestProfit {
			bestProfit = profit
			bestStart = i
		}
	}
	block := p1[bestStart : bestStart+bs]

	inBlock := make(map[int]bool, bs)
	for _, op := range block {
		inBlock[op] = true
	}
	rest := make([]int, 0, n-bs)
	for _, op := range p2 {
		if !inBlock[op] {
			rest = append(rest, op)
		}
	}

	pos := min(bestStart, len(rest))
	child := make([]int, 0, n)
	child = append(child, rest[:pos]...)
	child = append(child, block...)
	child = append(child, rest[pos:]...)
	s.problem.Matrix.RepairInPlace(child)
	return child
}

// greedyInsert вынимает случайную операцию и пробует все допустимые позиции
// между её последним предшественником и первым последователем,
// оставляя вариант с наибольшей прибылью.
func (s *BlockGA) greedyInsert(seq []int) []int {
	n := len(seq)
	at := s.Rng.Intn(n)
	op := seq[at]

	partial := make([]int, 0, n-1)
	partial = append(partial, seq[:at]...)
	partial = append(partial, seq[at+1:]...)

	m := s.problem.Matrix
	lo, hi := 0, len(partial)
	for i, other := range partial {
		if m.Precedes(other, op) {
			lo = max(lo, i+1)
		}
		if m.Precedes(op, other) {
			hi = min(hi, i)
		}
	}
	if lo > hi {
		hi = lo
	}

	var best []int
	bestProfit := math.Inf(-1)
	cand := make([]int, n)
	for pos := lo; pos <= hi; pos++ {
		copy(cand, partial[:pos])
		cand[pos] = op
		copy(cand[pos+1:], partial[pos:])

		score := s.problem.Evaluator.Evaluate(cand)
		s.evaluations++
		if score.Profit > bestProfit {
			bestProfit = score.Profit
			best = clone(cand)
		}
	}
	return best
}

// Population возвращает копию текущего поколения.
func (s *BlockGA) Population() [][]int {
	out := make([][]int, len(s.population))
	for i, p := range s.population {
		out[i] = clone(p)
	}
	return out
}
