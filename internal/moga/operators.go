package moga

import (
	"math/rand"

	"seqOpt/internal/moo"
	"seqOpt/internal/perm"
)

func (e *engine) randomFeasible() []int {
	p := perm.Random(e.problem.Matrix.N(), e.Rng)
	e.problem.Matrix.RepairInPlace(p)
	return p
}

func (e *engine) randomPopulation(size int) [][]int {
	pop := make([][]int, size)
	for i := range pop {
		pop[i] = e.randomFeasible()
	}
	return pop
}

// crossFunc строит двух потомков по паре родителей.
type crossFunc func(p1, p2 []int) ([]int, []int)

// mate скрещивает соседние пары; непарный последний родитель переходит без изменений.
func (e *engine) mate(parents [][]int, cross crossFunc) [][]int {
	out := make([][]int, 0, len(parents))
	for i := 0; i+1 < len(parents); i += 2 {
		p1, p2 := parents[i], parents[i+1]
		if e.Rng.Float64() < e.Cfg.CrossoverRate {
			c1, c2 := cross(p1, p2)
			out = append(out, c1, c2)
		} else {
			out = append(out, clone(p1), clone(p2))
		}
	}
	if len(parents)%2 == 1 {
		out = append(out, clone(parents[len(parents)-1]))
	}
	return out
}

func (e *engine) ppx(p1, p2 []int) ([]int, []int) {
	c1 := perm.PPX(p1, p2, e.Rng)
	c2 := perm.PPX(p2, p1, e.Rng)
	if e.Cfg.RepairAfterCrossover {
		e.problem.Matrix.RepairInPlace(c1)
		e.problem.Matrix.RepairInPlace(c2)
	}
	return c1, c2
}

// mutateSwap — обмен двух позиций с восстановлением допустимости.
func (e *engine) mutateSwap(pop [][]int) {
	for _, p := range pop {
		if e.Rng.Float64() < e.Cfg.MutationRate {
			perm.Swap(p, e.Rng)
			e.problem.Matrix.RepairInPlace(p)
		}
	}
}

func shuffled(pop [][]int, rng *rand.Rand) [][]int {
	out := make([][]int, len(pop))
	for i, j := range rng.Perm(len(pop)) {
		out[i] = pop[j]
	}
	return out
}

func sequences(members []moo.Member) [][]int {
	out := make([][]int, len(members))
	for i, m := range members {
		out[i] = m.Sequence
	}
	return out
}

func clone(p []int) []int { return append([]int(nil), p...) }
