package ga

import (
	"math/rand"

	"seqOpt/internal/perm"
	"seqOpt/internal/precedence"
)

// randomFeasible — случайная перестановка, исправленная матрицей.
func randomFeasible(m *precedence.Matrix, rng *rand.Rand) []int {
	p := perm.Random(m.N(), rng)
	m.RepairInPlace(p)
	return p
}

// crossoverPair — два потомка PPX с независимыми масками.
func crossoverPair(p1, p2 []int, m *precedence.Matrix, repair bool, rng *rand.Rand) ([]int, []int) {
	c1 := perm.PPX(p1, p2, rng)
	c2 := perm.PPX(p2, p1, rng)
	if repair {
		m.RepairInPlace(c1)
		m.RepairInPlace(c2)
	}
	return c1, c2
}

// mutateSwap — обмен двух различных позиций с последующим исправлением.
func mutateSwap(p []int, m *precedence.Matrix, rng *rand.Rand) {
	perm.Swap(p, rng)
	m.RepairInPlace(p)
}

// rouletteSelect отбирает size индексов с возвращением пропорционально fitness.
func rouletteSelect(fitness []float64, size int, rng *rand.Rand) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = perm.Roulette(fitness, rng)
	}
	return out
}
