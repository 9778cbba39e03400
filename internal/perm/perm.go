// Package perm содержит операторы над перестановками операций 1..N,
// общие для всех стратегий поиска.
package perm

import (
	"math/rand"
	"sort"
)

// Identity заполняет p значениями 1, 2, ..., n.
func Identity(p []int) {
	for i := range p {
		p[i] = i + 1
	}
}

// Shuffle выполняет случайную перестановку элементов (Фишер–Йетс).
func Shuffle(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// Random возвращает случайную перестановку 1..n.
func Random(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	Identity(p)
	Shuffle(p, rng)
	return p
}

// Swap меняет местами элементы двух различных случайных позиций.
func Swap(p []int, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	i := rng.Intn(len(p))
	j := rng.Intn(len(p) - 1)
	if j >= i {
		j++
	}
	p[i], p[j] = p[j], p[i]
}

// Insert переносит элемент из позиции from в позицию to со сдвигом остальных.
func Insert(p []int, from, to int) {
	if from == to {
		return
	}
	val := p[from]
	if from < to {
		copy(p[from:to], p[from+1:to+1])
		p[to] = val
		return
	}
	copy(p[to+1:from+1], p[to:from])
	p[to] = val
}

// RandomInsert — Insert для двух различных случайных позиций.
func RandomInsert(p []int, rng *rand.Rand) {
	n := len(p)
	if n < 2 {
		return
	}
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	Insert(p, i, j)
}

// PPX — precedence preserving crossover.
// Маска из {1, 2} длины n: на каждом шаге берётся первый ещё не взятый ген
// выбранного родителя, он же удаляется из пула другого.
// Родители должны быть перестановками одного множества, тогда пул не исчерпывается раньше времени.
func PPX(p1, p2 []int, rng *rand.Rand) []int {
	n := len(p1)
	child := make([]int, 0, n)
	used := make(map[int]bool, n)
	i1, i2 := 0, 0
	for len(child) < n {
		src, idx := p1, &i1
		if rng.Intn(2) == 1 {
			src, idx = p2, &i2
		}
		for *idx < n && used[src[*idx]] {
			*idx++
		}
		gene := src[*idx]
		used[gene] = true
		child = append(child, gene)
		*idx++
	}
	return child
}

// DecodeSPV — правило smallest position value: индексы операций сортируются
// по возрастанию ключей, при равенстве — по индексу.
func DecodeSPV(keys []float64, out []int, idx []int) {
	n := len(keys)
	for i := 0; i < n; i++ {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]] < keys[idx[j]]
	})
	for i := 0; i < n; i++ {
		out[i] = idx[i] + 1
	}
}

// EncodePositions записывает в keys позицию каждой операции: keys[op-1] = pos.
// DecodeSPV(EncodePositions(seq)) == seq.
func EncodePositions(seq []int, keys []float64) {
	for pos, op := range seq {
		keys[op-1] = float64(pos)
	}
}

// Roulette выбирает индекс пропорционально неотрицательным весам.
// При нулевой сумме выбор равномерный.
func Roulette(weights []float64, rng *rand.Rand) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}
