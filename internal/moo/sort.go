package moo

import (
	"math"
	"sort"
)

// FastNonDominatedSort разбивает точки на фронты по рангу.
// Фронт 0 — взаимно недоминируемые точки; каждый следующий — недоминируемые после удаления предыдущих.
func FastNonDominatedSort(points []Point) [][]int {
	n := len(points)
	if n == 0 {
		return nil
	}
	dominatedBy := make([][]int, n) // S_p: кого доминирует p
	counts := make([]int, n)        // n_p: сколько доминирует p

	var fronts [][]int
	var first []int
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if p == q {
				continue
			}
			if Dominates(points[p], points[q]) {
				dominatedBy[p] = append(dominatedBy[p], q)
			} else if Dominates(points[q], points[p]) {
				counts[p]++
			}
		}
		if counts[p] == 0 {
			first = append(first, p)
		}
	}
	fronts = append(fronts, first)

	for i := 0; len(fronts[i]) > 0; i++ {
		var next []int
		for _, p := range fronts[i] {
			for _, q := range dominatedBy[p] {
				counts[q]--
				if counts[q] == 0 {
					next = append(next, q)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		fronts = append(fronts, next)
	}
	return fronts
}

// Ranks возвращает ранг каждой точки по результату сортировки.
func Ranks(fronts [][]int, n int) []int {
	rank := make([]int, n)
	for r, f := range fronts {
		for _, i := range f {
			rank[i] = r
		}
	}
	return rank
}

const crowdingEps = 1e-9

// CrowdingDistance считает расстояние скученности для членов фронта.
// Результат выровнен с front. Крайние точки получают +Inf.
func CrowdingDistance(front []int, points []Point) []float64 {
	k := len(front)
	dist := make([]float64, k)
	if k == 0 {
		return dist
	}
	if k <= 2 {
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		return dist
	}

	order := make([]int, k)
	objectives := []func(Point) float64{
		func(p Point) float64 { return p.Profit },
		func(p Point) float64 { return p.Carbon },
	}
	for _, obj := range objectives {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return obj(points[front[order[a]]]) < obj(points[front[order[b]]])
		})

		lo := obj(points[front[order[0]]])
		hi := obj(points[front[order[k-1]]])
		span := hi - lo
		if span == 0 {
			span = crowdingEps
		}

		dist[order[0]] = math.Inf(1)
		dist[order[k-1]] = math.Inf(1)
		for i := 1; i < k-1; i++ {
			gap := obj(points[front[order[i+1]]]) - obj(points[front[order[i-1]]])
			dist[order[i]] += gap / span
		}
	}
	return dist
}

// CrowdedLess — сравнение NSGA-II: меньший ранг, при равенстве — больший crowding.
func CrowdedLess(rankA, rankB int, crowdA, crowdB float64) bool {
	if rankA != rankB {
		return rankA < rankB
	}
	return crowdA > crowdB
}
