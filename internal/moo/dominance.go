// Package moo — двухкритериальный слой: прибыль максимизируется, углеродный след минимизируется.
package moo

import (
	"math"
	"sort"
)

// Point — значения целевых функций кандидата.
type Point struct {
	Profit float64 `json:"profit"`
	Carbon float64 `json:"carbon"`
}

// Dominates: a не хуже b по обоим критериям и строго лучше хотя бы по одному.
func Dominates(a, b Point) bool {
	if a.Profit < b.Profit || a.Carbon > b.Carbon {
		return false
	}
	return a.Profit > b.Profit || a.Carbon < b.Carbon
}

// Distance — евклидово расстояние до опорной точки.
func Distance(p, ref Point) float64 {
	return math.Hypot(p.Profit-ref.Profit, p.Carbon-ref.Carbon)
}

// Nearest возвращает индекс точки, ближайшей к ref; -1 для пустого набора.
func Nearest(points []Point, ref Point) int {
	best := -1
	bestDist := math.Inf(1)
	for i, p := range points {
		if d := Distance(p, ref); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// NonDominated — наивный O(n²) фильтр: индексы точек, не доминируемых никем.
func NonDominated(points []Point) []int {
	var out []int
	for i := range points {
		dominated := false
		for j := range points {
			if i != j && Dominates(points[j], points[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, i)
		}
	}
	return out
}

// ParetoFront возвращает недоминируемые точки без повторов, упорядоченные по прибыли.
func ParetoFront(points []Point) []Point {
	idx := NonDominated(points)
	front := make([]Point, 0, len(idx))
	seen := make(map[Point]bool, len(idx))
	for _, i := range idx {
		if seen[points[i]] {
			continue
		}
		seen[points[i]] = true
		front = append(front, points[i])
	}
	sort.Slice(front, func(i, j int) bool {
		if front[i].Profit == front[j].Profit {
			return front[i].Carbon < front[j].Carbon
		}
		return front[i].Profit < front[j].Profit
	})
	return front
}
