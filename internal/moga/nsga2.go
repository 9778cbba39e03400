package moga

import (
	"math/rand"
	"sort"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/moo"
	"seqOpt/internal/opt"
)

// NSGA2 — родители и потомки объединяются, следующее поколение
// набирается по фронтам недоминирования и crowding distance.
type NSGA2 struct {
	engine
	population []moo.Member
}

func NewNSGA2(cfg Config, p *disassembly.Problem, rng *rand.Rand) (*NSGA2, error) {
	e, err := newEngine(cfg, p, rng)
	if err != nil {
		return nil, err
	}
	return &NSGA2{engine: e}, nil
}

func (s *NSGA2) Evolve() opt.ParetoSnapshot {
	if s.population == nil {
		s.population = s.evaluate(s.randomPopulation(s.Cfg.Population))
		s.observe(s.population)
	}

	points := pointsOf(s.population)
	fronts := moo.FastNonDominatedSort(points)
	rank := moo.Ranks(fronts, len(points))
	crowd := make([]float64, len(points))
	for _, f := range fronts {
		for i, d := range moo.CrowdingDistance(f, points) {
			crowd[f[i]] = d
		}
	}

	// Бинарный турнир по crowded-comparison
	parents := make([][]int, len(s.population))
	for i := range parents {
		a := s.Rng.Intn(len(s.population))
		b := s.Rng.Intn(len(s.population))
		winner := b
		if moo.CrowdedLess(rank[a], rank[b], crowd[a], crowd[b]) {
			winner = a
		}
		parents[i] = s.population[winner].Sequence
	}

	offspring := s.mate(parents, s.ppx)
	s.mutateSwap(offspring)
	children := s.evaluate(offspring)
	s.observe(children)

	union := make([]moo.Member, 0, len(s.population)+len(children))
	union = append(union, s.population...)
	union = append(union, children...)

	next := make([]moo.Member, 0, s.Cfg.Population)
	for _, idx := range survivors(pointsOf(union), s.Cfg.Population) {
		next = append(next, union[idx])
	}
	s.population = next
	return s.snapshot()
}

// survivors выбирает n индексов: фронты целиком, пока помещаются,
// затем остаток переполняющего фронта по убыванию crowding distance.
func survivors(points []moo.Point, n int) []int {
	out := make([]int, 0, n)
	for _, front := range moo.FastNonDominatedSort(points) {
		if len(out)+len(front) <= n {
			out = append(out, front...)
			continue
		}
		crowd := moo.CrowdingDistance(front, points)
		order := make([]int, len(front))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return crowd[order[a]] > crowd[order[b]]
		})
		for _, i := range order[:n-len(out)] {
			out = append(out, front[i])
		}
		break
	}
	return out
}

func pointsOf(members []moo.Member) []moo.Point {
	out := make([]moo.Point, len(members))
	for i, m := range members {
		out[i] = m.Point
	}
	return out
}
