package moo

import "math/rand"

// Sampler — оценка гиперобъёма методом Монте-Карло.
// Выборка фиксируется при создании, поэтому оценки разных алгоритмов сравнимы
// при общем Sampler. После создания только читается.
type Sampler struct {
	utopia  Point
	anti    Point
	samples []Point
}

// NewSampler равномерно заполняет прямоугольник между anti (худшая точка) и utopia.
func NewSampler(m int, utopia, anti Point, rng *rand.Rand) *Sampler {
	s := &Sampler{utopia: utopia, anti: anti, samples: make([]Point, m)}
	for i := range s.samples {
		s.samples[i] = Point{
			Profit: anti.Profit + (utopia.Profit-anti.Profit)*rng.Float64(),
			Carbon: anti.Carbon + (utopia.Carbon-anti.Carbon)*rng.Float64(),
		}
	}
	return s
}

func (s *Sampler) Size() int         { return len(s.samples) }
func (s *Sampler) Utopia() Point     { return s.utopia }
func (s *Sampler) AntiUtopia() Point { return s.anti }

// Point — доля выборки, доминируемая точкой p.
func (s *Sampler) Point(p Point) float64 {
	return s.Set([]Point{p})
}

// Set — доля выборки, доминируемая хотя бы одной точкой набора.
// Для выборки доминирование строгое по обоим критериям.
func (s *Sampler) Set(ps []Point) float64 {
	if len(s.samples) == 0 || len(ps) == 0 {
		return 0
	}
	hit := 0
	for _, smp := range s.samples {
		for _, p := range ps {
			if p.Profit > smp.Profit && p.Carbon < smp.Carbon {
				hit++
				break
			}
		}
	}
	return float64(hit) / float64(len(s.samples))
}
