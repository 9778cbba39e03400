package pso

import (
	"math/rand"

	"seqOpt/internal/perm"
	"seqOpt/internal/precedence"
)

// Particle — частица роя в непрерывном пространстве ключей.
type Particle struct {
	Pos []float64
	Vel []float64

	// BestPos — лучшая позиция частицы за всё время
	BestPos []float64
	HasBest bool

	// Вспомогательные буферы
	seq []int
	idx []int
}

// NewSwarm создаёт рой со случайными позициями и скоростями.
func NewSwarm(size, n int, cfg Config, rng *rand.Rand) []Particle {
	ps := make([]Particle, size)
	for i := range ps {
		ps[i] = Particle{
			Pos:     make([]float64, n),
			Vel:     make([]float64, n),
			BestPos: make([]float64, n),
			seq:     make([]int, n),
			idx:     make([]int, n),
		}
		for d := 0; d < n; d++ {
			ps[i].Pos[d] = cfg.InitPosMin + rng.Float64()*(cfg.InitPosMax-cfg.InitPosMin)
			ps[i].Vel[d] = (rng.Float64()*2 - 1) * cfg.InitVel
		}
	}
	return ps
}

// Decode — SPV-декодирование позиции с исправлением по матрице.
// Возвращаемый срез принадлежит частице и перезаписывается при следующем вызове.
func (p *Particle) Decode(m *precedence.Matrix) []int {
	perm.DecodeSPV(p.Pos, p.seq, p.idx)
	m.RepairInPlace(p.seq)
	return p.seq
}

// Remember запоминает текущую позицию как личный рекорд.
func (p *Particle) Remember() {
	copy(p.BestPos, p.Pos)
	p.HasBest = true
}

// Move — v ← w·v + c1·r1·(pbest − x) + c2·r2·(gbest − x); x ← x + v.
// r1, r2 берутся заново для каждой координаты.
func (p *Particle) Move(gBest []float64, cfg Config, rng *rand.Rand) {
	for d := range p.Pos {
		r1 := rng.Float64()
		r2 := rng.Float64()

		v := cfg.W*p.Vel[d] +
			cfg.C1*r1*(p.BestPos[d]-p.Pos[d]) +
			cfg.C2*r2*(gBest[d]-p.Pos[d])

		// Ограничение скорости
		if cfg.VMax > 0 {
			if v > cfg.VMax {
				v = cfg.VMax
			} else if v < -cfg.VMax {
				v = -cfg.VMax
			}
		}
		p.Vel[d] = v
		p.Pos[d] += v
	}
}
