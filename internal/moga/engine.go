// Package moga — генетические стратегии для задачи разборки
// с критериями «прибыль» и «углеродный след».
package moga

import (
	"fmt"
	"math"
	"math/rand"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/moo"
	"seqOpt/internal/opt"
)

// engine — общее состояние всех вариантов: архив недоминируемых решений,
// сбалансированный лучший кандидат и счётчик оценок.
type engine struct {
	Cfg Config
	Rng *rand.Rand

	problem *disassembly.Problem
	archive *moo.Archive

	best     moo.Member
	bestDist float64

	evaluations int
}

func newEngine(cfg Config, p *disassembly.Problem, rng *rand.Rand) (engine, error) {
	if err := cfg.Validate(); err != nil {
		return engine{}, err
	}
	if rng == nil {
		return engine{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if p == nil {
		return engine{}, fmt.Errorf("задача разборки не задана (nil)")
	}
	return engine{
		Cfg:      cfg,
		Rng:      rng,
		problem:  p,
		archive:  moo.NewArchive(cfg.Population),
		bestDist: math.Inf(1),
	}, nil
}

func (e *engine) Evaluations() int { return e.evaluations }

// Front — текущий архив недоминируемых решений.
func (e *engine) Front() []moo.Member { return e.archive.Members() }

func (e *engine) evaluate(pop [][]int) []moo.Member {
	out := make([]moo.Member, len(pop))
	for i, seq := range pop {
		out[i] = e.problem.Member(seq)
	}
	e.evaluations += len(pop)
	return out
}

// observe добавляет кандидатов в архив и обновляет лучшего,
// только если новый строго ближе к утопии.
func (e *engine) observe(members []moo.Member) {
	e.archive.Merge(members)
	utopia := e.problem.Utopia()
	for _, m := range members {
		if d := moo.Distance(m.Point, utopia); d < e.bestDist {
			e.bestDist = d
			e.best = m.Clone()
		}
	}
}

func (e *engine) snapshot() opt.ParetoSnapshot {
	return opt.ParetoSnapshot{
		Sequence: append([]int(nil), e.best.Sequence...),
		Score: disassembly.Score{
			Profit: e.best.Point.Profit,
			Carbon: e.best.Point.Carbon,
			Cut:    e.best.Cut,
		},
		Hypervolume: e.problem.Sampler.Set(e.archive.Points()),
	}
}

var (
	_ opt.ParetoStepper = (*KG)(nil)
	_ opt.ParetoStepper = (*NSGA2)(nil)
	_ opt.ParetoStepper = (*Legacy)(nil)
	_ opt.ParetoStepper = (*BlockGA)(nil)
)
