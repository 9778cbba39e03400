package disassembly

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"seqOpt/internal/moo"
	"seqOpt/internal/precedence"
)

// Problem связывает набор данных, матрицу замыкания, оценщик и выборку гиперобъёма.
// Все поля только читаются, поэтому один Problem можно отдавать нескольким солверам сразу.
type Problem struct {
	Dataset   *Dataset
	Matrix    *precedence.Matrix
	Evaluator *Evaluator
	Sampler   *moo.Sampler
}

// NewProblem строит задачу; rng используется только для выборки гиперобъёма.
func NewProblem(ds *Dataset, rng *rand.Rand) (*Problem, error) {
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	eval, err := NewEvaluator(ds)
	if err != nil {
		return nil, err
	}
	m, err := precedence.Build(ds.N(), ds.Pairs)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", ds.Name, err)
	}
	return &Problem{
		Dataset:   ds,
		Matrix:    m,
		Evaluator: eval,
		Sampler:   moo.NewSampler(ds.HVSamples, ds.Utopia, ds.AntiUtopia, rng),
	}, nil
}

// NewDatasetProblem строит задачу с выборкой гиперобъёма от SamplerSeed набора.
// Сид солвера на выборку не влияет.
func NewDatasetProblem(ds *Dataset) (*Problem, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	return NewProblem(ds, rand.New(rand.NewSource(ds.SamplerSeed())))
}

// SamplerSeed — сид выборки гиперобъёма, зависит только от имени набора.
func (ds *Dataset) SamplerSeed() int64 {
	h := fnv.New64a()
	h.Write([]byte(ds.Name))
	return int64(h.Sum64() >> 1)
}

// Utopia — идеальная точка задачи.
func (p *Problem) Utopia() moo.Point { return p.Dataset.Utopia }

// Member оценивает последовательность и упаковывает её в moo.Member.
func (p *Problem) Member(seq []int) moo.Member {
	s := p.Evaluator.Evaluate(seq)
	return moo.Member{Sequence: append([]int(nil), seq...), Point: s.Point(), Cut: s.Cut}
}
