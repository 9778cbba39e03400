// Package solver собирает стратегии по имени из закрытого набора.
package solver

import (
	"fmt"
	"math/rand"

	"seqOpt/internal/aco"
	"seqOpt/internal/disassembly"
	"seqOpt/internal/ga"
	"seqOpt/internal/linebalance"
	"seqOpt/internal/moga"
	"seqOpt/internal/mopso"
	"seqOpt/internal/opt"
	"seqOpt/internal/pso"
	"seqOpt/internal/sa"
	"seqOpt/internal/ts"
)

// Params — гиперпараметры однокритериальных стратегий; фабрика берёт только свою часть.
type Params struct {
	GA  ga.Config
	PSO pso.Config
	ACO aco.Config
	SA  sa.Config
	TS  ts.Config
}

func DefaultParams() Params {
	return Params{
		GA:  ga.DefaultConfig(),
		PSO: pso.DefaultConfig(),
		ACO: aco.DefaultConfig(),
		SA:  sa.DefaultConfig(),
		TS:  ts.DefaultConfig(),
	}
}

// ParetoParams — гиперпараметры многокритериальных стратегий.
type ParetoParams struct {
	GA  moga.Config
	PSO mopso.Config
}

func DefaultParetoParams() ParetoParams {
	return ParetoParams{
		GA:  moga.DefaultConfig(),
		PSO: mopso.DefaultConfig(),
	}
}

// NewStations создаёт стратегию минимизации числа станций.
func NewStations(kind opt.Kind, p *linebalance.Problem, params Params, rng *rand.Rand) (opt.Stepper, error) {
	if p == nil {
		return nil, fmt.Errorf("задача балансировки не задана (nil)")
	}
	switch kind {
	case opt.KindGA:
		return stepper(ga.New(params.GA, p.Matrix, p.Evaluator, rng))
	case opt.KindPSO:
		return stepper(pso.New(params.PSO, p.Matrix, p.Evaluator, rng))
	case opt.KindACO:
		s, err := aco.New(params.ACO, p.Matrix, p.Evaluator, rng)
		if err != nil {
			return nil, err
		}
		if params.ACO.GreedyHeuristic {
			if err := s.SetHeuristic(durationHeuristic(p.Instance)); err != nil {
				return nil, err
			}
		}
		return s, nil
	case opt.KindSA:
		return stepper(sa.New(params.SA, p.Matrix, p.Evaluator, rng))
	case opt.KindTS:
		return stepper(ts.New(params.TS, p.Matrix, p.Evaluator, rng))
	}
	return nil, fmt.Errorf("%w: %q", opt.ErrUnknownKind, kind)
}

// NewPareto создаёт многокритериальную стратегию для задачи разборки.
func NewPareto(kind opt.ParetoKind, p *disassembly.Problem, params ParetoParams, rng *rand.Rand) (opt.ParetoStepper, error) {
	if p == nil {
		return nil, fmt.Errorf("задача разборки не задана (nil)")
	}
	switch kind {
	case opt.KindKG:
		return paretoStepper(moga.NewKG(params.GA, p, rng))
	case opt.KindNSGA2:
		return paretoStepper(moga.NewNSGA2(params.GA, p, rng))
	case opt.KindNSGA2Legacy:
		return paretoStepper(moga.NewLegacy(params.GA, p, rng))
	case opt.KindBlockGA:
		return paretoStepper(moga.NewBlockGA(params.GA, p, rng))
	case opt.KindNPSO:
		return paretoStepper(mopso.NewNPSO(params.PSO, p, rng))
	case opt.KindPSOPPX:
		return paretoStepper(mopso.NewHybrid(params.PSO, p, rng))
	}
	return nil, fmt.Errorf("%w: %q", opt.ErrUnknownKind, kind)
}

// durationHeuristic — η(j) = d_j / C.
func durationHeuristic(inst *linebalance.Instance) []float64 {
	eta := make([]float64, inst.Ops)
	for op := 1; op <= inst.Ops; op++ {
		eta[op-1] = float64(inst.Duration(op)) / float64(inst.CycleTime)
	}
	return eta
}

// stepper и paretoStepper не дают ненулевому интерфейсу скрыть nil-указатель при ошибке.
func stepper[T opt.Stepper](s T, err error) (opt.Stepper, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func paretoStepper[T opt.ParetoStepper](s T, err error) (opt.ParetoStepper, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
