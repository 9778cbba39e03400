package bench

import (
	"context"

	"golang.org/x/sync/errgroup"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/linebalance"
	"seqOpt/internal/opt"
	"seqOpt/internal/solver"
)

// Compare запускает несколько многокритериальных стратегий параллельно на одной задаче.
// Задача разделяется только на чтение, у каждой стратегии свой генератор (seed+i).
// Результаты выровнены с kinds.
func Compare(ctx context.Context, p *disassembly.Problem, kinds []opt.ParetoKind, params solver.ParetoParams, iterations int, seed int64) ([]opt.ParetoResult, error) {
	out := make([]opt.ParetoResult, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		s, err := solver.NewPareto(kind, p, params, randForSeed(seed+int64(i)))
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			res, err := opt.RunPareto(gctx, kind, s, iterations)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CompareStations — то же для однокритериальных стратегий.
func CompareStations(ctx context.Context, p *linebalance.Problem, kinds []opt.Kind, params solver.Params, iterations int, seed int64) ([]opt.Result, error) {
	out := make([]opt.Result, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		s, err := solver.NewStations(kind, p, params, randForSeed(seed+int64(i)))
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			res, err := opt.Run(gctx, kind, s, iterations)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
