package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/linebalance"
	"seqOpt/internal/opt"
	"seqOpt/internal/solver"
)

// Case — случайный экземпляр балансировки, фиксированный сидом.
type Case struct {
	Ops          int
	CycleTime    int
	MinTime      int
	MaxTime      int
	Density      float64
	InstanceSeed int64
}

func (c Case) Name() string { return fmt.Sprintf("%dx%d", c.Ops, c.CycleTime) }

// Problem генерирует экземпляр; при одинаковом сиде он всегда один и тот же.
func (c Case) Problem() (*linebalance.Problem, error) {
	inst := linebalance.RandomInstance(c.Ops, c.CycleTime, c.MinTime, c.MaxTime, c.Density, randForSeed(c.InstanceSeed))
	return linebalance.NewProblem(inst)
}

type Record struct {
	Algo       string
	Case       string
	Ops        int
	Runs       int
	Iterations int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	StationsBest int
	StationsMean float64
	StationsStd  float64

	LowerBound      int
	EvaluationsMean float64
}

type ParetoRecord struct {
	Algo       string
	Dataset    string
	Runs       int
	Iterations int

	TimeMeanMs float64
	TimeStdMs  float64

	HVBest float64
	HVMean float64
	HVStd  float64

	ProfitMean    float64
	CarbonMean    float64
	FrontSizeMean float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	Iterations    int
	PerRunTimeout time.Duration // 0 = no timeout

	Logger *slog.Logger
}

func (r Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// runCtx ограничивает запуск таймаутом, если он задан.
func (r Runner) runCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.PerRunTimeout > 0 {
		return context.WithTimeout(ctx, r.PerRunTimeout)
	}
	return ctx, func() {}
}

// RunCase запускает стратегию Runs раз с сидами BaseSeed+i на одном экземпляре.
// Прерывание по таймауту не считается ошибкой: учитывается лучшее найденное к этому моменту.
func (r Runner) RunCase(ctx context.Context, c Case, kind opt.Kind, params solver.Params) (Record, error) {
	p, err := c.Problem()
	if err != nil {
		return Record{}, fmt.Errorf("case %s: %w", c.Name(), err)
	}

	stations := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	evals := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		s, err := solver.NewStations(kind, p, params, randForSeed(runSeed))
		if err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}

		runCtx, cancel := r.runCtx(ctx)
		res, err := opt.Run(runCtx, kind, s, r.Iterations)
		cancel()

		if err != nil && ctx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled: %w", i, err)
		}
		if err != nil && runCtx.Err() == nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if len(res.Sequence) != p.Matrix.N() {
			return Record{}, fmt.Errorf("run %d: invalid sequence length %d (want %d)", i, len(res.Sequence), p.Matrix.N())
		}
		if !p.Matrix.Feasible(res.Sequence) {
			return Record{}, fmt.Errorf("run %d: infeasible sequence %v", i, res.Sequence)
		}

		r.logger().Debug("run finished",
			slog.String("algo", string(kind)),
			slog.String("case", c.Name()),
			slog.Int("run", i),
			slog.Int("stations", res.Stations),
			slog.Duration("duration", res.Duration),
		)

		stations = append(stations, res.Stations)
		timesMs = append(timesMs, float64(res.Duration.Microseconds())/1000.0)
		evals = append(evals, float64(res.Evaluations))
	}

	stStats := CalcIntStats(stations)
	tStats := CalcFloatStats(timesMs)

	rec := Record{
		Algo:       string(kind),
		Case:       c.Name(),
		Ops:        c.Ops,
		Runs:       r.Runs,
		Iterations: r.Iterations,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		StationsBest: stStats.Best,
		StationsMean: stStats.Mean,
		StationsStd:  stStats.Std,

		LowerBound:      p.Evaluator.LowerBound(),
		EvaluationsMean: CalcFloatStats(evals).Mean,
	}
	r.logger().Info("case finished",
		slog.String("algo", rec.Algo),
		slog.String("case", rec.Case),
		slog.Int("stations_best", rec.StationsBest),
		slog.Float64("stations_mean", rec.StationsMean),
	)
	return rec, nil
}

// RunParetoCase — то же для многокритериальной стратегии на наборе данных.
// Выборка гиперобъёма строится один раз, чтобы запуски были сравнимы.
func (r Runner) RunParetoCase(ctx context.Context, ds *disassembly.Dataset, kind opt.ParetoKind, params solver.ParetoParams) (ParetoRecord, error) {
	p, err := disassembly.NewDatasetProblem(ds)
	if err != nil {
		return ParetoRecord{}, err
	}

	hvs := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	profits := make([]float64, 0, r.Runs)
	carbons := make([]float64, 0, r.Runs)
	fronts := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		s, err := solver.NewPareto(kind, p, params, randForSeed(runSeed))
		if err != nil {
			return ParetoRecord{}, fmt.Errorf("run %d: %w", i, err)
		}

		runCtx, cancel := r.runCtx(ctx)
		res, err := opt.RunPareto(runCtx, kind, s, r.Iterations)
		cancel()

		if err != nil && ctx.Err() != nil {
			return ParetoRecord{}, fmt.Errorf("run %d: cancelled: %w", i, err)
		}
		if err != nil && runCtx.Err() == nil {
			return ParetoRecord{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if len(res.History) == 0 {
			return ParetoRecord{}, fmt.Errorf("run %d: no iterations completed", i)
		}

		r.logger().Debug("run finished",
			slog.String("algo", string(kind)),
			slog.String("dataset", ds.Name),
			slog.Int("run", i),
			slog.Float64("hypervolume", res.History[len(res.History)-1]),
			slog.Duration("duration", res.Duration),
		)

		hvs = append(hvs, res.History[len(res.History)-1])
		timesMs = append(timesMs, float64(res.Duration.Microseconds())/1000.0)
		profits = append(profits, res.Best.Score.Profit)
		carbons = append(carbons, res.Best.Score.Carbon)
		fronts = append(fronts, float64(len(res.Front)))
	}

	hv := CalcFloatStats(hvs)
	tStats := CalcFloatStats(timesMs)

	rec := ParetoRecord{
		Algo:       string(kind),
		Dataset:    ds.Name,
		Runs:       r.Runs,
		Iterations: r.Iterations,

		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		HVBest: hv.Max,
		HVMean: hv.Mean,
		HVStd:  hv.Std,

		ProfitMean:    CalcFloatStats(profits).Mean,
		CarbonMean:    CalcFloatStats(carbons).Mean,
		FrontSizeMean: CalcFloatStats(fronts).Mean,
	}
	r.logger().Info("case finished",
		slog.String("algo", rec.Algo),
		slog.String("dataset", rec.Dataset),
		slog.Float64("hv_mean", rec.HVMean),
	)
	return rec, nil
}
