package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"seqOpt/internal/bench"
	"seqOpt/internal/disassembly"
	"seqOpt/internal/opt"
	"seqOpt/internal/solver"
)

var (
	bOut          string
	bXLSX         string
	bCases        string
	bAlgos        string
	bPareto       string
	bDataset      string
	bRuns         int
	bIterations   int
	bBaseSeed     int64
	bInstanceSeed int64
	bPerRunTO     time.Duration
	bMinTime      int
	bMaxTime      int
	bDensity      float64
	bParams       *paramFlags
	bParetoParams *solver.ParetoParams
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Серия запусков стратегий с отчётом",
	Long: `Каждая стратегия запускается runs раз с разными сидами на каждом случайном экземпляре;
многокритериальные — на наборе данных разборки. Итоги пишутся в CSV и, при --xlsx, в книгу.
usage:
  seqopt bench --cases 20x30,50x40 --algos ga,sa --runs 10
  seqopt bench --algos "" --pareto nsga2,pso_ppx --xlsx artifacts/results.xlsx`,
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.StringVar(&bOut, "out", "artifacts/results.csv", "путь к выходному CSV-файлу")
	f.StringVar(&bXLSX, "xlsx", "", "путь к книге с отчётом (пусто — не писать)")
	f.StringVar(&bCases, "cases", "20x30,50x40,100x50", "конфигурации: количество операций X время такта (через запятую)")
	f.StringVar(&bAlgos, "algos", "ga,pso,aco,sa,ts", "однокритериальные алгоритмы (через запятую)")
	f.StringVar(&bPareto, "pareto", "", "многокритериальные алгоритмы (через запятую; пусто — не запускать)")
	f.StringVar(&bDataset, "dataset", "stapler", "набор данных для многокритериальных алгоритмов")
	f.IntVar(&bRuns, "runs", 30, "количество запусков каждого алгоритма (с разными сидами)")
	f.IntVar(&bIterations, "iterations", 200, "количество итераций одного запуска")
	f.Int64Var(&bBaseSeed, "seed", 1000, "базовый сид для запусков алгоритмов")
	f.Int64Var(&bInstanceSeed, "instance_seed", 777, "базовый сид для генерации экземпляров (фиксирован для конфигурации)")
	f.DurationVar(&bPerRunTO, "per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
	f.IntVar(&bMinTime, "min_time", 1, "минимальная длительность операции")
	f.IntVar(&bMaxTime, "max_time", 20, "максимальная длительность операции (не больше такта)")
	f.Float64Var(&bDensity, "density", 0.2, "плотность ограничений предшествования")
	bParams = bindParams(benchCmd)
	bParetoParams = bindParetoParams(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cases, err := parseCases(bCases, bInstanceSeed)
	if err != nil {
		return fmt.Errorf("конфликт: %w", err)
	}

	var kinds []opt.Kind
	for _, a := range splitCSV(bAlgos) {
		kind, err := opt.ParseKind(a)
		if err != nil {
			return fmt.Errorf("алгоритм не предоставлен в программе %q; доступные: %s", a, joinKinds(opt.Kinds()))
		}
		kinds = append(kinds, kind)
	}
	var paretoKinds []opt.ParetoKind
	for _, a := range splitCSV(bPareto) {
		kind, err := opt.ParseParetoKind(a)
		if err != nil {
			return fmt.Errorf("алгоритм не предоставлен в программе %q; доступные: %s", a, joinKinds(opt.ParetoKinds()))
		}
		paretoKinds = append(paretoKinds, kind)
	}

	params := bParams.Params()
	runner := bench.Runner{
		Runs:          bRuns,
		BaseSeed:      bBaseSeed,
		Iterations:    bIterations,
		PerRunTimeout: bPerRunTO,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, kind := range kinds {
			fmt.Printf("Запущен алгоритм %s; %d операций, такт %d (общее кол-во запусков=%d)...\n",
				strings.ToUpper(string(kind)), c.Ops, c.CycleTime, runner.Runs)

			rec, err := runner.RunCase(ctx, c, kind, params)
			if err != nil {
				return err
			}
			records = append(records, rec)

			fmt.Printf("  Станций: лучшее=%d среднее=%.2f стандартное отклонение=%.2f (нижняя граница %d) | Время: среднее=%.2fms отклонение=%.2fms\n",
				rec.StationsBest, rec.StationsMean, rec.StationsStd, rec.LowerBound,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	var pareto []bench.ParetoRecord
	if len(paretoKinds) > 0 {
		ds, err := disassembly.DefaultCatalog().Dataset(bDataset)
		if err != nil {
			return err
		}
		for _, kind := range paretoKinds {
			fmt.Printf("Запущен алгоритм %s; набор %s (общее кол-во запусков=%d)...\n",
				strings.ToUpper(string(kind)), ds.Name, runner.Runs)

			rec, err := runner.RunParetoCase(ctx, ds, kind, *bParetoParams)
			if err != nil {
				return err
			}
			pareto = append(pareto, rec)

			fmt.Printf("  Гиперобъём: лучший=%.4f средний=%.4f отклонение=%.4f | фронт в среднем %.1f | Время: среднее=%.2fms\n",
				rec.HVBest, rec.HVMean, rec.HVStd, rec.FrontSizeMean, rec.TimeMeanMs)
		}
	}

	if len(records) > 0 {
		if err := bench.WriteCSV(bOut, records); err != nil {
			return fmt.Errorf("ошибка при записи в CSV: %w", err)
		}
		fmt.Println("Сохранено:", bOut)
	}
	if len(pareto) > 0 {
		out := strings.TrimSuffix(bOut, ".csv") + "_pareto.csv"
		if err := bench.WriteParetoCSV(out, pareto); err != nil {
			return fmt.Errorf("ошибка при записи в CSV: %w", err)
		}
		fmt.Println("Сохранено:", out)
	}
	if bXLSX != "" {
		if err := bench.WriteXLSX(bXLSX, records, pareto); err != nil {
			return fmt.Errorf("ошибка при записи книги: %w", err)
		}
		fmt.Println("Сохранено:", bXLSX)
	}
	return nil
}

// parseCases разбирает список "операцииxтакт".
func parseCases(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		oc := strings.Split(p, "x")
		if len(oc) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 50x40", p)
		}
		ops, err := atoiStrict(oc[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества операций: %w", p, err)
		}
		cycle, err := atoiStrict(oc[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга времени такта: %w", p, err)
		}
		if ops <= 1 || cycle <= 0 {
			return nil, fmt.Errorf("пара %q: нужно не меньше 2 операций и такт > 0", p)
		}

		maxTime := min(bMaxTime, cycle)
		if bMinTime < 0 || bMinTime > maxTime {
			return nil, fmt.Errorf("пара %q: min_time %d больше допустимой длительности %d", p, bMinTime, maxTime)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(ops)*100 + int64(cycle)

		cases = append(cases, bench.Case{
			Ops:          ops,
			CycleTime:    cycle,
			MinTime:      bMinTime,
			MaxTime:      maxTime,
			Density:      bDensity,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}
