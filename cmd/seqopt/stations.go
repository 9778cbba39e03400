package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"seqOpt/internal/config"
	"seqOpt/internal/linebalance"
	"seqOpt/internal/opt"
	"seqOpt/internal/solver"
)

var (
	stWorkbook   string
	stAlgo       string
	stIterations int
	stSeed       int64
	stParams     *paramFlags
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Минимизация числа станций линии",
	Long: `Решает задачу балансировки из книги (или встроенного примера) одной стратегией.
usage:
  seqopt stations --algo ga
  seqopt stations --workbook task.xlsx --algo sa --sa_neigh insert`,
	RunE: runStations,
}

func init() {
	stationsCmd.Flags().StringVar(&stWorkbook, "workbook", "", "путь к книге с задачей (пусто — встроенный пример)")
	stationsCmd.Flags().StringVar(&stAlgo, "algo", "ga", "алгоритм: "+joinKinds(opt.Kinds()))
	stationsCmd.Flags().IntVar(&stIterations, "iterations", 0, "количество итераций (0 — MAX_GENERATIONS из книги)")
	stationsCmd.Flags().Int64Var(&stSeed, "seed", 0, "сид генератора (0 — от текущего времени)")
	stParams = bindParams(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	kind, err := opt.ParseKind(stAlgo)
	if err != nil {
		return err
	}

	wb, err := loadWorkbook(stWorkbook)
	if err != nil {
		return err
	}
	inst, err := wb.Instance()
	if err != nil {
		return err
	}
	p, err := linebalance.NewProblem(inst)
	if err != nil {
		return err
	}

	iterations := stIterations
	if iterations == 0 {
		iterations = wb.MaxGenerations
	}
	seed := seedOrNow(stSeed)

	s, err := solver.NewStations(kind, p, stParams.Params(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("конфликт в конфигурации %s: %w", kind, err)
	}

	fmt.Printf("Запущен алгоритм %s; %d операций, такт %d, итераций %d, сид %d...\n",
		strings.ToUpper(string(kind)), inst.Ops, inst.CycleTime, iterations, seed)

	res, err := opt.Run(cmd.Context(), kind, s, iterations)
	if err != nil {
		return err
	}

	fmt.Printf("  Станций: %d (нижняя граница %d) | итераций %d, оценок %d, время %s\n",
		res.Stations, p.Evaluator.LowerBound(), res.Iterations, res.Evaluations, res.Duration.Round(time.Microsecond))
	fmt.Printf("  Последовательность: %v\n", res.Sequence)
	return nil
}

// loadWorkbook: пустой путь — встроенный пример.
func loadWorkbook(path string) (*config.Workbook, error) {
	if path == "" {
		return config.Sample(), nil
	}
	return config.LoadWorkbook(path)
}

func seedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func joinKinds[K ~string](kinds []K) string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return strings.Join(out, ", ")
}
