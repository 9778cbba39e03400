package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"seqOpt/internal/bench"
	"seqOpt/internal/disassembly"
	"seqOpt/internal/opt"
	"seqOpt/internal/solver"
)

var (
	disDataset    string
	disAlgos      string
	disIterations int
	disSeed       int64
	disFront      bool
	disParams     *solver.ParetoParams
)

var disassemblyCmd = &cobra.Command{
	Use:   "disassembly",
	Short: "Многокритериальная оптимизация плана разборки",
	Long: `Запускает выбранные стратегии параллельно на одном наборе данных
и печатает гиперобъём, сбалансированное решение и размер фронта.
usage:
  seqopt disassembly --algos nsga2,pso_ppx --iterations 200
  seqopt disassembly --algos kg --front`,
	RunE: runDisassembly,
}

func init() {
	disassemblyCmd.Flags().StringVar(&disDataset, "dataset", "stapler", "набор данных")
	disassemblyCmd.Flags().StringVar(&disAlgos, "algos", joinKinds(opt.ParetoKinds()), "список алгоритмов (через запятую)")
	disassemblyCmd.Flags().IntVar(&disIterations, "iterations", 100, "количество поколений")
	disassemblyCmd.Flags().Int64Var(&disSeed, "seed", 0, "сид генератора (0 — от текущего времени)")
	disassemblyCmd.Flags().BoolVar(&disFront, "front", false, "печатать фронт Парето целиком")
	disParams = bindParetoParams(disassemblyCmd)
}

func runDisassembly(cmd *cobra.Command, args []string) error {
	var kinds []opt.ParetoKind
	for _, a := range splitCSV(disAlgos) {
		kind, err := opt.ParseParetoKind(a)
		if err != nil {
			return fmt.Errorf("%w; доступные: %s", err, joinKinds(opt.ParetoKinds()))
		}
		kinds = append(kinds, kind)
	}
	if len(kinds) == 0 {
		return fmt.Errorf("не выбран ни один алгоритм")
	}

	ds, err := disassembly.DefaultCatalog().Dataset(disDataset)
	if err != nil {
		return err
	}
	seed := seedOrNow(disSeed)
	p, err := disassembly.NewDatasetProblem(ds)
	if err != nil {
		return err
	}

	fmt.Printf("Набор %s: %d деталей, поколений %d, сид %d, алгоритмы: %s\n",
		ds.Name, ds.N(), disIterations, seed, joinKinds(kinds))

	results, err := bench.Compare(cmd.Context(), p, kinds, *disParams, disIterations, seed)
	if err != nil {
		return err
	}

	for _, res := range results {
		best := res.Best
		fmt.Printf("  %-13s HV=%.4f прибыль=%.3f углерод=%.3f разрез=%d фронт=%d оценок=%d время=%s\n",
			strings.ToUpper(string(res.Algorithm)), best.Hypervolume, best.Score.Profit, best.Score.Carbon,
			best.Score.Cut, len(res.Front), res.Evaluations, res.Duration.Round(time.Millisecond))
		if disFront {
			for _, m := range res.Front {
				fmt.Printf("      прибыль=%.3f углерод=%.3f разрез=%d %v\n", m.Point.Profit, m.Point.Carbon, m.Cut, m.Sequence)
			}
		}
	}
	return nil
}
