package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "seqopt",
	Short: "Оптимизация последовательностей операций с ограничениями предшествования",
	Long: `seqopt подбирает порядок операций с учётом предшествования.
  stations       минимизация числа станций линии (GA, PSO, ACO, SA, TS)
  disassembly    прибыль против углеродного следа при разборке (NSGA-II, NPSO, ...)
  bench          серия запусков на случайных экземплярах с отчётом CSV/XLSX
  sample-config  пример книги с задачей
  serve          HTTP-сервис`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "подробный лог (уровень debug)")

	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(disassemblyCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(serveCmd)
}
