package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seqOpt/internal/config"
)

var sampleOut string

var sampleCmd = &cobra.Command{
	Use:   "sample-config",
	Short: "Записать пример книги с задачей балансировки",
	Long: `Пишет книгу с листами Parameters, Constraints и JobTimes:
18 работ с ограничениями степлера, такт 20. Книгу можно править и передавать в --workbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteSample(sampleOut); err != nil {
			return err
		}
		fmt.Println("Сохранено:", sampleOut)
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "input.xlsx", "путь к книге")
}
