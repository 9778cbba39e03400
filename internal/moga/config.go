package moga

import "fmt"

type Config struct {
	Population    int
	CrossoverRate float64
	MutationRate  float64

	// Повторная проверка предшествования после PPX
	RepairAfterCrossover bool

	// Доля длины последовательности, занимаемая блоком (BlockGA)
	BlockSizeRatio float64
}

func DefaultConfig() Config {
	return Config{
		Population:    100,
		CrossoverRate: 0.8,
		MutationRate:  0.2,

		RepairAfterCrossover: true,
		BlockSizeRatio:       0.4,
	}
}

func (c Config) Validate() error {
	if c.Population < 2 {
		return fmt.Errorf(
			"Population должно быть >= 2 (получено %d)",
			c.Population,
		)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"CrossoverRate должно лежать в интервале [0,1] (получено %f)",
			c.CrossoverRate,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"MutationRate должно лежать в интервале [0,1] (получено %f)",
			c.MutationRate,
		)
	}
	if c.BlockSizeRatio <= 0 || c.BlockSizeRatio > 1 {
		return fmt.Errorf(
			"BlockSizeRatio должно лежать в интервале (0,1] (получено %f)",
			c.BlockSizeRatio,
		)
	}
	return nil
}
