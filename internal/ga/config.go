package ga

import "fmt"

type Config struct {
	Population    int
	Elite         int
	CrossoverRate float64
	MutationRate  float64
	// RepairAfterCrossover — чинить потомков PPX матрицей предшествования.
	RepairAfterCrossover bool
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf(
			"размер популяции должен быть > 1 (получено %d)",
			c.Population,
		)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf(
			"число элитных особей должно быть в диапазоне [0, population) (получено %d)",
			c.Elite,
		)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			c.CrossoverRate,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			c.MutationRate,
		)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Population:           100,
		Elite:                0,
		CrossoverRate:        0.8,
		MutationRate:         0.1,
		RepairAfterCrossover: true,
	}
}
