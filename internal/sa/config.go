package sa

import "fmt"

// Тип окрестности
type Neighborhood string

const (
	NeighborhoodSwap   Neighborhood = "swap"
	NeighborhoodInsert Neighborhood = "insert"
)

type Config struct {
	InitialTemp  float64
	StoppingTemp float64
	CoolingRate  float64

	Neighborhood Neighborhood
}

func DefaultConfig() Config {
	return Config{
		InitialTemp:  1000.0,
		StoppingTemp: 0.1,
		CoolingRate:  0.99,

		Neighborhood: NeighborhoodSwap,
	}
}

func (c Config) Validate() error {
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.StoppingTemp <= 0 {
		return fmt.Errorf(
			"StoppingTemp должно быть > 0 (получено %f)",
			c.StoppingTemp,
		)
	}
	if c.StoppingTemp >= c.InitialTemp {
		return fmt.Errorf(
			"StoppingTemp должно быть < InitialTemp (получено %f >= %f)",
			c.StoppingTemp,
			c.InitialTemp,
		)
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return fmt.Errorf(
			"CoolingRate должно лежать в интервале (0,1) (получено %f)",
			c.CoolingRate,
		)
	}
	switch c.Neighborhood {
	case NeighborhoodSwap, NeighborhoodInsert:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный тип окрестности %q",
			c.Neighborhood,
		)
	}
	return nil
}

// Steps — число шагов до остановки: минимальное k, при котором T0·rate^k <= Tstop.
func (c Config) Steps() int {
	k := 0
	for t := c.InitialTemp; t > c.StoppingTemp; t *= c.CoolingRate {
		k++
	}
	return k
}
