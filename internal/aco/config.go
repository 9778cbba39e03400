package aco

import "fmt"

type Config struct {
	Ants int

	Alpha float64
	Beta  float64

	Rho float64

	Q float64

	Tau0 float64

	// CandidateK ограничивает число рассматриваемых кандидатов; 0 — все.
	CandidateK int

	// GreedyHeuristic: η(j) = d_j / C (длинные операции раньше) вместо η = 1.
	GreedyHeuristic bool
}

func DefaultConfig() Config {
	return Config{
		Ants: 100,

		Alpha: 1.0,
		Beta:  2.0,

		Rho: 0.1,
		Q:   1.0,

		Tau0: 1.0,

		CandidateK: 0,
	}
}

func (c Config) Validate() error {
	if c.Ants <= 0 {
		return fmt.Errorf(
			"Ants должно быть > 0 (получено %d)",
			c.Ants,
		)
	}
	if c.Alpha < 0 || c.Beta < 0 {
		return fmt.Errorf(
			"Alpha и Beta должны быть >= 0 (получено %f, %f)",
			c.Alpha,
			c.Beta,
		)
	}
	if c.Rho <= 0 || c.Rho >= 1 {
		return fmt.Errorf(
			"Rho должно лежать в интервале (0,1) (получено %f)",
			c.Rho,
		)
	}
	if c.Q <= 0 {
		return fmt.Errorf(
			"Q должно быть > 0 (получено %f)",
			c.Q,
		)
	}
	if c.Tau0 <= 0 {
		return fmt.Errorf(
			"Tau0 должно быть > 0 (получено %f)",
			c.Tau0,
		)
	}
	if c.CandidateK < 0 {
		return fmt.Errorf(
			"CandidateK должно быть >= 0 (получено %d)",
			c.CandidateK,
		)
	}
	return nil
}
