package mopso

import (
	"fmt"

	"seqOpt/internal/pso"
)

type Config struct {
	Particles int

	W  float64
	C1 float64
	C2 float64

	InitPosMin float64
	InitPosMax float64
	InitVel    float64

	// Параметры гибрида: PPX-окрестность включается после NeighborhoodStart поколений
	CrossoverRate     float64
	NeighborhoodStart int
}

func DefaultConfig() Config {
	return Config{
		Particles: 100,

		W:  0.8,
		C1: 0.5,
		C2: 0.5,

		InitPosMin: -10,
		InitPosMax: 10,
		InitVel:    1,

		CrossoverRate:     0.8,
		NeighborhoodStart: 50,
	}
}

func (c Config) Validate() error {
	if err := c.swarm().Validate(); err != nil {
		return err
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"CrossoverRate должно лежать в интервале [0,1] (получено %f)",
			c.CrossoverRate,
		)
	}
	if c.NeighborhoodStart < 0 {
		return fmt.Errorf(
			"NeighborhoodStart должно быть >= 0 (получено %d)",
			c.NeighborhoodStart,
		)
	}
	return nil
}

// swarm — параметры движения роя в терминах пакета pso.
func (c Config) swarm() pso.Config {
	return pso.Config{
		Particles:  c.Particles,
		W:          c.W,
		C1:         c.C1,
		C2:         c.C2,
		InitPosMin: c.InitPosMin,
		InitPosMax: c.InitPosMax,
		InitVel:    c.InitVel,
	}
}
