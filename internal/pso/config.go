package pso

import "fmt"

type Config struct {
	Particles int

	W  float64
	C1 float64
	C2 float64

	// VMax ограничивает модуль скорости; 0 — без ограничения.
	VMax float64

	// Начальные позиции равномерно в [InitPosMin, InitPosMax],
	// скорости — в [-InitVel, InitVel]. Далее позиции не ограничены.
	InitPosMin float64
	InitPosMax float64
	InitVel    float64
}

func DefaultConfig() Config {
	return Config{
		Particles: 100,

		W:  0.7,
		C1: 2.0,
		C2: 2.0,

		VMax:       0,
		InitPosMin: -10,
		InitPosMax: 10,
		InitVel:    1,
	}
}

func (c Config) Validate() error {
	if c.Particles <= 0 {
		return fmt.Errorf(
			"Particles должно быть > 0 (получено %d)",
			c.Particles,
		)
	}
	if c.W < 0 {
		return fmt.Errorf(
			"W должно быть >= 0 (получено %f)",
			c.W,
		)
	}
	if c.C1 < 0 || c.C2 < 0 {
		return fmt.Errorf(
			"C1 и C2 должны быть >= 0 (получено %f, %f)",
			c.C1,
			c.C2,
		)
	}
	if c.VMax < 0 {
		return fmt.Errorf(
			"VMax должно быть >= 0 (получено %f)",
			c.VMax,
		)
	}
	if c.InitPosMin >= c.InitPosMax {
		return fmt.Errorf(
			"InitPosMin должно быть < InitPosMax (получено %f >= %f)",
			c.InitPosMin,
			c.InitPosMax,
		)
	}
	if c.InitVel < 0 {
		return fmt.Errorf(
			"InitVel должно быть >= 0 (получено %f)",
			c.InitVel,
		)
	}
	return nil
}
