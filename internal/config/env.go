package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// Env — настройки сервиса из переменных окружения с префиксом SEQOPT_.
type Env struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"120"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Solver struct {
		// Путь к книге с задачей балансировки; пусто — встроенный пример
		Workbook string `env:"WORKBOOK"`
		// 0 — сид от текущего времени
		Seed          int64 `env:"SEED" envDefault:"0"`
		MaxIterations int   `env:"MAX_ITERATIONS" envDefault:"2000"`
		RunTimeout    int   `env:"RUN_TIMEOUT" envDefault:"60"`
	} `envPrefix:"SOLVER_"`
}

const envPrefix = "SEQOPT_"

func LoadEnv() (*Env, error) {
	cfg := &Env{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// Только первая ошибка, чтобы лог оставался читаемым
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return cfg, nil
}
