package opt

import (
	"context"
	"fmt"
	"time"

	"seqOpt/internal/moo"
)

type Result struct {
	Algorithm   Kind           `json:"algorithm"`
	Sequence    []int          `json:"sequence"`
	Stations    int            `json:"stations"`
	History     []int          `json:"history"`
	Evaluations int            `json:"evaluations"`
	Iterations  int            `json:"iterations"`
	Duration    time.Duration  `json:"duration"`
	Meta        map[string]any `json:"meta,omitempty"`
}

type ParetoResult struct {
	Algorithm   ParetoKind     `json:"algorithm"`
	Best        ParetoSnapshot `json:"best"`
	Front       []moo.Member   `json:"front"`
	History     []float64      `json:"history"`
	Evaluations int            `json:"evaluations"`
	Iterations  int            `json:"iterations"`
	Duration    time.Duration  `json:"duration"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Run вызывает Evolve до iterations раз (или до Done для Finisher)
// и накапливает историю лучшего значения. Отмена проверяется между итерациями.
func Run(ctx context.Context, kind Kind, s Stepper, iterations int) (Result, error) {
	if iterations <= 0 {
		return Result{}, fmt.Errorf("количество итераций должно быть > 0 (получено %d)", iterations)
	}
	start := time.Now()
	res := Result{Algorithm: kind, History: make([]int, 0, iterations)}
	fin, _ := s.(Finisher)

	for iter := 0; iter < iterations; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res.Iterations = iter
			res.Duration = time.Since(start)
			res.Meta = map[string]any{"stopped": "context"}
			fillEvaluations(&res.Evaluations, s)
			return res, err
		}
		if fin != nil && fin.Done() {
			res.Meta = map[string]any{"stopped": "schedule"}
			break
		}

		snap := s.Evolve()
		res.Sequence = snap.Sequence
		res.Stations = snap.Stations
		res.History = append(res.History, snap.Stations)
		res.Iterations = iter + 1
	}

	res.Duration = time.Since(start)
	fillEvaluations(&res.Evaluations, s)
	return res, nil
}

// RunPareto — то же для многокритериальных стратегий.
// История гиперобъёма хранится как накопленный максимум.
func RunPareto(ctx context.Context, kind ParetoKind, s ParetoStepper, iterations int) (ParetoResult, error) {
	if iterations <= 0 {
		return ParetoResult{}, fmt.Errorf("количество итераций должно быть > 0 (получено %d)", iterations)
	}
	start := time.Now()
	res := ParetoResult{Algorithm: kind, History: make([]float64, 0, iterations)}

	for iter := 0; iter < iterations; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res.Iterations = iter
			res.Duration = time.Since(start)
			res.Front = s.Front()
			res.Meta = map[string]any{"stopped": "context"}
			fillEvaluations(&res.Evaluations, s)
			return res, err
		}

		snap := s.Evolve()
		res.Best = snap
		hv := snap.Hypervolume
		if n := len(res.History); n > 0 && res.History[n-1] > hv {
			hv = res.History[n-1]
		}
		res.History = append(res.History, hv)
		res.Iterations = iter + 1
	}

	res.Duration = time.Since(start)
	res.Front = s.Front()
	fillEvaluations(&res.Evaluations, s)
	return res, nil
}

func fillEvaluations(dst *int, s any) {
	if c, ok := s.(Counter); ok {
		*dst = c.Evaluations()
	}
}
