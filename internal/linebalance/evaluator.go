package linebalance

import (
	"fmt"

	"seqOpt/internal/precedence"
)

// Evaluator считает число станций жадной упаковкой по времени такта.
// Состояния не хранит, поэтому безопасен для одновременного чтения.
type Evaluator struct {
	inst *Instance
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

// Stations: сумма накапливается в порядке последовательности; как только она
// превышает такт, открывается новая станция, начиная с текущей операции.
func (e *Evaluator) Stations(seq []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := precedence.ValidatePermutation(seq, e.inst.Ops); err != nil {
		return 0, err
	}

	stations := 1
	sum := 0
	for _, op := range seq {
		d := e.inst.Duration(op)
		sum += d
		if sum > e.inst.CycleTime {
			sum = d
			stations++
		}
	}
	return stations, nil
}

func (e *Evaluator) MustStations(seq []int) int {
	st, err := e.Stations(seq)
	if err != nil {
		panic(err)
	}
	return st
}

// LowerBound — ⌈Σd / C⌉, но не меньше 1.
func (e *Evaluator) LowerBound() int {
	total := 0
	for _, d := range e.inst.Durations {
		total += d
	}
	lb := (total + e.inst.CycleTime - 1) / e.inst.CycleTime
	if lb < 1 {
		lb = 1
	}
	return lb
}
