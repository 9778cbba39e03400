package linebalance

import (
	"errors"
	"fmt"
	"math/rand"

	"seqOpt/internal/precedence"
)

// Instance — задача балансировки линии: N операций с длительностями,
// время такта и прямые ограничения предшествования.
type Instance struct {
	Ops int
	// Durations[i] — длительность операции i+1.
	Durations []int
	CycleTime int
	Pairs     []precedence.Pair
}

func NewInstance(ops, cycleTime int, durations []int, pairs []precedence.Pair) (*Instance, error) {
	inst := &Instance{Ops: ops, Durations: durations, CycleTime: cycleTime, Pairs: pairs}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Ops <= 0 {
		return fmt.Errorf("ops must be > 0 (got %d)", inst.Ops)
	}
	if len(inst.Durations) != inst.Ops {
		return fmt.Errorf("durations length must be %d (got %d)", inst.Ops, len(inst.Durations))
	}
	for i, v := range inst.Durations {
		if v < 0 {
			return fmt.Errorf("durations[%d] must be >= 0 (got %d)", i, v)
		}
	}
	if inst.CycleTime <= 0 {
		return fmt.Errorf("cycle time must be > 0 (got %d)", inst.CycleTime)
	}
	return nil
}

// Duration возвращает длительность операции op (1-базовый id).
func (inst *Instance) Duration(op int) int {
	return inst.Durations[op-1]
}

// RandomInstance генерирует случайный экземпляр со случайным ациклическим графом.
// Рёбра идут только от меньшего ранга скрытого порядка к большему.
func RandomInstance(ops, cycleTime, minTime, maxTime int, density float64, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	durations := make([]int, ops)
	span := maxTime - minTime + 1
	for i := range durations {
		durations[i] = minTime + rng.Intn(span)
	}

	order := rng.Perm(ops)
	var pairs []precedence.Pair
	for a := 0; a < ops; a++ {
		for b := a + 1; b < ops; b++ {
			if rng.Float64() < density {
				pairs = append(pairs, precedence.Pair{Pre: order[a] + 1, Suc: order[b] + 1})
			}
		}
	}

	inst, err := NewInstance(ops, cycleTime, durations, pairs)
	if err != nil {
		panic(err)
	}
	return inst
}
