package disassembly

import (
	"errors"
	"fmt"

	"seqOpt/internal/moo"
	"seqOpt/internal/precedence"
)

// Category — судьба детали после разборки.
type Category int

const (
	Trash Category = iota
	Reuse
	Recycle
	Remanufacture
)

func (c Category) String() string {
	switch c {
	case Reuse:
		return "reuse"
	case Recycle:
		return "recycle"
	case Remanufacture:
		return "remanufacture"
	default:
		return "trash"
	}
}

// Reward — вклад категории в эвристику выбора разреза.
func (c Category) Reward() float64 {
	switch c {
	case Reuse:
		return 1
	case Recycle:
		return -0.5
	case Remanufacture:
		return -0.3
	default:
		return -2
	}
}

// Part — деталь изделия (операция разборки с id = индекс+1).
type Part struct {
	Weight          float64
	NewPartCost     float64
	DisassemblyCost float64
	CarbonCoeff     float64
	Tool            int
	Category        Category
}

// Economics — константы модели прибыли и углеродного следа.
type Economics struct {
	BaseValue            float64 // стоимость изделия
	RemanSurcharge       float64 // доплата за восстановление детали
	ScrapRevenueRate     float64 // выручка за единицу массы оставшихся деталей
	DisassemblyCarbon    float64 // углерод на единицу массы разобранных деталей
	BaseOperations       float64
	TimeCostRate         float64
	TimeCostOffset       float64
	ToolChangeCarbon     float64
	WeightThresholdRatio float64 // доля массы, ограничивающая перебор разрезов
}

// Dataset — неизменяемые таблицы задачи разборки.
type Dataset struct {
	Name       string
	Parts      []Part
	Pairs      []precedence.Pair
	Economics  Economics
	Utopia     moo.Point
	AntiUtopia moo.Point
	// HVSamples — размер выборки для оценки гиперобъёма.
	HVSamples int
}

func (ds *Dataset) N() int { return len(ds.Parts) }

func (ds *Dataset) Validate() error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	if len(ds.Parts) < 2 {
		return fmt.Errorf("dataset %q: need at least 2 parts (got %d)", ds.Name, len(ds.Parts))
	}
	for i, p := range ds.Parts {
		if p.Weight < 0 {
			return fmt.Errorf("dataset %q: parts[%d] weight must be >= 0", ds.Name, i)
		}
	}
	if ds.HVSamples <= 0 {
		return fmt.Errorf("dataset %q: hypervolume samples must be > 0 (got %d)", ds.Name, ds.HVSamples)
	}
	if !moo.Dominates(ds.Utopia, ds.AntiUtopia) {
		return fmt.Errorf("dataset %q: utopia must dominate anti-utopia", ds.Name)
	}
	return nil
}
