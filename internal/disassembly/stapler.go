package disassembly

import (
	"seqOpt/internal/moo"
	"seqOpt/internal/precedence"
)

// Stapler — кейс разборки степлера из 18 деталей.
func Stapler() *Dataset {
	weights := []float64{0.015, 0.005, 0.003, 0.008, 0.0025, 0.003, 0.0013, 0.006, 0.002,
		0.003, 0.002, 0.009, 0.0021, 0.0012, 0.0025, 0.003, 0.003, 0.004}
	newCosts := []float64{25, 5, 2, 25, 10, 8, 7, 10, 8, 2, 5, 20, 5, 5, 7, 2, 2, 2}
	carbon := []float64{0.31, 0.31, 0.43, 0.43, 0.12, 0.43, 0.12, 0.31, 0.43,
		0.43, 0.31, 0.31, 0.12, 0.31, 0.31, 0.31, 0.31, 0.43}
	tools := []int{3, 1, 2, 3, 4, 3, 3, 3, 3, 3, 1, 1, 1, 2, 4, 2, 2, 3}

	// Стоимости разборки заданы в порядке технологической карты.
	costOrder := []int{18, 10, 16, 17, 3, 14, 2, 9, 5, 6, 7, 15, 11, 12, 13, 1, 8, 4}
	costs := []float64{0.9297, 0.911, 0.797, 0.797, 0.797, 0.797, 0.482, 0.294, 0.266,
		0.266, 0.224, 0.1727, 0.1727, 0.1727, 0.1354, 0.0234, 0.0234, 0.0234}

	category := make([]Category, 18)
	for _, id := range []int{2, 5, 7, 9, 13} {
		category[id-1] = Reuse
	}
	for _, id := range []int{1, 3, 10, 14, 15, 16, 17, 18} {
		category[id-1] = Recycle
	}
	for _, id := range []int{4, 6, 8, 11} {
		category[id-1] = Remanufacture
	}
	category[12-1] = Trash

	parts := make([]Part, 18)
	for i := range parts {
		parts[i] = Part{
			Weight:      weights[i],
			NewPartCost: newCosts[i],
			CarbonCoeff: carbon[i],
			Tool:        tools[i],
			Category:    category[i],
		}
	}
	for i, id := range costOrder {
		parts[id-1].DisassemblyCost = costs[i]
	}

	return &Dataset{
		Name:  "stapler",
		Parts: parts,
		Pairs: []precedence.Pair{
			{Pre: 3, Suc: 2}, {Pre: 3, Suc: 1}, {Pre: 4, Suc: 5}, {Pre: 4, Suc: 8}, {Pre: 5, Suc: 7},
			{Pre: 5, Suc: 6}, {Pre: 6, Suc: 9}, {Pre: 7, Suc: 9}, {Pre: 8, Suc: 6}, {Pre: 10, Suc: 12},
			{Pre: 11, Suc: 12}, {Pre: 13, Suc: 12}, {Pre: 14, Suc: 1}, {Pre: 14, Suc: 4}, {Pre: 15, Suc: 12},
			{Pre: 16, Suc: 15}, {Pre: 17, Suc: 15}, {Pre: 18, Suc: 10}, {Pre: 18, Suc: 11}, {Pre: 18, Suc: 13},
		},
		Economics: Economics{
			BaseValue:            350,
			RemanSurcharge:       1.5,
			ScrapRevenueRate:     0.005,
			DisassemblyCarbon:    0.509,
			BaseOperations:       48,
			TimeCostRate:         0.049,
			TimeCostOffset:       5.0306,
			ToolChangeCarbon:     0.1,
			WeightThresholdRatio: 0.7,
		},
		Utopia:     moo.Point{Profit: 350, Carbon: 0.001},
		AntiUtopia: moo.Point{Profit: 0, Carbon: 100},
		HVSamples:  1000,
	}
}
