package disassembly

import (
	"math"

	"seqOpt/internal/moo"
)

const (
	ratioSentinel = -9999.0
	ratioEps      = 1e-9
)

// Score — оценка плана разборки: прибыль, углеродный след и точка разреза.
// Операции seq[:Cut] разбираются, остальные заменяются новыми деталями.
type Score struct {
	Profit float64 `json:"profit"`
	Carbon float64 `json:"carbon"`
	Cut    int     `json:"cut"`
}

func (s Score) Point() moo.Point {
	return moo.Point{Profit: s.Profit, Carbon: s.Carbon}
}

// Breakdown — результаты обеих стратегий выбора разреза.
type Breakdown struct {
	Scan      Score   `json:"scan"`
	Heuristic Score   `json:"heuristic"`
	ScanDist  float64 `json:"scan_dist"`
	HeurDist  float64 `json:"heuristic_dist"`
	Chosen    Score   `json:"chosen"`
}

// Evaluator — оценщик прибыли и углеродного следа.
// Состояния не хранит.
type Evaluator struct {
	ds          *Dataset
	totalWeight float64
}

func NewEvaluator(ds *Dataset) (*Evaluator, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	total := 0.0
	for _, p := range ds.Parts {
		total += p.Weight
	}
	return &Evaluator{ds: ds, totalWeight: total}, nil
}

func (e *Evaluator) Dataset() *Dataset { return e.ds }

// Evaluate возвращает ту из двух стратегий, что ближе к утопии (при равенстве — перебор).
func (e *Evaluator) Evaluate(seq []int) Score {
	return e.Detailed(seq).Chosen
}

func (e *Evaluator) Detailed(seq []int) Breakdown {
	b := Breakdown{
		Scan:      e.scan(seq),
		Heuristic: e.heuristic(seq),
	}
	b.ScanDist = moo.Distance(b.Scan.Point(), e.ds.Utopia)
	b.HeurDist = moo.Distance(b.Heuristic.Point(), e.ds.Utopia)
	if b.ScanDist <= b.HeurDist {
		b.Chosen = b.Scan
	} else {
		b.Chosen = b.Heuristic
	}
	return b
}

// scan перебирает разрезы k ∈ [2, rang], где rang — первая позиция,
// на которой накопленная масса достигает порога.
func (e *Evaluator) scan(seq []int) Score {
	limit := e.totalWeight * e.ds.Economics.WeightThresholdRatio
	rang := len(seq)
	acc := 0.0
	for i, op := range seq {
		acc += e.ds.Parts[op-1].Weight
		if acc >= limit {
			rang = i + 1
			break
		}
	}
	if rang < 2 {
		rang = 2
	}
	if rang > len(seq) {
		rang = len(seq)
	}

	best := Score{Profit: math.Inf(-1), Carbon: math.Inf(1), Cut: -1}
	for k := 2; k <= rang; k++ {
		profit, carbon := e.MetricsAt(seq, k)
		if profit > best.Profit {
			best = Score{Profit: profit, Carbon: carbon, Cut: k}
		}
	}
	return best
}

// heuristic выбирает разрез по максимуму отношения наград категорий до и после разреза.
// Обе суммы для каждого k считаются заново слева направо.
func (e *Evaluator) heuristic(seq []int) Score {
	n := len(seq)
	rt := make([]float64, n)
	for i, op := range seq {
		rt[i] = e.ds.Parts[op-1].Category.Reward()
	}

	bestRatio := math.Inf(-1)
	bestCut := 1
	for k := 2; k < n; k++ {
		prefix := sumRewards(rt[:k])
		suffix := sumRewards(rt[k:])
		ratio := ratioSentinel
		if math.Abs(suffix) >= ratioEps {
			ratio = prefix / suffix
		}
		if ratio > bestRatio {
			bestRatio = ratio
			bestCut = k
		}
	}

	profit, carbon := e.MetricsAt(seq, bestCut)
	return Score{Profit: profit, Carbon: carbon, Cut: bestCut}
}

func sumRewards(rt []float64) float64 {
	s := 0.0
	for _, r := range rt {
		s += r
	}
	return s
}

// MetricsAt считает (прибыль, углерод) при разрезе после k-й операции.
// seq может быть любым списком деталей, не обязательно полной перестановкой.
func (e *Evaluator) MetricsAt(seq []int, k int) (float64, float64) {
	if k > len(seq) {
		k = len(seq)
	}
	if k < 0 {
		k = 0
	}
	eco := e.ds.Economics
	done, rest := seq[:k], seq[k:]

	cost := 0.0
	weightDone := 0.0
	remanCarbon := 0.0
	changes := 0
	for i, op := range done {
		p := e.ds.Parts[op-1]
		cost += p.DisassemblyCost
		weightDone += p.Weight
		if p.Category == Remanufacture {
			cost += eco.RemanSurcharge
			remanCarbon += p.Weight * p.CarbonCoeff
		}
		if i > 0 && p.Tool != e.ds.Parts[done[i-1]-1].Tool {
			changes++
		}
	}

	weightRest := 0.0
	for _, op := range rest {
		p := e.ds.Parts[op-1]
		cost += p.NewPartCost
		weightRest += p.Weight
	}

	revenue := weightRest * eco.ScrapRevenueRate
	timeCost := (eco.BaseOperations+float64(changes))*eco.TimeCostRate + eco.TimeCostOffset

	profit := eco.BaseValue - (cost + timeCost) + revenue
	carbon := weightDone*eco.DisassemblyCarbon + remanCarbon + float64(changes)*eco.ToolChangeCarbon
	return profit, carbon
}
