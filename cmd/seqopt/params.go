package main

import (
	"github.com/spf13/cobra"

	"seqOpt/internal/sa"
	"seqOpt/internal/solver"
	"seqOpt/internal/ts"
)

// paramFlags — гиперпараметры однокритериальных стратегий из флагов.
type paramFlags struct {
	params  solver.Params
	saNeigh string
	tsNeigh string
}

func bindParams(cmd *cobra.Command) *paramFlags {
	pf := &paramFlags{params: solver.DefaultParams()}
	p := &pf.params
	f := cmd.Flags()

	// --- Генетический алгоритм ---
	f.IntVar(&p.GA.Population, "ga_pop", p.GA.Population, "размер популяции")
	f.IntVar(&p.GA.Elite, "ga_elite", p.GA.Elite, "размер элиты (количество лучших особей)")
	f.Float64Var(&p.GA.CrossoverRate, "ga_cx", p.GA.CrossoverRate, "вероятность применения кроссовера")
	f.Float64Var(&p.GA.MutationRate, "ga_mut", p.GA.MutationRate, "вероятность мутации")
	f.BoolVar(&p.GA.RepairAfterCrossover, "ga_repair", p.GA.RepairAfterCrossover, "чинить потомков кроссовера")

	// --- Рой частиц ---
	f.IntVar(&p.PSO.Particles, "pso_particles", p.PSO.Particles, "количество частиц")
	f.Float64Var(&p.PSO.W, "pso_w", p.PSO.W, "коэффициент W (инерция)")
	f.Float64Var(&p.PSO.C1, "pso_c1", p.PSO.C1, "коэффициент C1 (когнитивный)")
	f.Float64Var(&p.PSO.C2, "pso_c2", p.PSO.C2, "коэффициент C2 (социальный)")
	f.Float64Var(&p.PSO.VMax, "pso_vmax", p.PSO.VMax, "ограничение скорости частицы (0 — без ограничения)")

	// --- Муравьиный алгоритм ---
	f.IntVar(&p.ACO.Ants, "aco_ants", p.ACO.Ants, "количество муравьёв")
	f.Float64Var(&p.ACO.Alpha, "aco_alpha", p.ACO.Alpha, "коэффициент alpha (влияние феромонов)")
	f.Float64Var(&p.ACO.Beta, "aco_beta", p.ACO.Beta, "коэффициент beta (влияние эвристики)")
	f.Float64Var(&p.ACO.Rho, "aco_rho", p.ACO.Rho, "коэффициент rho (испарение феромонов)")
	f.Float64Var(&p.ACO.Q, "aco_q", p.ACO.Q, "константа отложения феромонов")
	f.IntVar(&p.ACO.CandidateK, "aco_k", p.ACO.CandidateK, "размер списка кандидатов (0 — все)")
	f.BoolVar(&p.ACO.GreedyHeuristic, "aco_greedy", p.ACO.GreedyHeuristic, "эвристика по длительности операции")

	// --- Имитация отжига ---
	f.Float64Var(&p.SA.InitialTemp, "sa_t0", p.SA.InitialTemp, "начальная температура")
	f.Float64Var(&p.SA.StoppingTemp, "sa_tmin", p.SA.StoppingTemp, "конечная температура")
	f.Float64Var(&p.SA.CoolingRate, "sa_alpha", p.SA.CoolingRate, "коэффициент охлаждения")
	f.StringVar(&pf.saNeigh, "sa_neigh", string(p.SA.Neighborhood), "тип окрестности: swap | insert")

	// --- Табу-поиск ---
	f.IntVar(&p.TS.TabuTenure, "ts_tenure", p.TS.TabuTenure, "длина табу-списка (в итерациях)")
	f.IntVar(&p.TS.TabuTenureRand, "ts_tenure_rand", p.TS.TabuTenureRand, "случайное добавление к сроку табу [0..rand]")
	f.IntVar(&p.TS.NeighborsPerIter, "ts_neighbors", p.TS.NeighborsPerIter, "количество соседей на итерацию")
	f.StringVar(&pf.tsNeigh, "ts_neigh", string(p.TS.Neighborhood), "тип окрестности: insert | swap")

	return pf
}

// Params возвращает параметры после разбора флагов.
func (pf *paramFlags) Params() solver.Params {
	p := pf.params
	p.SA.Neighborhood = sa.Neighborhood(pf.saNeigh)
	p.TS.Neighborhood = ts.Neighborhood(pf.tsNeigh)
	return p
}

// bindParetoParams — гиперпараметры многокритериальных стратегий.
func bindParetoParams(cmd *cobra.Command) *solver.ParetoParams {
	p := solver.DefaultParetoParams()
	f := cmd.Flags()

	f.IntVar(&p.GA.Population, "moga_pop", p.GA.Population, "размер популяции генетических вариантов")
	f.Float64Var(&p.GA.CrossoverRate, "moga_cx", p.GA.CrossoverRate, "вероятность кроссовера PPX")
	f.Float64Var(&p.GA.MutationRate, "moga_mut", p.GA.MutationRate, "вероятность мутации")
	f.Float64Var(&p.GA.BlockSizeRatio, "moga_block", p.GA.BlockSizeRatio, "доля длины последовательности под блок (block_ga)")

	f.IntVar(&p.PSO.Particles, "mopso_particles", p.PSO.Particles, "количество частиц")
	f.Float64Var(&p.PSO.W, "mopso_w", p.PSO.W, "коэффициент W (инерция)")
	f.Float64Var(&p.PSO.C1, "mopso_c1", p.PSO.C1, "коэффициент C1")
	f.Float64Var(&p.PSO.C2, "mopso_c2", p.PSO.C2, "коэффициент C2")
	f.Float64Var(&p.PSO.CrossoverRate, "mopso_cx", p.PSO.CrossoverRate, "вероятность PPX в окрестности гибрида")
	f.IntVar(&p.PSO.NeighborhoodStart, "mopso_start", p.PSO.NeighborhoodStart, "поколение, после которого включается PPX-окрестность")

	return &p
}
