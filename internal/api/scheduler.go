package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"seqOpt/internal/bench"
	"seqOpt/internal/config"
	"seqOpt/internal/linebalance"
	"seqOpt/internal/opt"
	"seqOpt/internal/sa"
	"seqOpt/internal/solver"
	"seqOpt/internal/ts"
)

type pairDTO struct {
	Pre int `json:"pre"`
	Suc int `json:"suc"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "сервис работает", map[string]string{
		"status":      "ok",
		"environment": h.env.Environment,
	})
}

func (h *Handler) GetSchedulerConfig(w http.ResponseWriter, r *http.Request) {
	wb := h.workbook
	pairs := make([]pairDTO, 0, len(wb.Pairs))
	for _, p := range wb.Pairs {
		pairs = append(pairs, pairDTO{Pre: p.Pre, Suc: p.Suc})
	}

	h.successResponse(w, r, "получены параметры задачи", map[string]any{
		"jobs":           wb.Jobs,
		"cycleTime":      wb.CycleTime,
		"times":          wb.Times,
		"pairs":          pairs,
		"populationSize": wb.PopulationSize,
		"maxGenerations": wb.MaxGenerations,
		"crossoverRate":  wb.CrossoverRate,
		"lowerBound":     h.problem.Evaluator.LowerBound(),
		"algorithms":     opt.Kinds(),
	})
}

type stationsRequest struct {
	Iterations      int      `json:"iterations" validate:"omitempty,gte=1"`
	Seed            *int64   `json:"seed"`
	CycleTime       int      `json:"cycleTime" validate:"omitempty,gte=1"`
	Population      int      `json:"population" validate:"omitempty,gte=2"`
	Elite           int      `json:"elite" validate:"gte=0"`
	CrossoverRate   *float64 `json:"crossoverRate" validate:"omitempty,gte=0,lte=1"`
	MutationRate    *float64 `json:"mutationRate" validate:"omitempty,gte=0,lte=1"`
	W               *float64 `json:"w" validate:"omitempty,gte=0"`
	C1              *float64 `json:"c1" validate:"omitempty,gte=0"`
	C2              *float64 `json:"c2" validate:"omitempty,gte=0"`
	Alpha           *float64 `json:"alpha" validate:"omitempty,gte=0"`
	Beta            *float64 `json:"beta" validate:"omitempty,gte=0"`
	Rho             *float64 `json:"rho" validate:"omitempty,gt=0,lt=1"`
	InitialTemp     *float64 `json:"initialTemp" validate:"omitempty,gt=0"`
	CoolingRate     *float64 `json:"coolingRate" validate:"omitempty,gt=0,lt=1"`
	Neighborhood    string   `json:"neighborhood" validate:"omitempty,oneof=swap insert"`
	GreedyHeuristic bool     `json:"greedyHeuristic"`
}

// params: значения по умолчанию, поверх них параметры книги, поверх них запрос.
func (req stationsRequest) params(wb *config.Workbook) solver.Params {
	p := solver.DefaultParams()

	pop := wb.PopulationSize
	if req.Population > 0 {
		pop = req.Population
	}
	if pop > 0 {
		p.GA.Population = pop
		p.PSO.Particles = pop
		p.ACO.Ants = pop
	}
	p.GA.Elite = req.Elite
	if wb.CrossoverRate > 0 {
		p.GA.CrossoverRate = wb.CrossoverRate
	}
	setFloat(&p.GA.CrossoverRate, req.CrossoverRate)
	setFloat(&p.GA.MutationRate, req.MutationRate)

	setFloat(&p.PSO.W, req.W)
	setFloat(&p.PSO.C1, req.C1)
	setFloat(&p.PSO.C2, req.C2)

	setFloat(&p.ACO.Alpha, req.Alpha)
	setFloat(&p.ACO.Beta, req.Beta)
	setFloat(&p.ACO.Rho, req.Rho)
	p.ACO.GreedyHeuristic = req.GreedyHeuristic

	setFloat(&p.SA.InitialTemp, req.InitialTemp)
	setFloat(&p.SA.CoolingRate, req.CoolingRate)
	if req.Neighborhood != "" {
		p.SA.Neighborhood = sa.Neighborhood(req.Neighborhood)
		p.TS.Neighborhood = ts.Neighborhood(req.Neighborhood)
	}
	return p
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// stationsProblem возвращает общую задачу или, при заданном такте, её копию
// с тем же графом предшествования.
func (h *Handler) stationsProblem(req stationsRequest) (*linebalance.Problem, error) {
	if req.CycleTime == 0 || req.CycleTime == h.problem.Instance.CycleTime {
		return h.problem, nil
	}
	base := h.problem.Instance
	inst, err := linebalance.NewInstance(base.Ops, req.CycleTime, base.Durations, base.Pairs)
	if err != nil {
		return nil, err
	}
	eval, err := linebalance.NewEvaluator(inst)
	if err != nil {
		return nil, err
	}
	return &linebalance.Problem{Instance: inst, Matrix: h.problem.Matrix, Evaluator: eval}, nil
}

type stationsRun struct {
	RunID      string     `json:"runId"`
	Seed       int64      `json:"seed"`
	CycleTime  int        `json:"cycleTime"`
	LowerBound int        `json:"lowerBound"`
	Result     opt.Result `json:"result"`
}

type stationsCompareRequest struct {
	stationsRequest
	Algorithms []string `json:"algorithms" validate:"omitempty,dive,required"`
}

type stationsCompareRun struct {
	RunID      string       `json:"runId"`
	Seed       int64        `json:"seed"`
	CycleTime  int          `json:"cycleTime"`
	LowerBound int          `json:"lowerBound"`
	Results    []opt.Result `json:"results"`
}

func (h *Handler) OptimizeStations(w http.ResponseWriter, r *http.Request) {
	kind, err := opt.ParseKind(chi.URLParam(r, "algo"))
	if err != nil {
		h.errorResponse(w, r, "неизвестный алгоритм: "+chi.URLParam(r, "algo"))
		return
	}

	var req stationsRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	iterations, err := h.iterations(req.Iterations, h.workbook.MaxGenerations)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	p, err := h.stationsProblem(req)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	seed := h.seedFor(req.Seed)
	s, err := solver.NewStations(kind, p, req.params(h.workbook), randForSeed(seed))
	if err != nil {
		switch {
		case errors.Is(err, opt.ErrUnknownKind):
			h.errorResponse(w, r, err.Error())
		default:
			h.badRequest(w, r, err)
		}
		return
	}

	ctx, cancel := h.runContext(r)
	defer cancel()
	res, err := opt.Run(ctx, kind, s, iterations)
	if err != nil {
		h.runFailed(w, r, err)
		return
	}

	h.successResponse(w, r, "расчёт завершён", stationsRun{
		RunID:      runIDFrom(r.Context()),
		Seed:       seed,
		CycleTime:  p.Instance.CycleTime,
		LowerBound: p.Evaluator.LowerBound(),
		Result:     res,
	})
}

// CompareStations запускает однокритериальные стратегии параллельно на одной задаче; без списка — все.
func (h *Handler) CompareStations(w http.ResponseWriter, r *http.Request) {
	var req stationsCompareRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	kinds := opt.Kinds()
	if len(req.Algorithms) > 0 {
		kinds = make([]opt.Kind, 0, len(req.Algorithms))
		for _, a := range req.Algorithms {
			kind, err := opt.ParseKind(a)
			if err != nil {
				h.errorResponse(w, r, "неизвестный алгоритм: "+a)
				return
			}
			kinds = append(kinds, kind)
		}
	}

	iterations, err := h.iterations(req.Iterations, h.workbook.MaxGenerations)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	p, err := h.stationsProblem(req.stationsRequest)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	seed := h.seedFor(req.Seed)
	ctx, cancel := h.runContext(r)
	defer cancel()
	results, err := bench.CompareStations(ctx, p, kinds, req.params(h.workbook), iterations, seed)
	if err != nil {
		if ctx.Err() != nil {
			h.runFailed(w, r, ctx.Err())
			return
		}
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "сравнение завершено", stationsCompareRun{
		RunID:      runIDFrom(r.Context()),
		Seed:       seed,
		CycleTime:  p.Instance.CycleTime,
		LowerBound: p.Evaluator.LowerBound(),
		Results:    results,
	})
}
