package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"seqOpt/internal/bench"
	"seqOpt/internal/disassembly"
	"seqOpt/internal/moo"
	"seqOpt/internal/opt"
	"seqOpt/internal/solver"
)

const (
	defaultDataset          = "stapler"
	defaultParetoIterations = 100
)

type datasetInfo struct {
	Name       string    `json:"name"`
	Parts      int       `json:"parts"`
	Pairs      int       `json:"pairs"`
	Utopia     moo.Point `json:"utopia"`
	AntiUtopia moo.Point `json:"antiUtopia"`
	HVSamples  int       `json:"hvSamples"`
}

func (h *Handler) GetDatasets(w http.ResponseWriter, r *http.Request) {
	names := h.datasets.Names()
	out := make([]datasetInfo, 0, len(names))
	for _, name := range names {
		ds, err := h.datasets.Dataset(name)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		out = append(out, datasetInfo{
			Name:       name,
			Parts:      ds.N(),
			Pairs:      len(ds.Pairs),
			Utopia:     ds.Utopia,
			AntiUtopia: ds.AntiUtopia,
			HVSamples:  ds.HVSamples,
		})
	}

	h.successResponse(w, r, "получены наборы данных", map[string]any{
		"datasets":   out,
		"algorithms": opt.ParetoKinds(),
	})
}

type paretoRequest struct {
	Dataset           string   `json:"dataset"`
	Iterations        int      `json:"iterations" validate:"omitempty,gte=1"`
	Seed              *int64   `json:"seed"`
	Population        int      `json:"population" validate:"omitempty,gte=2"`
	CrossoverRate     *float64 `json:"crossoverRate" validate:"omitempty,gte=0,lte=1"`
	MutationRate      *float64 `json:"mutationRate" validate:"omitempty,gte=0,lte=1"`
	NeighborhoodStart *int     `json:"neighborhoodStart" validate:"omitempty,gte=0"`
}

func (req paretoRequest) params() solver.ParetoParams {
	p := solver.DefaultParetoParams()
	if req.Population > 0 {
		p.GA.Population = req.Population
		p.PSO.Particles = req.Population
	}
	if req.CrossoverRate != nil {
		p.GA.CrossoverRate = *req.CrossoverRate
		p.PSO.CrossoverRate = *req.CrossoverRate
	}
	if req.MutationRate != nil {
		p.GA.MutationRate = *req.MutationRate
	}
	if req.NeighborhoodStart != nil {
		p.PSO.NeighborhoodStart = *req.NeighborhoodStart
	}
	return p
}

func (req paretoRequest) datasetName() string {
	if req.Dataset == "" {
		return defaultDataset
	}
	return req.Dataset
}

type compareRequest struct {
	paretoRequest
	Algorithms []string `json:"algorithms" validate:"omitempty,dive,required"`
}

type paretoRun struct {
	RunID   string           `json:"runId"`
	Seed    int64            `json:"seed"`
	Dataset string           `json:"dataset"`
	Result  opt.ParetoResult `json:"result"`
}

type compareRun struct {
	RunID   string             `json:"runId"`
	Seed    int64              `json:"seed"`
	Dataset string             `json:"dataset"`
	Results []opt.ParetoResult `json:"results"`
}

// problemFor собирает задачу разборки; ok=false означает, что ответ уже записан.
func (h *Handler) problemFor(w http.ResponseWriter, r *http.Request, name string) (*disassembly.Problem, bool) {
	ds, err := h.datasets.Dataset(name)
	if err != nil {
		switch {
		case errors.Is(err, disassembly.ErrUnknownDataset):
			h.errorResponse(w, r, "неизвестный набор данных: "+name)
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}
	p, err := disassembly.NewDatasetProblem(ds)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}
	return p, true
}

func (h *Handler) OptimizePareto(w http.ResponseWriter, r *http.Request) {
	kind, err := opt.ParseParetoKind(chi.URLParam(r, "algo"))
	if err != nil {
		h.errorResponse(w, r, "неизвестный алгоритм: "+chi.URLParam(r, "algo"))
		return
	}

	var req paretoRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	iterations, err := h.iterations(req.Iterations, defaultParetoIterations)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	seed := h.seedFor(req.Seed)
	p, ok := h.problemFor(w, r, req.datasetName())
	if !ok {
		return
	}
	s, err := solver.NewPareto(kind, p, req.params(), randForSeed(seed))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := h.runContext(r)
	defer cancel()
	res, err := opt.RunPareto(ctx, kind, s, iterations)
	if err != nil {
		h.runFailed(w, r, err)
		return
	}

	h.successResponse(w, r, "расчёт завершён", paretoRun{
		RunID:   runIDFrom(r.Context()),
		Seed:    seed,
		Dataset: req.datasetName(),
		Result:  res,
	})
}

// ComparePareto запускает стратегии параллельно на одной задаче; без списка — все.
func (h *Handler) ComparePareto(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	kinds := opt.ParetoKinds()
	if len(req.Algorithms) > 0 {
		kinds = make([]opt.ParetoKind, 0, len(req.Algorithms))
		for _, a := range req.Algorithms {
			kind, err := opt.ParseParetoKind(a)
			if err != nil {
				h.errorResponse(w, r, "неизвестный алгоритм: "+a)
				return
			}
			kinds = append(kinds, kind)
		}
	}

	iterations, err := h.iterations(req.Iterations, defaultParetoIterations)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	seed := h.seedFor(req.Seed)
	p, ok := h.problemFor(w, r, req.datasetName())
	if !ok {
		return
	}

	ctx, cancel := h.runContext(r)
	defer cancel()
	results, err := bench.Compare(ctx, p, kinds, req.params(), iterations, seed)
	if err != nil {
		if ctx.Err() != nil {
			h.runFailed(w, r, ctx.Err())
			return
		}
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "сравнение завершено", compareRun{
		RunID:   runIDFrom(r.Context()),
		Seed:    seed,
		Dataset: req.datasetName(),
		Results: results,
	})
}
