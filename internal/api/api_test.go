package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqOpt/internal/api"
	"seqOpt/internal/config"
	"seqOpt/internal/disassembly"
	"seqOpt/internal/moo"
	"seqOpt/internal/opt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newHandler(t *testing.T) *api.Handler {
	t.Helper()
	env := &config.Env{Environment: "test"}
	env.Solver.Seed = 7
	env.Solver.MaxIterations = 200
	env.Solver.RunTimeout = 30

	h, err := api.NewHandler(env, config.Sample(), disassembly.DefaultCatalog())
	require.NoError(t, err)
	h.RegisterRoutes()
	return h
}

func do(t *testing.T, h *api.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestNewHandlerRejectsMissingDeps(t *testing.T) {
	_, err := api.NewHandler(nil, config.Sample(), disassembly.DefaultCatalog())
	assert.Error(t, err)

	wb := config.Sample()
	wb.Times = nil
	_, err = api.NewHandler(&config.Env{}, wb, disassembly.DefaultCatalog())
	assert.ErrorIs(t, err, config.ErrMissingSheet)
}

func TestHealth(t *testing.T) {
	h := newHandler(t)
	rec, env := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestSchedulerConfig(t *testing.T) {
	h := newHandler(t)
	_, env := do(t, h, http.MethodGet, "/scheduler/config", "")
	require.True(t, env.Success)

	var data struct {
		Jobs       int        `json:"jobs"`
		CycleTime  int        `json:"cycleTime"`
		LowerBound int        `json:"lowerBound"`
		Algorithms []opt.Kind `json:"algorithms"`
		Pairs      []struct {
			Pre int `json:"pre"`
			Suc int `json:"suc"`
		} `json:"pairs"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 18, data.Jobs)
	assert.Equal(t, 20, data.CycleTime)
	// Σd = 180, такт 20
	assert.Equal(t, 9, data.LowerBound)
	assert.Equal(t, opt.Kinds(), data.Algorithms)
	require.Len(t, data.Pairs, 20)
	assert.Equal(t, 3, data.Pairs[0].Pre)
	assert.Equal(t, 2, data.Pairs[0].Suc)
}

func TestOptimizeStationsAllKinds(t *testing.T) {
	h := newHandler(t)
	for _, kind := range opt.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/scheduler/optimize/"+string(kind),
				`{"iterations": 5, "population": 10, "seed": 42}`)
			require.True(t, env.Success, env.Message)

			var data struct {
				RunID      string     `json:"runId"`
				Seed       int64      `json:"seed"`
				LowerBound int        `json:"lowerBound"`
				Result     opt.Result `json:"result"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.NotEmpty(t, data.RunID)
			assert.Equal(t, rec.Header().Get("X-Run-Id"), data.RunID)
			assert.Equal(t, int64(42), data.Seed)
			assert.Equal(t, kind, data.Result.Algorithm)
			assert.Len(t, data.Result.Sequence, 18)
			assert.GreaterOrEqual(t, data.Result.Stations, data.LowerBound)
			assert.Equal(t, 5, data.Result.Iterations)
		})
	}
}

func TestOptimizeStationsUsesEnvSeedAndDefaults(t *testing.T) {
	h := newHandler(t)
	_, env := do(t, h, http.MethodPost, "/scheduler/optimize/SA", "")
	require.True(t, env.Success, env.Message)

	var data struct {
		Seed   int64      `json:"seed"`
		Result opt.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(7), data.Seed)
	assert.Equal(t, opt.KindSA, data.Result.Algorithm)
	// 100 поколений из книги, отжиг за это время не остывает
	assert.Equal(t, 100, len(data.Result.History))
}

func TestOptimizeStationsRejects(t *testing.T) {
	h := newHandler(t)
	cases := []struct {
		name string
		path string
		body string
	}{
		{"unknown algorithm", "/scheduler/optimize/hill", `{}`},
		{"bad rate", "/scheduler/optimize/ga", `{"crossoverRate": 1.5}`},
		{"bad neighborhood", "/scheduler/optimize/sa", `{"neighborhood": "reverse"}`},
		{"too many iterations", "/scheduler/optimize/ga", `{"iterations": 5000}`},
		{"unknown field", "/scheduler/optimize/ga", `{"generations": 5}`},
		{"broken json", "/scheduler/optimize/ga", `{"iterations":`},
		{"elite too large", "/scheduler/optimize/ga", `{"population": 4, "elite": 4}`},
		{"cooling rate above one", "/scheduler/optimize/sa", `{"coolingRate": 1.5}`},
		{"zero evaporation", "/scheduler/optimize/aco", `{"rho": 0}`},
		{"negative inertia", "/scheduler/optimize/pso", `{"w": -0.5}`},
		{"zero initial temperature", "/scheduler/optimize/sa", `{"initialTemp": 0}`},
		{"negative cycle time", "/scheduler/optimize/ga", `{"cycleTime": -1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestOptimizeStationsCycleTimeOverride(t *testing.T) {
	h := newHandler(t)

	type run struct {
		CycleTime  int        `json:"cycleTime"`
		LowerBound int        `json:"lowerBound"`
		Result     opt.Result `json:"result"`
	}

	_, env := do(t, h, http.MethodPost, "/scheduler/optimize/ga", `{"iterations": 5, "seed": 3}`)
	require.True(t, env.Success, env.Message)
	var base run
	require.NoError(t, json.Unmarshal(env.Data, &base))
	assert.Equal(t, 20, base.CycleTime)
	assert.Equal(t, 9, base.LowerBound)
	assert.GreaterOrEqual(t, base.Result.Stations, 9)

	// суммарное время 180 укладывается в один такт
	_, env = do(t, h, http.MethodPost, "/scheduler/optimize/ga", `{"iterations": 5, "seed": 3, "cycleTime": 1000}`)
	require.True(t, env.Success, env.Message)
	var wide run
	require.NoError(t, json.Unmarshal(env.Data, &wide))
	assert.Equal(t, 1000, wide.CycleTime)
	assert.Equal(t, 1, wide.LowerBound)
	assert.Equal(t, 1, wide.Result.Stations)

	// общая задача не меняется
	_, env = do(t, h, http.MethodGet, "/scheduler/config", "")
	require.True(t, env.Success, env.Message)
	var cfg struct {
		CycleTime  int `json:"cycleTime"`
		LowerBound int `json:"lowerBound"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.Equal(t, 20, cfg.CycleTime)
	assert.Equal(t, 9, cfg.LowerBound)
}

func TestOptimizeStationsAcceptsAlgorithmParams(t *testing.T) {
	h := newHandler(t)
	cases := map[string]string{
		"pso": `{"iterations": 3, "population": 10, "w": 0.5, "c1": 1.5, "c2": 1.5}`,
		"aco": `{"iterations": 3, "population": 10, "alpha": 2, "beta": 3, "rho": 0.3}`,
		"sa":  `{"iterations": 3, "initialTemp": 50, "coolingRate": 0.9}`,
	}
	for algo, body := range cases {
		t.Run(algo, func(t *testing.T) {
			_, env := do(t, h, http.MethodPost, "/scheduler/optimize/"+algo, body)
			require.True(t, env.Success, env.Message)
		})
	}
}

func TestCompareStations(t *testing.T) {
	h := newHandler(t)
	_, env := do(t, h, http.MethodPost, "/scheduler/optimize/compare",
		`{"algorithms": ["ga", "SA"], "iterations": 3, "population": 10, "seed": 1}`)
	require.True(t, env.Success, env.Message)

	var data struct {
		Seed       int64        `json:"seed"`
		LowerBound int          `json:"lowerBound"`
		Results    []opt.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(1), data.Seed)
	assert.Equal(t, 9, data.LowerBound)
	require.Len(t, data.Results, 2)
	assert.Equal(t, opt.KindGA, data.Results[0].Algorithm)
	assert.Equal(t, opt.KindSA, data.Results[1].Algorithm)
	for _, res := range data.Results {
		assert.Equal(t, 3, res.Iterations)
		assert.GreaterOrEqual(t, res.Stations, 9)
	}

	_, env = do(t, h, http.MethodPost, "/scheduler/optimize/compare", `{"iterations": 2, "cycleTime": 1000}`)
	require.True(t, env.Success, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.LowerBound)
	assert.Len(t, data.Results, len(opt.Kinds()))

	_, env = do(t, h, http.MethodPost, "/scheduler/optimize/compare", `{"algorithms": ["ga", "hill"]}`)
	assert.False(t, env.Success)
	_, env = do(t, h, http.MethodPost, "/scheduler/optimize/compare", `{"algorithms": ["ga"], "rho": 1}`)
	assert.False(t, env.Success)
}

func TestDatasets(t *testing.T) {
	h := newHandler(t)
	_, env := do(t, h, http.MethodGet, "/disassembly/datasets", "")
	require.True(t, env.Success)

	var data struct {
		Datasets []struct {
			Name  string `json:"name"`
			Parts int    `json:"parts"`
		} `json:"datasets"`
		Algorithms []opt.ParetoKind `json:"algorithms"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Datasets, 1)
	assert.Equal(t, "stapler", data.Datasets[0].Name)
	assert.Equal(t, 18, data.Datasets[0].Parts)
	assert.Equal(t, opt.ParetoKinds(), data.Algorithms)
}

func TestOptimizePareto(t *testing.T) {
	h := newHandler(t)
	_, env := do(t, h, http.MethodPost, "/disassembly/optimize/nsga2",
		`{"dataset": "stapler", "iterations": 3, "population": 10}`)
	require.True(t, env.Success, env.Message)

	var data struct {
		RunID   string           `json:"runId"`
		Dataset string           `json:"dataset"`
		Result  opt.ParetoResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.RunID)
	assert.Equal(t, "stapler", data.Dataset)
	assert.Equal(t, opt.KindNSGA2, data.Result.Algorithm)
	assert.NotEmpty(t, data.Result.Front)
	require.Len(t, data.Result.History, 3)
	for i := 1; i < len(data.Result.History); i++ {
		assert.GreaterOrEqual(t, data.Result.History[i], data.Result.History[i-1])
	}
	assert.Len(t, data.Result.Best.Sequence, 18)
}

func TestOptimizeParetoHypervolumeIgnoresSolverSeed(t *testing.T) {
	h := newHandler(t)
	p, err := disassembly.NewDatasetProblem(disassembly.Stapler())
	require.NoError(t, err)

	for _, seed := range []string{"1", "2", "99"} {
		_, env := do(t, h, http.MethodPost, "/disassembly/optimize/nsga2",
			`{"iterations": 3, "population": 10, "seed": `+seed+`}`)
		require.True(t, env.Success, env.Message)

		var data struct {
			Result opt.ParetoResult `json:"result"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		points := make([]moo.Point, len(data.Result.Front))
		for i, m := range data.Result.Front {
			points[i] = m.Point
		}
		// гиперобъём считается по одной и той же выборке набора при любом сиде
		assert.Equal(t, p.Sampler.Set(points), data.Result.Best.Hypervolume, "seed %s", seed)
	}
}

func TestOptimizeParetoRejects(t *testing.T) {
	h := newHandler(t)

	_, env := do(t, h, http.MethodPost, "/disassembly/optimize/kg", `{"dataset": "toaster"}`)
	assert.False(t, env.Success)

	_, env = do(t, h, http.MethodPost, "/disassembly/optimize/moead", `{}`)
	assert.False(t, env.Success)

	_, env = do(t, h, http.MethodPost, "/disassembly/optimize/kg", `{"population": 1}`)
	assert.False(t, env.Success)
}

func TestCompare(t *testing.T) {
	h := newHandler(t)
	_, env := do(t, h, http.MethodPost, "/disassembly/compare",
		`{"algorithms": ["npso", "KG"], "iterations": 3, "population": 10, "seed": 1}`)
	require.True(t, env.Success, env.Message)

	var data struct {
		Seed    int64              `json:"seed"`
		Results []opt.ParetoResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(1), data.Seed)
	require.Len(t, data.Results, 2)
	assert.Equal(t, opt.KindNPSO, data.Results[0].Algorithm)
	assert.Equal(t, opt.KindKG, data.Results[1].Algorithm)
	for _, res := range data.Results {
		assert.Equal(t, 3, res.Iterations)
		assert.NotEmpty(t, res.Front)
	}

	_, env = do(t, h, http.MethodPost, "/disassembly/compare", `{"algorithms": ["kg", ""]}`)
	assert.False(t, env.Success)
}

func TestRecovererTurnsPanicIntoServerError(t *testing.T) {
	h := newHandler(t)
	h.Mux.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec, env := do(t, h, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
}
