package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"seqOpt/internal/linebalance"
)

func TestSampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xlsx")
	require.NoError(t, WriteSample(path))

	w, err := LoadWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, Sample(), w)

	inst, err := w.Instance()
	require.NoError(t, err)
	p, err := linebalance.NewProblem(inst)
	require.NoError(t, err)
	assert.Equal(t, 18, p.Matrix.N())
}

func TestLoadWorkbookSortsJobTimesAndTrimsCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetParameters))
	_, err := f.NewSheet(SheetConstraints)
	require.NoError(t, err)
	_, err = f.NewSheet(SheetJobTimes)
	require.NoError(t, err)

	rows := map[string][][]any{
		SheetParameters: {
			{"name", "value"},
			{" num_jobs ", "3.0"},
			{"CYCLE_TIME", 10},
			{"UNKNOWN", "x"},
		},
		SheetConstraints: {
			{"Predecessor", "Successor"},
			{1, 3},
		},
		SheetJobTimes: {
			{"JobId", "Time"},
			{3, 9},
			{1, 4},
			{2, 6},
		},
	}
	for sheet, data := range rows {
		require.NoError(t, writeRows(f, sheet, data))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	w, err := LoadWorkbook(path)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Jobs)
	assert.Equal(t, 10, w.CycleTime)
	assert.Equal(t, 100, w.PopulationSize)
	assert.Equal(t, []int{4, 6, 9}, w.Times)
	require.Len(t, w.Pairs, 1)
	assert.Equal(t, 3, w.Pairs[0].Suc)
}

func TestLoadWorkbookErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadWorkbook(filepath.Join(dir, "absent.xlsx"))
	assert.Error(t, err)

	noConstraints := filepath.Join(dir, "no_constraints.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetParameters))
	require.NoError(t, writeRows(f, SheetParameters, [][]any{{"Name", "Value"}, {ParamNumJobs, 2}, {ParamCycleTime, 5}}))
	require.NoError(t, f.SaveAs(noConstraints))
	require.NoError(t, f.Close())
	_, err = LoadWorkbook(noConstraints)
	assert.ErrorIs(t, err, ErrMissingSheet)

	noCycle := filepath.Join(dir, "no_cycle.xlsx")
	f = excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetParameters))
	_, err = f.NewSheet(SheetConstraints)
	require.NoError(t, err)
	require.NoError(t, writeRows(f, SheetParameters, [][]any{{"Name", "Value"}, {ParamNumJobs, 2}}))
	require.NoError(t, writeRows(f, SheetConstraints, [][]any{{"Predecessor", "Successor"}}))
	require.NoError(t, f.SaveAs(noCycle))
	require.NoError(t, f.Close())
	_, err = LoadWorkbook(noCycle)
	assert.ErrorIs(t, err, ErrMissingParam)

	badValue := filepath.Join(dir, "bad_value.xlsx")
	f = excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetParameters))
	_, err = f.NewSheet(SheetConstraints)
	require.NoError(t, err)
	require.NoError(t, writeRows(f, SheetParameters, [][]any{{"Name", "Value"}, {ParamNumJobs, 2.5}, {ParamCycleTime, 5}}))
	require.NoError(t, writeRows(f, SheetConstraints, [][]any{{"Predecessor", "Successor"}}))
	require.NoError(t, f.SaveAs(badValue))
	require.NoError(t, f.Close())
	_, err = LoadWorkbook(badValue)
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestLoadWorkbookRejectsBadJobIds(t *testing.T) {
	cases := []struct {
		name string
		ids  []int
	}{
		{"gap", []int{1, 2, 7}},
		{"repeated", []int{1, 2, 2}},
		{"zero", []int{0, 1, 2}},
		{"missing job", []int{1, 2}},
		{"extra job", []int{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "jobs.xlsx")
			f := excelize.NewFile()
			require.NoError(t, f.SetSheetName("Sheet1", SheetParameters))
			_, err := f.NewSheet(SheetConstraints)
			require.NoError(t, err)
			_, err = f.NewSheet(SheetJobTimes)
			require.NoError(t, err)

			times := [][]any{{"JobId", "Time"}}
			for _, id := range tc.ids {
				times = append(times, []any{id, 5})
			}
			require.NoError(t, writeRows(f, SheetParameters, [][]any{{"Name", "Value"}, {ParamNumJobs, 3}, {ParamCycleTime, 10}}))
			require.NoError(t, writeRows(f, SheetConstraints, [][]any{{"Predecessor", "Successor"}}))
			require.NoError(t, writeRows(f, SheetJobTimes, times))
			require.NoError(t, f.SaveAs(path))
			require.NoError(t, f.Close())

			_, err = LoadWorkbook(path)
			assert.ErrorIs(t, err, ErrBadValue)
		})
	}
}

func TestInstanceNeedsJobTimes(t *testing.T) {
	w := Sample()
	w.Times = nil
	_, err := w.Instance()
	assert.ErrorIs(t, err, ErrMissingSheet)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SEQOPT_SERVER_PORT", "9090")
	t.Setenv("SEQOPT_SOLVER_SEED", "42")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(42), cfg.Solver.Seed)
	assert.Equal(t, 2000, cfg.Solver.MaxIterations)
	assert.Equal(t, "development", cfg.Environment)

	t.Setenv("SEQOPT_SOLVER_MAX_ITERATIONS", "many")
	_, err = LoadEnv()
	assert.Error(t, err)
}
