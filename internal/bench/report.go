package bench

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

var (
	stationsHeader = []string{
		"algo", "case", "ops", "runs", "iterations",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"stations_best", "stations_mean", "stations_std",
		"lower_bound", "evaluations_mean",
	}
	paretoHeader = []string{
		"algo", "dataset", "runs", "iterations",
		"time_mean_ms", "time_std_ms",
		"hv_best", "hv_mean", "hv_std",
		"profit_mean", "carbon_mean", "front_size_mean",
	}
)

func (r Record) row() []any {
	return []any{
		r.Algo, r.Case, r.Ops, r.Runs, r.Iterations,
		r.TimeBestMs, r.TimeMeanMs, r.TimeStdMs,
		r.StationsBest, r.StationsMean, r.StationsStd,
		r.LowerBound, r.EvaluationsMean,
	}
}

func (r ParetoRecord) row() []any {
	return []any{
		r.Algo, r.Dataset, r.Runs, r.Iterations,
		r.TimeMeanMs, r.TimeStdMs,
		r.HVBest, r.HVMean, r.HVStd,
		r.ProfitMean, r.CarbonMean, r.FrontSizeMean,
	}
}

func WriteCSV(path string, records []Record) error {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = r.row()
	}
	return writeCSV(path, stationsHeader, rows)
}

func WriteParetoCSV(path string, records []ParetoRecord) error {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = r.row()
	}
	return writeCSV(path, paretoHeader, rows)
}

func writeCSV(path string, header []string, rows [][]any) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = format(v)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

const (
	SheetStations = "Stations"
	SheetPareto   = "Pareto"
)

// WriteXLSX сохраняет оба отчёта в одну книгу: лист Stations и лист Pareto.
func WriteXLSX(path string, records []Record, pareto []ParetoRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStations); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetPareto); err != nil {
		return err
	}

	stations := make([][]any, len(records))
	for i, r := range records {
		stations[i] = r.row()
	}
	if err := writeSheet(f, SheetStations, stationsHeader, stations); err != nil {
		return err
	}

	rows := make([][]any, len(pareto))
	for i, r := range pareto {
		rows[i] = r.row()
	}
	if err := writeSheet(f, SheetPareto, paretoHeader, rows); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("sheet %s: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	return nil
}
