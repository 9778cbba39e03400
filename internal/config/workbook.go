// Package config читает и пишет книгу Excel с задачей балансировки
// и загружает настройки сервиса из окружения.
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"seqOpt/internal/linebalance"
	"seqOpt/internal/precedence"
)

const (
	SheetParameters  = "Parameters"
	SheetConstraints = "Constraints"
	SheetJobTimes    = "JobTimes"
)

const (
	ParamNumJobs        = "NUM_JOBS"
	ParamPopulation     = "POPULATION_SIZE"
	ParamMaxGenerations = "MAX_GENERATIONS"
	ParamCrossoverRate  = "CROSSOVER_RATE"
	ParamCycleTime      = "CYCLE_TIME"
)

var (
	ErrMissingSheet  = errors.New("config: missing sheet")
	ErrMissingColumn = errors.New("config: missing column")
	ErrMissingParam  = errors.New("config: missing parameter")
	ErrBadValue      = errors.New("config: bad value")
)

// Workbook — содержимое книги: параметры, длительности и пары предшествования.
type Workbook struct {
	Jobs           int
	PopulationSize int
	MaxGenerations int
	CrossoverRate  float64
	CycleTime      int

	// Times[i] — длительность работы i+1; пусто, если листа JobTimes нет.
	Times []int
	Pairs []precedence.Pair
}

// Instance превращает книгу в задачу балансировки.
func (w *Workbook) Instance() (*linebalance.Instance, error) {
	if len(w.Times) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSheet, SheetJobTimes)
	}
	return linebalance.NewInstance(w.Jobs, w.CycleTime, w.Times, w.Pairs)
}

// Sample — встроенный пример: 18 работ, ограничения степлера, такт 20.
func Sample() *Workbook {
	return &Workbook{
		Jobs:           18,
		PopulationSize: 100,
		MaxGenerations: 100,
		CrossoverRate:  0.8,
		CycleTime:      20,
		Times:          []int{11, 17, 9, 5, 8, 12, 10, 3, 15, 7, 6, 14, 18, 4, 9, 11, 13, 8},
		Pairs: []precedence.Pair{
			{Pre: 3, Suc: 2}, {Pre: 3, Suc: 1}, {Pre: 4, Suc: 5}, {Pre: 4, Suc: 8}, {Pre: 5, Suc: 7},
			{Pre: 5, Suc: 6}, {Pre: 6, Suc: 9}, {Pre: 7, Suc: 9}, {Pre: 8, Suc: 6}, {Pre: 10, Suc: 12},
			{Pre: 11, Suc: 12}, {Pre: 13, Suc: 12}, {Pre: 14, Suc: 1}, {Pre: 14, Suc: 4}, {Pre: 15, Suc: 12},
			{Pre: 16, Suc: 15}, {Pre: 17, Suc: 15}, {Pre: 18, Suc: 10}, {Pre: 18, Suc: 11}, {Pre: 18, Suc: 13},
		},
	}
}

// LoadWorkbook читает книгу. Листы Parameters и Constraints обязательны,
// JobTimes — нет. Первая строка каждого листа — заголовок.
func LoadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	w := &Workbook{
		PopulationSize: 100,
		MaxGenerations: 100,
		CrossoverRate:  0.8,
	}
	if err := readParameters(f, w); err != nil {
		return nil, err
	}
	if err := readConstraints(f, w); err != nil {
		return nil, err
	}
	if err := readJobTimes(f, w); err != nil {
		return nil, err
	}
	return w, nil
}

func readParameters(f *excelize.File, w *Workbook) error {
	rows, cols, err := table(f, SheetParameters, "Name", "Value")
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		name := strings.ToUpper(strings.TrimSpace(cell(row, cols[0])))
		raw := cell(row, cols[1])
		if name == "" {
			continue
		}
		seen[name] = true

		var err error
		switch name {
		case ParamNumJobs:
			w.Jobs, err = parseInt(raw)
		case ParamPopulation:
			w.PopulationSize, err = parseInt(raw)
		case ParamMaxGenerations:
			w.MaxGenerations, err = parseInt(raw)
		case ParamCrossoverRate:
			w.CrossoverRate, err = parseFloat(raw)
		case ParamCycleTime:
			w.CycleTime, err = parseInt(raw)
		}
		if err != nil {
			return fmt.Errorf("%s row %d (%s): %w", SheetParameters, i+2, name, err)
		}
	}
	for _, required := range []string{ParamNumJobs, ParamCycleTime} {
		if !seen[required] {
			return fmt.Errorf("%w: %s", ErrMissingParam, required)
		}
	}
	return nil
}

func readConstraints(f *excelize.File, w *Workbook) error {
	rows, cols, err := table(f, SheetConstraints, "Predecessor", "Successor")
	if err != nil {
		return err
	}
	for i, row := range rows {
		if cell(row, cols[0]) == "" && cell(row, cols[1]) == "" {
			continue
		}
		pre, err := parseInt(cell(row, cols[0]))
		if err != nil {
			return fmt.Errorf("%s row %d: %w", SheetConstraints, i+2, err)
		}
		suc, err := parseInt(cell(row, cols[1]))
		if err != nil {
			return fmt.Errorf("%s row %d: %w", SheetConstraints, i+2, err)
		}
		w.Pairs = append(w.Pairs, precedence.Pair{Pre: pre, Suc: suc})
	}
	return nil
}

func readJobTimes(f *excelize.File, w *Workbook) error {
	rows, cols, err := table(f, SheetJobTimes, "JobId", "Time")
	if errors.Is(err, ErrMissingSheet) {
		return nil
	}
	if err != nil {
		return err
	}

	type jobTime struct{ id, time int }
	jobs := make([]jobTime, 0, len(rows))
	for i, row := range rows {
		if cell(row, cols[0]) == "" {
			continue
		}
		id, err := parseInt(cell(row, cols[0]))
		if err != nil {
			return fmt.Errorf("%s row %d: %w", SheetJobTimes, i+2, err)
		}
		t, err := parseInt(cell(row, cols[1]))
		if err != nil {
			return fmt.Errorf("%s row %d: %w", SheetJobTimes, i+2, err)
		}
		jobs = append(jobs, jobTime{id: id, time: t})
	}
	if len(jobs) == 0 {
		return nil
	}
	// JobId — ровно 1..NUM_JOBS без повторов
	if len(jobs) != w.Jobs {
		return fmt.Errorf("%w: %s has %d jobs, %s is %d", ErrBadValue, SheetJobTimes, len(jobs), ParamNumJobs, w.Jobs)
	}
	seen := make([]bool, w.Jobs+1)
	for _, j := range jobs {
		if j.id < 1 || j.id > w.Jobs {
			return fmt.Errorf("%w: %s JobId %d out of range 1..%d", ErrBadValue, SheetJobTimes, j.id, w.Jobs)
		}
		if seen[j.id] {
			return fmt.Errorf("%w: %s JobId %d repeated", ErrBadValue, SheetJobTimes, j.id)
		}
		seen[j.id] = true
	}
	// Порядок по JobId: индекс 0 соответствует работе 1
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].id < jobs[b].id })
	w.Times = make([]int, len(jobs))
	for i, j := range jobs {
		w.Times[i] = j.time
	}
	return nil
}

// table возвращает строки данных листа и индексы запрошенных колонок по заголовку.
func table(f *excelize.File, sheet string, columns ...string) ([][]string, []int, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingSheet, sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: %s is empty", ErrMissingSheet, sheet)
	}

	cols := make([]int, len(columns))
	for i, want := range columns {
		cols[i] = -1
		for j, h := range rows[0] {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				cols[i] = j
				break
			}
		}
		if cols[i] < 0 {
			return nil, nil, fmt.Errorf("%w: %s.%s", ErrMissingColumn, sheet, want)
		}
	}
	return rows[1:], cols, nil
}

// GetRows обрезает хвостовые пустые ячейки, поэтому строка может быть короче заголовка.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, s)
	}
	return v, nil
}

// parseInt допускает запись вида "18.0", которую оставляют некоторые редакторы.
func parseInt(s string) (int, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrBadValue, s)
	}
	return int(v), nil
}

// WriteWorkbook сохраняет книгу в формате, который читает LoadWorkbook.
func WriteWorkbook(path string, w *Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetParameters); err != nil {
		return err
	}
	for _, s := range []string{SheetJobTimes, SheetConstraints} {
		if _, err := f.NewSheet(s); err != nil {
			return err
		}
	}

	params := [][]any{
		{"Name", "Value", "Description"},
		{ParamNumJobs, w.Jobs, "число работ"},
		{ParamPopulation, w.PopulationSize, "размер популяции"},
		{ParamMaxGenerations, w.MaxGenerations, "число поколений"},
		{ParamCrossoverRate, w.CrossoverRate, "вероятность кроссовера (0..1)"},
		{ParamCycleTime, w.CycleTime, "время такта"},
	}
	if err := writeRows(f, SheetParameters, params); err != nil {
		return err
	}

	times := [][]any{{"JobId", "Time"}}
	for i, t := range w.Times {
		times = append(times, []any{i + 1, t})
	}
	if err := writeRows(f, SheetJobTimes, times); err != nil {
		return err
	}

	pairs := [][]any{{"Predecessor", "Successor"}}
	for _, p := range w.Pairs {
		pairs = append(pairs, []any{p.Pre, p.Suc})
	}
	if err := writeRows(f, SheetConstraints, pairs); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// WriteSample пишет встроенный пример.
func WriteSample(path string) error {
	return WriteWorkbook(path, Sample())
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &rows[i]); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	return nil
}
