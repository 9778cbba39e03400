// Package api — HTTP-интерфейс к стратегиям оптимизации.
package api

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"

	"seqOpt/internal/config"
	"seqOpt/internal/disassembly"
	"seqOpt/internal/linebalance"
)

type Handler struct {
	validate   *validator.Validate
	translator ut.Translator
	env        *config.Env
	workbook   *config.Workbook
	problem    *linebalance.Problem
	datasets   disassembly.Provider

	Mux *chi.Mux
}

// NewHandler строит задачу балансировки из книги один раз; дальше она только читается.
func NewHandler(env *config.Env, wb *config.Workbook, datasets disassembly.Provider) (*Handler, error) {
	if env == nil || wb == nil || datasets == nil {
		return nil, fmt.Errorf("обработчику не переданы настройки, книга или наборы данных")
	}
	inst, err := wb.Instance()
	if err != nil {
		return nil, fmt.Errorf("книга с задачей: %w", err)
	}
	p, err := linebalance.NewProblem(inst)
	if err != nil {
		return nil, fmt.Errorf("книга с задачей: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	ru := ru.New()
	uni := ut.New(ru, ru)
	trans, _ := uni.GetTranslator("ru")
	if err := ru_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		translator: trans,
		env:        env,
		workbook:   wb,
		problem:    p,
		datasets:   datasets,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/health", h.Health)

	// Балансировка линии: минимизация числа станций
	h.Mux.Route("/scheduler", func(r chi.Router) {
		r.Get("/config", h.GetSchedulerConfig)
		r.Group(func(r chi.Router) {
			r.Use(h.runID)
			r.Post("/optimize/compare", h.CompareStations)
			r.Post("/optimize/{algo}", h.OptimizeStations)
		})
	})

	// Разборка: прибыль против углеродного следа
	h.Mux.Route("/disassembly", func(r chi.Router) {
		r.Get("/datasets", h.GetDatasets)
		r.Group(func(r chi.Router) {
			r.Use(h.runID)
			r.Post("/optimize/{algo}", h.OptimizePareto)
			r.Post("/compare", h.ComparePareto)
		})
	})
}
