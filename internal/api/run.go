package api

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// seedFor: сид запроса, иначе из окружения, иначе от текущего времени.
func (h *Handler) seedFor(seed *int64) int64 {
	switch {
	case seed != nil:
		return *seed
	case h.env.Solver.Seed != 0:
		return h.env.Solver.Seed
	default:
		return time.Now().UnixNano()
	}
}

func (h *Handler) iterations(requested, fallback int) (int, error) {
	n := requested
	if n == 0 {
		n = fallback
	}
	if n <= 0 {
		n = h.env.Solver.MaxIterations
	}
	if limit := h.env.Solver.MaxIterations; limit > 0 && n > limit {
		return 0, fmt.Errorf("число итераций %d превышает допустимое (%d)", n, limit)
	}
	return n, nil
}

// runContext ограничивает расчёт по времени поверх контекста запроса.
func (h *Handler) runContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.env.Solver.RunTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), time.Duration(h.env.Solver.RunTimeout)*time.Second)
}

func (h *Handler) runFailed(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.errorResponse(w, r, "расчёт не уложился в отведённое время")
	case errors.Is(err, context.Canceled):
		// клиент ушёл, отвечать некому
	default:
		h.internalServerError(w, r, err)
	}
}

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
