// Package opt задаёт общий контракт стратегий: один вызов Evolve — одна итерация,
// после которой доступно лучшее найденное решение.
package opt

import (
	"errors"
	"fmt"
	"strings"

	"seqOpt/internal/disassembly"
	"seqOpt/internal/moo"
)

// Kind — закрытый набор однокритериальных стратегий.
type Kind string

const (
	KindGA  Kind = "ga"
	KindPSO Kind = "pso"
	KindACO Kind = "aco"
	KindSA  Kind = "sa"
	KindTS  Kind = "ts"
)

// Kinds перечисляет однокритериальные стратегии в каноническом порядке.
func Kinds() []Kind { return []Kind{KindGA, KindPSO, KindACO, KindSA, KindTS} }

// ParetoKind — закрытый набор многокритериальных стратегий.
type ParetoKind string

const (
	KindKG          ParetoKind = "kg"
	KindNSGA2       ParetoKind = "nsga2"
	KindNSGA2Legacy ParetoKind = "nsga2_legacy"
	KindNPSO        ParetoKind = "npso"
	KindPSOPPX      ParetoKind = "pso_ppx"
	KindBlockGA     ParetoKind = "block_ga"
)

func ParetoKinds() []ParetoKind {
	return []ParetoKind{KindKG, KindNSGA2, KindNSGA2Legacy, KindNPSO, KindPSOPPX, KindBlockGA}
}

// Snapshot — лучшее допустимое решение однокритериальной стратегии.
type Snapshot struct {
	Sequence []int `json:"sequence"`
	Stations int   `json:"stations"`
}

// Stepper — однокритериальная стратегия.
type Stepper interface {
	Evolve() Snapshot
}

// ParetoSnapshot — сбалансированное решение (ближайшее к утопии) и гиперобъём архива.
type ParetoSnapshot struct {
	Sequence    []int             `json:"sequence"`
	Score       disassembly.Score `json:"score"`
	Hypervolume float64           `json:"hypervolume"`
}

// ParetoStepper — многокритериальная стратегия.
type ParetoStepper interface {
	Evolve() ParetoSnapshot
	Front() []moo.Member
}

// Finisher реализуют стратегии с собственным условием остановки (SA).
type Finisher interface {
	Done() bool
}

// Counter реализуют стратегии, считающие вызовы оценщика.
type Counter interface {
	Evaluations() int
}

// ErrUnknownKind — имя стратегии не входит в закрытый набор.
var ErrUnknownKind = errors.New("opt: unknown algorithm")

// ParseKind принимает имя без учёта регистра.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func ParseParetoKind(s string) (ParetoKind, error) {
	k := ParetoKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ParetoKinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
