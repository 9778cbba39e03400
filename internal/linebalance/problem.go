package linebalance

import "seqOpt/internal/precedence"

// Problem связывает экземпляр, матрицу замыкания и оценщик.
// Строится один раз и разделяется между солверами только на чтение.
type Problem struct {
	Instance  *Instance
	Matrix    *precedence.Matrix
	Evaluator *Evaluator
}

func NewProblem(inst *Instance) (*Problem, error) {
	eval, err := NewEvaluator(inst)
	if err != nil {
		return nil, err
	}
	m, err := precedence.Build(inst.Ops, inst.Pairs)
	if err != nil {
		return nil, err
	}
	return &Problem{Instance: inst, Matrix: m, Evaluator: eval}, nil
}
