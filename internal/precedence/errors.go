package precedence

import "errors"

var (
	// ErrInvalidSize — число операций должно быть > 0.
	ErrInvalidSize = errors.New("precedence: operation count must be > 0")
	// ErrPairOutOfRange — пара ссылается на операцию вне [1..N].
	ErrPairOutOfRange = errors.New("precedence: pair references operation out of range")
	// ErrCycle — отношение предшествования содержит цикл.
	ErrCycle = errors.New("precedence: cycle detected")
	// ErrNotPermutation — последовательность не является перестановкой 1..N.
	ErrNotPermutation = errors.New("precedence: sequence is not a permutation")
)
