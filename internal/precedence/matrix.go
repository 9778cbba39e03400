package precedence

import "fmt"

// Pair — прямое ограничение: Pre должна быть выполнена раньше Suc.
// Идентификаторы операций 1-базовые.
type Pair struct {
	Pre int
	Suc int
}

// Matrix — транзитивное замыкание отношения предшествования над N операциями.
// После Build только читается и может разделяться между солверами.
type Matrix struct {
	n      int
	reach  []bool // reach[i*n+j]: операция i+1 предшествует j+1
	direct [][]int
	pairs  []Pair
}

// Build строит матрицу замыкания по прямым парам.
// Циклы отклоняются с ErrCycle.
func Build(n int, pairs []Pair) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSize, n)
	}

	m := &Matrix{
		n:      n,
		reach:  make([]bool, n*n),
		direct: make([][]int, n),
		pairs:  make([]Pair, len(pairs)),
	}
	copy(m.pairs, pairs)

	// Прямые рёбра
	for idx, p := range pairs {
		if p.Pre < 1 || p.Pre > n || p.Suc < 1 || p.Suc > n {
			return nil, fmt.Errorf("%w: pairs[%d]=(%d,%d), n=%d", ErrPairOutOfRange, idx, p.Pre, p.Suc, n)
		}
		i, j := p.Pre-1, p.Suc-1
		if !m.reach[i*n+j] {
			m.reach[i*n+j] = true
			m.direct[j] = append(m.direct[j], p.Pre)
		}
	}

	// Замыкание Уоршелла: k -> i -> j
	for k := 0; k < n; k++ {
		rowK := m.reach[k*n : (k+1)*n]
		for i := 0; i < n; i++ {
			if !m.reach[i*n+k] {
				continue
			}
			rowI := m.reach[i*n : (i+1)*n]
			for j := 0; j < n; j++ {
				if rowK[j] {
					rowI[j] = true
				}
			}
		}
	}

	// Для ациклического входа диагональ пуста
	for i := 0; i < n; i++ {
		if m.reach[i*n+i] {
			return nil, fmt.Errorf("%w: operation %d reaches itself", ErrCycle, i+1)
		}
	}
	return m, nil
}

// MustBuild — Build с паникой на ошибке. Для статических наборов данных.
func MustBuild(n int, pairs []Pair) *Matrix {
	m, err := Build(n, pairs)
	if err != nil {
		panic(err)
	}
	return m
}

// N возвращает число операций.
func (m *Matrix) N() int { return m.n }

// Precedes сообщает, должна ли операция i выполняться раньше j.
func (m *Matrix) Precedes(i, j int) bool {
	return m.reach[(i-1)*m.n+(j-1)]
}

// Direct возвращает прямых предшественников операции j.
func (m *Matrix) Direct(j int) []int {
	return m.direct[j-1]
}

// Pairs возвращает копию исходных пар.
func (m *Matrix) Pairs() []Pair {
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Violations считает пары позиций a < b, где seq[b] обязана предшествовать seq[a].
func (m *Matrix) Violations(seq []int) int {
	cnt := 0
	for a := 0; a < len(seq); a++ {
		for b := a + 1; b < len(seq); b++ {
			if m.Precedes(seq[b], seq[a]) {
				cnt++
			}
		}
	}
	return cnt
}

// Feasible — последовательность не нарушает ни одного ограничения.
func (m *Matrix) Feasible(seq []int) bool {
	return m.Violations(seq) == 0
}
