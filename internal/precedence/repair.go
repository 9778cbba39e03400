package precedence

import "fmt"

// Repair возвращает допустимую копию seq.
// Один прямой проход: для a < b, если seq[b] предшествует seq[a], элементы меняются местами.
// После шага a на позиции a нет операции, у которой предшественник стоит правее,
// поэтому для ациклического замыкания результат допустим. Для допустимого входа — no-op.
func (m *Matrix) Repair(seq []int) []int {
	out := make([]int, len(seq))
	copy(out, seq)
	m.RepairInPlace(out)
	return out
}

// RepairInPlace — то же, что Repair, но без копирования.
func (m *Matrix) RepairInPlace(seq []int) {
	n := len(seq)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if m.Precedes(seq[b], seq[a]) {
				seq[a], seq[b] = seq[b], seq[a]
			}
		}
	}
}

// ValidatePermutation проверяет, что seq — перестановка 1..n.
func ValidatePermutation(seq []int, n int) error {
	if len(seq) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrNotPermutation, n, len(seq))
	}
	seen := make([]bool, n)
	for i, v := range seq {
		if v < 1 || v > n {
			return fmt.Errorf("%w: seq[%d]=%d out of range [1,%d]", ErrNotPermutation, i, v, n)
		}
		if seen[v-1] {
			return fmt.Errorf("%w: duplicate operation id %d", ErrNotPermutation, v)
		}
		seen[v-1] = true
	}
	return nil
}
