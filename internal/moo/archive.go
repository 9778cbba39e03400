package moo

import (
	"sort"
	"strconv"
	"strings"
)

// Member — кандидат многокритериальной задачи с оценкой и точкой разреза.
type Member struct {
	Sequence []int `json:"sequence"`
	Point    Point `json:"point"`
	Cut      int   `json:"cut"`
}

// Clone возвращает глубокую копию.
func (m Member) Clone() Member {
	m.Sequence = append([]int(nil), m.Sequence...)
	return m
}

// Archive — множество взаимно недоминируемых кандидатов,
// ограниченное ёмкостью через усечение по crowding distance.
type Archive struct {
	capacity int
	members  []Member
}

// NewArchive: capacity <= 0 — без ограничения.
func NewArchive(capacity int) *Archive {
	return &Archive{capacity: capacity}
}

func (a *Archive) Len() int { return len(a.members) }

// Members возвращает копию содержимого.
func (a *Archive) Members() []Member {
	out := make([]Member, len(a.members))
	for i, m := range a.members {
		out[i] = m.Clone()
	}
	return out
}

func (a *Archive) Points() []Point {
	return pointsOf(a.members)
}

// Merge объединяет архив с кандидатами и оставляет только недоминируемых.
// Одинаковые последовательности хранятся один раз.
func (a *Archive) Merge(cands []Member) {
	union := make([]Member, 0, len(a.members)+len(cands))
	seen := make(map[string]bool, cap(union))
	add := func(m Member) {
		key := sequenceKey(m.Sequence)
		if seen[key] {
			return
		}
		seen[key] = true
		union = append(union, m.Clone())
	}
	for _, m := range a.members {
		add(m)
	}
	for _, m := range cands {
		add(m)
	}

	points := pointsOf(union)
	keep := NonDominated(points)
	next := make([]Member, len(keep))
	for i, idx := range keep {
		next[i] = union[idx]
	}
	a.members = Truncate(next, a.capacity)
}

// Truncate оставляет не более capacity членов с наибольшим crowding distance.
func Truncate(members []Member, capacity int) []Member {
	if capacity <= 0 || len(members) <= capacity {
		return members
	}
	points := pointsOf(members)
	front := make([]int, len(members))
	for i := range front {
		front[i] = i
	}
	crowd := CrowdingDistance(front, points)
	sort.SliceStable(front, func(i, j int) bool {
		return crowd[front[i]] > crowd[front[j]]
	})
	out := make([]Member, capacity)
	for i := 0; i < capacity; i++ {
		out[i] = members[front[i]]
	}
	return out
}

func pointsOf(members []Member) []Point {
	out := make([]Point, len(members))
	for i, m := range members {
		out[i] = m.Point
	}
	return out
}

func sequenceKey(seq []int) string {
	var b strings.Builder
	for i, v := range seq {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
