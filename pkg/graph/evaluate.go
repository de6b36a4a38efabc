package graph

import (
	"slices"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
)

// Evaluate returns every person that has, for each condition, an edge of
// the condition's relation whose target equals the object exactly.
//
// The conditions form a conjunction: their order never changes the
// result, which is always in discovery order. An empty condition list
// matches everyone.
func (g *Graph) Evaluate(conditions []common.Condition) []common.Person {
	if len(conditions) == 0 {
		return g.People()
	}

	sets := make([][]int, 0, len(conditions))
	for _, c := range conditions {
		postings := g.index[c.Relation][c.Object]
		if len(postings) == 0 {
			return []common.Person{}
		}
		sets = append(sets, postings)
	}
	slices.SortStableFunc(sets, func(a, b []int) int { return len(a) - len(b) })

	matches := slices.Clone(sets[0])
	for _, set := range sets[1:] {
		matches = intersect(matches, set)
		if len(matches) == 0 {
			return []common.Person{}
		}
	}

	out := make([]common.Person, 0, len(matches))
	for _, pos := range matches {
		out = append(out, clonePerson(g.people[pos]))
	}
	return out
}

// Query evaluates the conditions of q.
func (g *Graph) Query(q common.Query) common.QueryResult {
	return common.QueryResult{
		Query:   q,
		Matches: g.Evaluate(q.Conditions),
	}
}

// intersect keeps the elements of a that also occur in b. Both must be
// sorted ascending; the result reuses a's backing array.
func intersect(a, b []int) []int {
	out := a[:0]
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
