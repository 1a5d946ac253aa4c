package graph_test

import (
	"testing"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/graph"
	"github.com/stretchr/testify/require"
)

const (
	oldVersion = 1
	newVersion = 2
)

// buildChains adds one path-shaped component per size. Users are created in
// order, so each component holds a contiguous id range.
func buildChains(t *testing.T, g *graph.Graph, sizes ...int) [][]int {
	t.Helper()

	comps := make([][]int, 0, len(sizes))
	for _, size := range sizes {
		members := make([]int, 0, size)
		for i := 0; i < size; i++ {
			id := g.CreateUser(oldVersion)
			if i > 0 {
				require.NoError(t, g.AddEdge(members[i-1], id))
			}
			members = append(members, id)
		}
		comps = append(comps, members)
	}

	return comps
}

func versionsOf(g *graph.Graph) map[int]int {
	versions := make(map[int]int, g.Len())
	for _, u := range g.Users() {
		versions[u.ID] = u.Version
	}

	return versions
}

func infectedIDs(g *graph.Graph, version int) domain.IDSet {
	ids := domain.IDSet{}
	for _, u := range g.Users() {
		if u.Version == version {
			ids.Add(u.ID)
		}
	}

	return ids
}

func requireSymmetric(t *testing.T, g *graph.Graph) {
	t.Helper()

	for _, u := range g.Users() {
		for s := range u.Students {
			student, ok := g.LookupUser(s)
			require.True(t, ok, "student %d of %d missing", s, u.ID)
			require.True(t, student.CoachedBy.Has(u.ID), "%d coaches %d but is not in its coached-by set", u.ID, s)
		}
		for c := range u.CoachedBy {
			coach, ok := g.LookupUser(c)
			require.True(t, ok, "coach %d of %d missing", c, u.ID)
			require.True(t, coach.Students.Has(u.ID), "%d is coached by %d but is not in its students set", u.ID, c)
		}
	}
}
