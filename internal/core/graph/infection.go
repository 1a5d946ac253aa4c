package graph

import (
	"fmt"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
)

// infectWhile assigns version to users in BFS order from rootID while cont
// holds for the running count. cont is checked before each dequeued user, so
// the infected set is always a prefix of a BFS ordering. The updated count is
// returned; visited is extended in place.
func (g *Graph) infectWhile(
	rootID, version int,
	cont func(infected int) bool,
	infected int,
	visited domain.IDSet,
) int {
	visited.Add(rootID)
	queue := []int{rootID}

	for len(queue) > 0 && cont(infected) {
		u := g.users[queue[0]]
		queue = queue[1:]

		u.Version = version
		infected++

		g.neighbors(u, func(id int) {
			if !visited.Has(id) {
				visited.Add(id)
				queue = append(queue, id)
			}
		})
	}

	return infected
}

// TotalInfection sets version on every user of rootID's component and
// returns the component size.
func (g *Graph) TotalInfection(rootID, version int) (int, error) {
	if _, ok := g.users[rootID]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUserNotFound, rootID)
	}

	return g.infectWhile(rootID, version, always, 0, domain.IDSet{}), nil
}

// TotalInfectionMultiple totally infects the component of each root. All
// roots are resolved first; if one is missing nothing is infected.
func (g *Graph) TotalInfectionMultiple(rootIDs []int, version int) (int, error) {
	for _, id := range rootIDs {
		if _, ok := g.users[id]; !ok {
			return 0, fmt.Errorf("%w: %d", ErrUserNotFound, id)
		}
	}

	infected := 0
	for _, id := range rootIDs {
		n, err := g.TotalInfection(id, version)
		if err != nil {
			return infected, err
		}
		infected += n
	}

	return infected, nil
}

// LimitedInfectionSimple infects exactly min(target, Len()) users. Components
// are infected whole in ascending order of their smallest id; only the last
// one touched may end up partially infected.
func (g *Graph) LimitedInfectionSimple(target, version int) (int, error) {
	if target < 0 {
		return 0, fmt.Errorf("%w: target cannot be negative (%d)", ErrInvalidArgument, target)
	}

	below := func(infected int) bool { return infected < target }
	visited := make(domain.IDSet, len(g.users))
	infected := 0

	for _, id := range g.sortedIDs() {
		if infected == target {
			break
		}
		if visited.Has(id) {
			continue
		}
		infected = g.infectWhile(id, version, below, infected, visited)
	}

	return infected, nil
}

func always(int) bool { return true }
