package graph

import (
	"fmt"
	"maps"
	"sort"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
)

type cacheState uint8

const (
	cacheDirty cacheState = iota
	cacheClean
)

// componentCache maps the smallest id of each component to the component size.
// sizes is only meaningful while state == cacheClean.
type componentCache struct {
	state cacheState
	sizes map[int]int
}

func (c *componentCache) invalidate() {
	c.state = cacheDirty
}

// ComponentSize counts the users reachable from rootID, treating edges as
// undirected. Every reached id is added to visited, which may be shared
// across calls so that a full sweep never visits a user twice. A nil visited
// set is allowed.
func (g *Graph) ComponentSize(rootID int, visited domain.IDSet) (int, error) {
	if _, ok := g.users[rootID]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUserNotFound, rootID)
	}
	if visited == nil {
		visited = domain.IDSet{}
	}

	return g.componentSize(rootID, visited), nil
}

func (g *Graph) componentSize(rootID int, visited domain.IDSet) int {
	visited.Add(rootID)
	queue := []int{rootID}
	size := 0

	for qi := 0; qi < len(queue); qi++ {
		u := g.users[queue[qi]]
		size++
		g.neighbors(u, func(id int) {
			if !visited.Has(id) {
				visited.Add(id)
				queue = append(queue, id)
			}
		})
	}

	return size
}

// ComponentSizes returns representative id → component size for every
// component. A clean cache is returned without any traversal.
func (g *Graph) ComponentSizes() map[int]int {
	return maps.Clone(g.componentSizes())
}

// componentSizes returns the cache itself; callers must not modify it.
func (g *Graph) componentSizes() map[int]int {
	if g.cache.state == cacheClean {
		return g.cache.sizes
	}

	sizes := make(map[int]int)
	visited := make(domain.IDSet, len(g.users))
	for _, id := range g.sortedIDs() {
		if visited.Has(id) {
			continue
		}
		sizes[id] = g.componentSize(id, visited)
	}

	g.cache = componentCache{state: cacheClean, sizes: sizes}

	return sizes
}

// Components returns the cached components ordered by representative id.
func (g *Graph) Components() []domain.Component {
	sizes := g.componentSizes()
	comps := make([]domain.Component, 0, len(sizes))
	for root, size := range sizes {
		comps = append(comps, domain.Component{Root: root, Size: size})
	}
	sort.Slice(comps, func(i, j int) bool {
		return comps[i].Root < comps[j].Root
	})

	return comps
}
