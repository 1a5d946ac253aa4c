package graph

import (
	"fmt"
	"sort"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
)

// Graph owns every user of a session, the id counter and the component cache.
type Graph struct {
	users  map[int]*domain.User
	nextID int
	cache  componentCache

	maxTableCells int
}

// New creates an empty graph. The first user gets id 1.
func New(opts ...Option) *Graph {
	g := &Graph{
		users:         make(map[int]*domain.User),
		nextID:        1,
		cache:         componentCache{state: cacheDirty},
		maxTableCells: DefaultMaxTableCells,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// CreateUser adds a user with no relationships and returns its id.
func (g *Graph) CreateUser(version int) int {
	id := g.nextID
	g.nextID++
	g.users[id] = domain.NewUser(id, version)
	g.cache.invalidate()

	return id
}

// LookupUser returns the user with the given id, if present.
func (g *Graph) LookupUser(id int) (*domain.User, bool) {
	u, ok := g.users[id]

	return u, ok
}

// RemoveUser deletes a user and strips it from every neighbor's sets.
func (g *Graph) RemoveUser(id int) error {
	u, ok := g.users[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}

	for studentID := range u.Students {
		if s, ok := g.users[studentID]; ok {
			s.CoachedBy.Remove(id)
		}
	}
	for coachID := range u.CoachedBy {
		if c, ok := g.users[coachID]; ok {
			c.Students.Remove(id)
		}
	}

	delete(g.users, id)
	g.cache.invalidate()

	return nil
}

// AddEdge makes coachID a coach of studentID. Adding an existing edge is a no-op.
func (g *Graph) AddEdge(coachID, studentID int) error {
	coach, student, err := g.endpoints(coachID, studentID)
	if err != nil {
		return err
	}
	if coachID == studentID {
		return fmt.Errorf("%w: %d", ErrSelfEdge, coachID)
	}
	if coach.Students.Has(studentID) {
		return nil
	}

	coach.Students.Add(studentID)
	student.CoachedBy.Add(coachID)
	g.cache.invalidate()

	return nil
}

// RemoveEdge drops the coaching relationship if it exists.
func (g *Graph) RemoveEdge(coachID, studentID int) error {
	coach, student, err := g.endpoints(coachID, studentID)
	if err != nil {
		return err
	}
	if !coach.Students.Has(studentID) {
		return nil
	}

	coach.Students.Remove(studentID)
	student.CoachedBy.Remove(coachID)
	g.cache.invalidate()

	return nil
}

// endpoints resolves both ends of an edge before anything is mutated.
func (g *Graph) endpoints(coachID, studentID int) (*domain.User, *domain.User, error) {
	coach, ok := g.users[coachID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: coach %d", ErrUserNotFound, coachID)
	}
	student, ok := g.users[studentID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: student %d", ErrUserNotFound, studentID)
	}

	return coach, student, nil
}

// Users returns every user ordered by id.
func (g *Graph) Users() []*domain.User {
	users := make([]*domain.User, 0, len(g.users))
	for _, id := range g.sortedIDs() {
		users = append(users, g.users[id])
	}

	return users
}

// Len reports the number of users.
func (g *Graph) Len() int {
	return len(g.users)
}

// Clear removes all users. Ids handed out so far are not reused.
func (g *Graph) Clear() {
	g.users = make(map[int]*domain.User)
	g.cache.invalidate()
}

func (g *Graph) sortedIDs() []int {
	ids := make([]int, 0, len(g.users))
	for id := range g.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// neighbors visits the undirected neighborhood of u: students first, then coaches.
// Both sets are walked in ascending order so traversals are reproducible.
func (g *Graph) neighbors(u *domain.User, fn func(id int)) {
	for _, id := range u.Students.Sorted() {
		fn(id)
	}
	for _, id := range u.CoachedBy.Sorted() {
		fn(id)
	}
}
