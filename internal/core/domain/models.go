package domain

import "sort"

// IDSet is a set of user IDs.
type IDSet map[int]struct{}

// NewIDSet creates a set holding the given ids.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}

	return s
}

func (s IDSet) Has(id int) bool {
	_, ok := s[id]

	return ok
}

func (s IDSet) Add(id int) {
	s[id] = struct{}{}
}

func (s IDSet) Remove(id int) {
	delete(s, id)
}

func (s IDSet) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// User is a node of the coaching graph. Relationships are stored as ids and
// resolved through the graph that owns the user.
type User struct {
	ID        int
	Version   int
	Students  IDSet // users this user coaches
	CoachedBy IDSet // users coaching this user
}

// NewUser creates a user without relationships.
func NewUser(id, version int) *User {
	return &User{
		ID:        id,
		Version:   version,
		Students:  IDSet{},
		CoachedBy: IDSet{},
	}
}

// Component is a connected component identified by its smallest user id.
type Component struct {
	Root int
	Size int
}

// CheckReport summarizes a randomized self-check run.
type CheckReport struct {
	Trials     int
	Users      int
	Components int
	Infected   int
	Infeasible int
}
