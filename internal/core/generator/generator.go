// Package generator populates a coaching graph with random connected components.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidShape is returned when users and components cannot be combined
// into non-empty components.
var ErrInvalidShape = errors.New("generator: invalid graph shape")

// MaxUsers is the largest population a single Build call creates.
const MaxUsers = 50_000_000

// Builder is the part of the graph the generator needs.
type Builder interface {
	CreateUser(version int) int
	AddEdge(coachID, studentID int) error
}

// Build creates users new users with the given version and wires them into
// exactly components connected components. Every component gets one seed
// user, the rest are spread uniformly, and each further member is attached
// as a student of a random member already connected to its component.
// The returned slices hold the member ids of each component.
func Build(rng *rand.Rand, b Builder, users, components, version int) ([][]int, error) {
	if err := validateShape(users, components); err != nil {
		return nil, err
	}

	ids := make([]int, users)
	for i := range ids {
		ids[i] = b.CreateUser(version)
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	comps := make([][]int, components)
	for i := 0; i < components; i++ {
		comps[i] = []int{ids[i]}
	}
	for _, id := range ids[components:] {
		k := rng.Intn(components)
		comps[k] = append(comps[k], id)
	}

	for _, comp := range comps {
		for i := 1; i < len(comp); i++ {
			coach := comp[rng.Intn(i)]
			if err := b.AddEdge(coach, comp[i]); err != nil {
				return nil, fmt.Errorf("failed to connect %d to %d: %w", coach, comp[i], err)
			}
		}
	}

	return comps, nil
}

func validateShape(users, components int) error {
	switch {
	case users < 0:
		return fmt.Errorf("%w: negative user count %d", ErrInvalidShape, users)
	case users > MaxUsers:
		return fmt.Errorf("%w: %d users exceeds the limit of %d", ErrInvalidShape, users, MaxUsers)
	case components < 0:
		return fmt.Errorf("%w: negative component count %d", ErrInvalidShape, components)
	case components > users:
		return fmt.Errorf("%w: %d components need at least as many users, got %d", ErrInvalidShape, components, users)
	case users > 0 && components == 0:
		return fmt.Errorf("%w: %d users need at least one component", ErrInvalidShape, users)
	}

	return nil
}
