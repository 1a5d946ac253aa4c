package graph

import (
	"fmt"
	"math"
	"sort"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
)

// Selection is a set of whole components chosen for infection.
type Selection struct {
	Roots []int // representative ids, ascending
	Sum   int   // total number of users in the chosen components
}

// cellKind is one entry of the subset-sum table. For a reachable cell at
// (i, j) the back-pointer is implied by the kind:
//
//	excluded → (i, j-1)
//	included → (i-size_j, j-1)
//	origin   → none (empty subset, i == 0)
type cellKind uint8

const (
	unreachable cellKind = iota
	origin
	excluded
	included
)

// subsetTable records, for every sum i in [0, maxSum] and every prefix of j
// components, whether some subset of that prefix sums to exactly i.
type subsetTable struct {
	comps []domain.Component // size descending, then root ascending
	cols  int                // len(comps)+1
	cells []cellKind         // row-major, (maxSum+1) × cols
}

func (t *subsetTable) at(i, j int) cellKind {
	return t.cells[i*t.cols+j]
}

func (t *subsetTable) set(i, j int, k cellKind) {
	t.cells[i*t.cols+j] = k
}

func newSubsetTable(comps []domain.Component, maxSum int) *subsetTable {
	n := len(comps)
	t := &subsetTable{
		comps: comps,
		cols:  n + 1,
		cells: make([]cellKind, (maxSum+1)*(n+1)),
	}

	for j := 0; j <= n; j++ {
		t.set(0, j, origin)
	}

	for i := 1; i <= maxSum; i++ {
		for j := 1; j <= n; j++ {
			size := comps[j-1].Size
			switch {
			// Exclusion wins when both transitions apply.
			case t.at(i, j-1) != unreachable:
				t.set(i, j, excluded)
			case i >= size && t.at(i-size, j-1) != unreachable:
				t.set(i, j, included)
			}
		}
	}

	return t
}

// reconstruct walks back-pointers from (sum, n) to the origin and returns the
// roots of the included components.
func (t *subsetTable) reconstruct(sum int) ([]int, bool) {
	i, j := sum, len(t.comps)
	if t.at(i, j) == unreachable {
		return nil, false
	}

	roots := []int{}
	for {
		switch t.at(i, j) {
		case origin:
			sort.Ints(roots)

			return roots, true
		case excluded:
			j--
		case included:
			c := t.comps[j-1]
			roots = append(roots, c.Root)
			i -= c.Size
			j--
		default:
			return nil, false
		}
	}
}

// candidateSums lists target, then target∓1, target∓2, … up to epsilon,
// skipping negative sums. tb decides which side of each pair comes first.
func candidateSums(target, epsilon int, tb TieBreak) []int {
	sums := make([]int, 0, min(target, epsilon)+epsilon+1)
	sums = append(sums, target)
	for d := 1; d <= epsilon; d++ {
		first, second := target-d, target+d
		if tb == UpperFirst {
			first, second = second, first
		}
		if first >= 0 {
			sums = append(sums, first)
		}
		if second >= 0 {
			sums = append(sums, second)
		}
	}

	return sums
}

// sortedBySizeDesc orders components largest first; equal sizes keep the
// smaller representative first.
func sortedBySizeDesc(comps []domain.Component) []domain.Component {
	out := make([]domain.Component, len(comps))
	copy(out, comps)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size > out[j].Size
		}

		return out[i].Root < out[j].Root
	})

	return out
}

// SelectComponents chooses whole components whose sizes sum to the value
// closest to target within the tolerance. It does not modify any user.
func (g *Graph) SelectComponents(target int, opts ...SelectOption) (Selection, error) {
	if target < 0 {
		return Selection{}, fmt.Errorf("%w: target cannot be negative (%d)", ErrInvalidArgument, target)
	}
	o, err := buildSelectOptions(target, opts)
	if err != nil {
		return Selection{}, err
	}

	if o.tolerance > math.MaxInt-1-target {
		return Selection{}, fmt.Errorf("%w: target %d with tolerance %d overflows the table height",
			ErrTableTooLarge, target, o.tolerance)
	}

	comps := sortedBySizeDesc(g.Components())
	maxSum := target + o.tolerance
	if err := g.checkTableSize(maxSum+1, len(comps)+1); err != nil {
		return Selection{}, err
	}

	table := newSubsetTable(comps, maxSum)
	for _, sum := range candidateSums(target, o.tolerance, o.tieBreak) {
		if roots, ok := table.reconstruct(sum); ok {
			return Selection{Roots: roots, Sum: sum}, nil
		}
	}

	return Selection{}, fmt.Errorf("%w: target %d, tolerance %d", ErrInfeasible, target, o.tolerance)
}

// checkTableSize rejects a rows×cols table above the configured limit, or
// above maxAllocatableCells when the limit is disabled. The comparison is
// done by division so it cannot overflow.
func (g *Graph) checkTableSize(rows, cols int) error {
	limit := g.maxTableCells
	if limit == 0 {
		limit = maxAllocatableCells
	}
	if rows > limit/cols {
		return fmt.Errorf("%w: %d×%d cells exceeds limit %d", ErrTableTooLarge, rows, cols, limit)
	}

	return nil
}

// ApproximateInfection totally infects the components picked by
// SelectComponents and returns the number of infected users. On
// ErrInfeasible no user is modified.
func (g *Graph) ApproximateInfection(version, target int, opts ...SelectOption) (int, error) {
	sel, err := g.SelectComponents(target, opts...)
	if err != nil {
		return 0, err
	}

	return g.TotalInfectionMultiple(sel.Roots, version)
}

// ExactInfection is ApproximateInfection with zero tolerance.
func (g *Graph) ExactInfection(target, version int) (int, error) {
	return g.ApproximateInfection(version, target, WithTolerance(0))
}
