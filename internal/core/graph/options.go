package graph

import "fmt"

// DefaultMaxTableCells bounds the selection table unless overridden.
const DefaultMaxTableCells = 50_000_000

// maxAllocatableCells bounds the table when the configured limit is disabled.
// Larger slices cannot be allocated at all.
const maxAllocatableCells = 1 << 40

// Option configures a Graph at construction time.
type Option func(g *Graph)

// WithMaxTableCells caps the number of cells the component selector may
// allocate. Zero lifts the cap to the largest table that can be allocated;
// negative values are ignored.
func WithMaxTableCells(n int) Option {
	return func(g *Graph) {
		if n >= 0 {
			g.maxTableCells = n
		}
	}
}

// TieBreak decides which side of the target is tried first when two
// candidate sums are equally far from it.
type TieBreak int

const (
	// LowerFirst tries target-d before target+d.
	LowerFirst TieBreak = iota
	// UpperFirst tries target+d before target-d.
	UpperFirst
)

func (t TieBreak) String() string {
	switch t {
	case LowerFirst:
		return "lower-first"
	case UpperFirst:
		return "upper-first"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

// SelectOption configures a single component selection.
type SelectOption func(*selectOptions)

type selectOptions struct {
	tolerance    int
	hasTolerance bool
	tieBreak     TieBreak
	err          error
}

// WithTolerance sets ε, the accepted distance from the target. Without it
// the tolerance defaults to the target itself.
func WithTolerance(epsilon int) SelectOption {
	return func(o *selectOptions) {
		if epsilon < 0 {
			o.err = fmt.Errorf("%w: tolerance cannot be negative (%d)", ErrInvalidArgument, epsilon)

			return
		}
		o.tolerance = epsilon
		o.hasTolerance = true
	}
}

// WithTieBreak overrides the default LowerFirst policy.
func WithTieBreak(t TieBreak) SelectOption {
	return func(o *selectOptions) {
		if t != LowerFirst && t != UpperFirst {
			o.err = fmt.Errorf("%w: unknown tie-break policy %d", ErrInvalidArgument, int(t))

			return
		}
		o.tieBreak = t
	}
}

func buildSelectOptions(target int, opts []SelectOption) (selectOptions, error) {
	o := selectOptions{tieBreak: LowerFirst}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.err != nil {
		return o, o.err
	}
	if !o.hasTolerance {
		o.tolerance = target
	}

	return o, nil
}
