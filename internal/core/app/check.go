package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/generator"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/graph"
	"golang.org/x/sync/errgroup"
)

// ErrPropertyViolated is returned when a randomized trial breaks an engine invariant.
var ErrPropertyViolated = errors.New("app: property violated")

const (
	checkOldVersion = 1
	checkNewVersion = 2

	// maxExactPicks bounds how many components an exact trial sums.
	maxExactPicks = 10
)

// CheckOptions configures a randomized self-check run.
type CheckOptions struct {
	Trials   int
	MaxUsers int
	Seed     int64
	Workers  int // zero uses the configured worker count
}

// Check generates random graphs and verifies the engine's invariants on each.
// Every trial owns its graph, so trials run concurrently on the configured workers.
func (a *App) Check(ctx context.Context, opts CheckOptions) (*domain.CheckReport, error) {
	if opts.Trials < 0 {
		return nil, fmt.Errorf("%w: trials cannot be negative (%d)", graph.ErrInvalidArgument, opts.Trials)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w: workers cannot be negative (%d)", graph.ErrInvalidArgument, opts.Workers)
	}
	if opts.MaxUsers < 1 {
		return nil, fmt.Errorf("%w: max users must be positive (%d)", graph.ErrInvalidArgument, opts.MaxUsers)
	}
	if err := a.checkBatch("max users", opts.MaxUsers); err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		report = &domain.CheckReport{}
	)

	workers := a.checkWorkers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for trial := 0; trial < opts.Trials; trial++ {
		seed := opts.Seed + int64(trial)

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := a.runTrial(seed, opts.MaxUsers)
			if err != nil {
				return fmt.Errorf("trial with seed %d: %w", seed, err)
			}

			mu.Lock()
			report.Trials++
			report.Users += res.Users
			report.Components += res.Components
			report.Infected += res.Infected
			report.Infeasible += res.Infeasible
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Error("self-check failed", "error", err)

		return nil, err
	}
	a.logger.Info("self-check passed", "trials", report.Trials, "users", report.Users, "workers", workers)

	return report, nil
}

// trial bundles a private graph with the random source driving it.
type trial struct {
	g     *graph.Graph
	rng   *rand.Rand
	comps [][]int
	res   domain.CheckReport
}

func (a *App) runTrial(seed int64, maxUsers int) (domain.CheckReport, error) {
	rng := rand.New(rand.NewSource(seed))
	users := 1 + rng.Intn(maxUsers)
	components := 1 + rng.Intn(users)

	t := &trial{
		g:   graph.New(graph.WithMaxTableCells(a.maxTableCells)),
		rng: rng,
	}

	comps, err := generator.Build(rng, t.g, users, components, checkOldVersion)
	if err != nil {
		return t.res, err
	}
	t.comps = comps
	t.res.Users = users
	t.res.Components = components

	steps := []func() error{
		t.checkPartition,
		t.checkSymmetry,
		t.checkTotal,
		t.checkLimited,
		t.checkExact,
		t.checkApproximate,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return t.res, err
		}
	}

	return t.res, nil
}

func (t *trial) reset() {
	for _, u := range t.g.Users() {
		u.Version = checkOldVersion
	}
}

func (t *trial) infected() int {
	n := 0
	for _, u := range t.g.Users() {
		if u.Version == checkNewVersion {
			n++
		}
	}

	return n
}

// mixedComponents counts components holding both versions.
func (t *trial) mixedComponents() int {
	mixed := 0
	for _, comp := range t.comps {
		seen := map[int]bool{}
		for _, id := range comp {
			u, _ := t.g.LookupUser(id)
			seen[u.Version] = true
		}
		if len(seen) > 1 {
			mixed++
		}
	}

	return mixed
}

func (t *trial) checkPartition() error {
	sizes := t.g.ComponentSizes()
	if len(sizes) != len(t.comps) {
		return fmt.Errorf("%w: %d components found, %d generated", ErrPropertyViolated, len(sizes), len(t.comps))
	}

	sum := 0
	for _, size := range sizes {
		sum += size
	}
	if sum != t.g.Len() {
		return fmt.Errorf("%w: component sizes sum to %d, graph has %d users", ErrPropertyViolated, sum, t.g.Len())
	}

	return nil
}

func (t *trial) checkSymmetry() error {
	for _, u := range t.g.Users() {
		for id := range u.Students {
			s, ok := t.g.LookupUser(id)
			if !ok || !s.CoachedBy.Has(u.ID) {
				return fmt.Errorf("%w: %d coaches %d without a back edge", ErrPropertyViolated, u.ID, id)
			}
		}
		for id := range u.CoachedBy {
			c, ok := t.g.LookupUser(id)
			if !ok || !c.Students.Has(u.ID) {
				return fmt.Errorf("%w: %d is coached by %d without a back edge", ErrPropertyViolated, u.ID, id)
			}
		}
	}

	return nil
}

func (t *trial) checkTotal() error {
	t.reset()

	comp := t.comps[t.rng.Intn(len(t.comps))]
	root := comp[t.rng.Intn(len(comp))]

	n, err := t.g.TotalInfection(root, checkNewVersion)
	if err != nil {
		return err
	}
	if n != len(comp) || t.infected() != len(comp) {
		return fmt.Errorf("%w: total infection from %d reached %d of %d users",
			ErrPropertyViolated, root, n, len(comp))
	}
	t.res.Infected += n

	return nil
}

func (t *trial) checkLimited() error {
	t.reset()

	target := t.rng.Intn(t.g.Len() + 1)

	n, err := t.g.LimitedInfectionSimple(target, checkNewVersion)
	if err != nil {
		return err
	}
	if n != target || t.infected() != target {
		return fmt.Errorf("%w: limited infection of %d infected %d", ErrPropertyViolated, target, n)
	}
	if mixed := t.mixedComponents(); mixed > 1 {
		return fmt.Errorf("%w: limited infection left %d mixed components", ErrPropertyViolated, mixed)
	}
	t.res.Infected += n

	return nil
}

func (t *trial) checkExact() error {
	t.reset()

	picks := 1 + t.rng.Intn(min(len(t.comps), maxExactPicks))
	target := 0
	for _, i := range t.rng.Perm(len(t.comps))[:picks] {
		target += len(t.comps[i])
	}

	n, err := t.g.ExactInfection(target, checkNewVersion)
	if errors.Is(err, graph.ErrTableTooLarge) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: exact infection of reachable sum %d: %w", ErrPropertyViolated, target, err)
	}
	if n != target || t.infected() != target {
		return fmt.Errorf("%w: exact infection of %d infected %d", ErrPropertyViolated, target, n)
	}
	if mixed := t.mixedComponents(); mixed != 0 {
		return fmt.Errorf("%w: exact infection split %d components", ErrPropertyViolated, mixed)
	}
	t.res.Infected += n

	return nil
}

func (t *trial) checkApproximate() error {
	t.reset()

	target := t.rng.Intn(t.g.Len() + 1)
	epsilon := t.rng.Intn(3)

	n, err := t.g.ApproximateInfection(checkNewVersion, target, graph.WithTolerance(epsilon))
	switch {
	case errors.Is(err, graph.ErrInfeasible):
		if t.infected() != 0 {
			return fmt.Errorf("%w: infeasible selection changed versions", ErrPropertyViolated)
		}
		t.res.Infeasible++

		return nil
	case err != nil:
		return err
	}

	if n < target-epsilon || n > target+epsilon || t.infected() != n {
		return fmt.Errorf("%w: approximate infection of %d±%d infected %d",
			ErrPropertyViolated, target, epsilon, n)
	}
	if mixed := t.mixedComponents(); mixed != 0 {
		return fmt.Errorf("%w: approximate infection split %d components", ErrPropertyViolated, mixed)
	}
	t.res.Infected += n

	return nil
}
