package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/friendlymustache/KhanAcademyInterview/internal/config"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/generator"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/graph"
)

// Engine defines the graph operations the application relies on (port).
type Engine interface {
	CreateUser(version int) int
	LookupUser(id int) (*domain.User, bool)
	RemoveUser(id int) error
	AddEdge(coachID, studentID int) error
	RemoveEdge(coachID, studentID int) error
	Users() []*domain.User
	Clear()
	Components() []domain.Component
	TotalInfection(rootID, version int) (int, error)
	LimitedInfectionSimple(target, version int) (int, error)
	ApproximateInfection(version, target int, opts ...graph.SelectOption) (int, error)
	ExactInfection(target, version int) (int, error)
}

// DefaultMaxBatchUsers caps how many users one command may create when no
// ceiling is configured.
const DefaultMaxBatchUsers = 1_000_000

// App represents the core application with all business logic.
type App struct {
	engine        Engine
	logger        *slog.Logger
	checkWorkers  int
	maxTableCells int
	maxBatchUsers int
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, engine Engine, logger *slog.Logger) (*App, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &App{
		engine:        engine,
		logger:        logger,
		checkWorkers:  cfg.CheckWorkers,
		maxTableCells: cfg.MaxTableCells,
		maxBatchUsers: cfg.MaxBatchUsers,
	}, nil
}

func (a *App) batchLimit() int {
	if a.maxBatchUsers > 0 {
		return a.maxBatchUsers
	}

	return DefaultMaxBatchUsers
}

func (a *App) checkBatch(what string, count int) error {
	switch {
	case count < 0:
		return fmt.Errorf("%w: %s cannot be negative (%d)", graph.ErrInvalidArgument, what, count)
	case count > a.batchLimit():
		return fmt.Errorf("%w: %s %d exceeds the limit of %d", graph.ErrInvalidArgument, what, count, a.batchLimit())
	}

	return nil
}

// AddUsers creates count users with the given version and returns their ids.
func (a *App) AddUsers(count, version int) ([]int, error) {
	if err := a.checkBatch("user count", count); err != nil {
		return nil, err
	}

	ids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, a.engine.CreateUser(version))
	}
	a.logger.Debug("users added", "count", count, "version", version)

	return ids, nil
}

// Lookup returns the user with the given id.
func (a *App) Lookup(id int) (*domain.User, error) {
	user, ok := a.engine.LookupUser(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", graph.ErrUserNotFound, id)
	}

	return user, nil
}

// ListUsers returns every user ordered by id.
func (a *App) ListUsers() []*domain.User {
	return a.engine.Users()
}

// DeleteUser removes a user and all of its relationships.
func (a *App) DeleteUser(id int) error {
	if err := a.engine.RemoveUser(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	a.logger.Debug("user deleted", "id", id)

	return nil
}

// Connect makes coachID a coach of studentID.
func (a *App) Connect(coachID, studentID int) error {
	if err := a.engine.AddEdge(coachID, studentID); err != nil {
		return fmt.Errorf("failed to connect users: %w", err)
	}
	a.logger.Debug("users connected", "coach", coachID, "student", studentID)

	return nil
}

// Disconnect removes coachID as a coach of studentID.
func (a *App) Disconnect(coachID, studentID int) error {
	if err := a.engine.RemoveEdge(coachID, studentID); err != nil {
		return fmt.Errorf("failed to disconnect users: %w", err)
	}
	a.logger.Debug("users disconnected", "coach", coachID, "student", studentID)

	return nil
}

// Clear removes every user from the session graph.
func (a *App) Clear() {
	a.engine.Clear()
	a.logger.Debug("graph cleared")
}

// Components returns the connected components ordered by representative id.
func (a *App) Components() []domain.Component {
	return a.engine.Components()
}

// TotalInfection infects the whole component containing rootID.
func (a *App) TotalInfection(rootID, version int) (int, error) {
	n, err := a.engine.TotalInfection(rootID, version)
	if err != nil {
		return 0, fmt.Errorf("failed to run total infection: %w", err)
	}
	a.logger.Info("total infection", "root", rootID, "version", version, "infected", n)

	return n, nil
}

// LimitedInfection infects exactly quantity users, or everyone if there are fewer.
func (a *App) LimitedInfection(quantity, version int) (int, error) {
	n, err := a.engine.LimitedInfectionSimple(quantity, version)
	if err != nil {
		return 0, fmt.Errorf("failed to run limited infection: %w", err)
	}
	a.logger.Info("limited infection", "quantity", quantity, "version", version, "infected", n)

	return n, nil
}

// ApproxInfection infects whole components totalling quantity±epsilon users.
func (a *App) ApproxInfection(quantity, version, epsilon int) (int, error) {
	n, err := a.engine.ApproximateInfection(version, quantity, graph.WithTolerance(epsilon))
	if err != nil {
		return 0, fmt.Errorf("failed to run approximate infection: %w", err)
	}
	a.logger.Info("approximate infection",
		"quantity", quantity, "epsilon", epsilon, "version", version, "infected", n)

	return n, nil
}

// ExactInfection infects whole components totalling exactly quantity users.
func (a *App) ExactInfection(quantity, version int) (int, error) {
	n, err := a.engine.ExactInfection(quantity, version)
	if err != nil {
		return 0, fmt.Errorf("failed to run exact infection: %w", err)
	}
	a.logger.Info("exact infection", "quantity", quantity, "version", version, "infected", n)

	return n, nil
}

// GenerateOptions describes a random population to add to the session graph.
type GenerateOptions struct {
	Users      int
	Components int
	Version    int
	Seed       int64
}

// Generate adds a random population of connected components to the session graph.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) ([][]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Users > a.batchLimit() {
		return nil, fmt.Errorf("%w: user count %d exceeds the limit of %d",
			graph.ErrInvalidArgument, opts.Users, a.batchLimit())
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	comps, err := generator.Build(rng, a.engine, opts.Users, opts.Components, opts.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to generate graph: %w", err)
	}
	a.logger.Info("graph generated",
		"users", opts.Users, "components", opts.Components, "version", opts.Version, "seed", opts.Seed)

	return comps, nil
}
