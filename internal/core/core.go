package core

import (
	"log/slog"

	"github.com/friendlymustache/KhanAcademyInterview/internal/config"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/graph"
	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[app.Engine](NewEngine),
	do.Lazy[*app.App](NewApp),
)

// NewEngine creates the session graph with limits from configuration.
func NewEngine(i do.Injector) (app.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return graph.New(graph.WithMaxTableCells(cfg.MaxTableCells)), nil
}

// NewApp creates a new App instance with dependencies from the injector.
func NewApp(i do.Injector) (*app.App, error) {
	cfg := do.MustInvoke[*config.Config](i)
	engine := do.MustInvoke[app.Engine](i)
	logger := do.MustInvoke[*slog.Logger](i)

	return app.NewApp(cfg, engine, logger)
}
