package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/friendlymustache/KhanAcademyInterview/internal/config"
	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[*slog.Logger](NewLogger),
)

// NewLogger creates the application logger from configuration (for DI).
func NewLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return New(cfg, os.Stderr)
}

// New creates a logger writing to w with the configured level and format.
func New(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler), nil
}

// WithSpinner executes the given function while showing a spinner with the specified message.
// The spinner is written to stderr so command output on stdout stays clean.
func WithSpinner(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	err := s.Color("green")
	if err != nil {
		return fmt.Errorf("coloring green: %w", err)
	}

	s.Start()
	s.FinalMSG = message + " \033[32m[done]\033[0m\n"
	defer s.Stop()

	return fn()
}
