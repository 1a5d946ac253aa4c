package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[*Config](NewConfig),
)

const (
	defaultPrompt        = "--- Enter a command, or enter 'exit' to exit the program ---"
	defaultLogLevel      = "warn"
	defaultLogFormat     = "text"
	defaultMaxTableCells = 50_000_000
	defaultCheckWorkers  = 4
	defaultMaxBatchUsers = 1_000_000

	// EnvFile is loaded before reading the environment when present.
	// Variables already set in the environment win.
	EnvFile = ".env"
)

// Config holds the application configuration.
type Config struct {
	LogLevel      string
	LogFormat     string
	Prompt        string
	MaxTableCells int
	CheckWorkers  int
	MaxBatchUsers int
}

// NewConfig creates a new configuration from environment variables (for DI).
func NewConfig(_ do.Injector) (*Config, error) {
	if err := LoadEnvFile(EnvFile); err != nil {
		return nil, err
	}

	return New()
}

// LoadEnvFile loads variables from path into the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}

// New creates a new configuration from environment variables.
func New() (*Config, error) {
	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("INFECT_LOG_LEVEL")))
	if logLevel == "" {
		logLevel = defaultLogLevel
	}
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("INFECT_LOG_LEVEL must be one of debug, info, warn, error; got %q", logLevel)
	}

	logFormat := strings.ToLower(strings.TrimSpace(os.Getenv("INFECT_LOG_FORMAT")))
	if logFormat == "" {
		logFormat = defaultLogFormat
	}
	if logFormat != "text" && logFormat != "json" {
		return nil, fmt.Errorf("INFECT_LOG_FORMAT must be text or json; got %q", logFormat)
	}

	prompt := os.Getenv("INFECT_PROMPT")
	if prompt == "" {
		prompt = defaultPrompt
	}

	maxTableCells, err := intFromEnv("INFECT_MAX_TABLE_CELLS", defaultMaxTableCells, 0)
	if err != nil {
		return nil, err
	}

	checkWorkers, err := intFromEnv("INFECT_CHECK_WORKERS", defaultCheckWorkers, 1)
	if err != nil {
		return nil, err
	}

	maxBatchUsers, err := intFromEnv("INFECT_MAX_BATCH_USERS", defaultMaxBatchUsers, 1)
	if err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:      logLevel,
		LogFormat:     logFormat,
		Prompt:        prompt,
		MaxTableCells: maxTableCells,
		CheckWorkers:  checkWorkers,
		MaxBatchUsers: maxBatchUsers,
	}, nil
}

func intFromEnv(name string, def, minimum int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	if v < minimum {
		return 0, fmt.Errorf("%s must be at least %d, got %d", name, minimum, v)
	}

	return v, nil
}
