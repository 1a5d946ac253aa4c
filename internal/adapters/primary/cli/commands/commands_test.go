package commands

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/friendlymustache/KhanAcademyInterview/internal/config"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/graph"
	ascii "github.com/friendlymustache/KhanAcademyInterview/internal/format/ascii"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	cfg := &config.Config{CheckWorkers: 2, MaxTableCells: graph.DefaultMaxTableCells}
	appInstance, err := app.NewApp(cfg, graph.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return appInstance
}

func execute(cmd *cobra.Command, line string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(strings.Fields(line))

	err := cmd.Execute()

	return buf.String(), err
}

func runLine(t *testing.T, appInstance *app.App, line string) (string, error) {
	t.Helper()

	return execute(Interpreter(appInstance, ascii.NewFormatter(false)), line)
}

func TestInterpreter(t *testing.T) {
	tests := []struct {
		name        string
		setup       []string
		line        string
		expected    string
		contains    []string
		expectError bool
	}{
		{
			name:     "add users",
			line:     "add 3 1",
			expected: "Added 3 users with version 1\n",
		},
		{
			name:        "add with bad count",
			line:        "add many 1",
			expectError: true,
			contains:    []string{`invalid count "many"`},
		},
		{
			name:        "add with missing version",
			line:        "add 3",
			expectError: true,
		},
		{
			name:        "add negative count",
			line:        "add -2 1",
			expectError: true,
			contains:    []string{"user count cannot be negative (-2)"},
		},
		{
			name:        "unknown verb",
			line:        "infect_everyone",
			expectError: true,
		},
		{
			name:     "connect",
			setup:    []string{"add 2 1"},
			line:     "connect 1 2",
			expected: "Added user 1 as a coach of user 2\n",
		},
		{
			name:     "connect unknown user",
			setup:    []string{"add 2 1"},
			line:     "connect 1 9",
			expected: unknownUsersMessage + "\n",
		},
		{
			name:     "connect to self",
			setup:    []string{"add 1 1"},
			line:     "connect 1 1",
			expected: "A user cannot coach itself\n",
		},
		{
			name:     "disconnect",
			setup:    []string{"add 2 1", "connect 1 2"},
			line:     "disconnect 1 2",
			expected: "Removed user 1 as a coach of user 2\n",
		},
		{
			name:     "disconnect unknown user",
			line:     "disconnect 4 5",
			expected: unknownUsersMessage + "\n",
		},
		{
			name:     "lookup",
			setup:    []string{"add 2 1", "connect 1 2"},
			line:     "lookup 2",
			contains: []string{"User 2", "│ Coaches:  1\n", "│ Students: None\n"},
		},
		{
			name:     "lookup missing",
			line:     "lookup 9",
			expected: "No user exists with id 9\n",
		},
		{
			name:     "list empty",
			line:     "list",
			expected: "No users currently in the graph\n",
		},
		{
			name:     "list",
			setup:    []string{"add 2 5"},
			line:     "list",
			contains: []string{"2 users in the graph", "#1", "#2", "version 5"},
		},
		{
			name:     "delete",
			setup:    []string{"add 1 1"},
			line:     "delete 1",
			expected: "Deleted user with id 1\n",
		},
		{
			name:     "delete missing",
			line:     "delete 1",
			expected: "No user exists with id 1\n",
		},
		{
			name:     "clear",
			setup:    []string{"add 4 1"},
			line:     "clear",
			expected: "Cleared graph of all users\n",
		},
		{
			name:     "components",
			setup:    []string{"add 3 1", "connect 1 2"},
			line:     "components",
			contains: []string{"2 components, 3 users", "root 1      size 2", "root 3      size 1"},
		},
		{
			name:     "total infection",
			setup:    []string{"add 3 1", "connect 1 2"},
			line:     "total_infection 2 2",
			expected: "Infected 2 users with version 2\n",
		},
		{
			name:     "total infection of missing user",
			line:     "total_infection 7 2",
			expected: "No user exists with id 7\n",
		},
		{
			name:     "limited infection",
			setup:    []string{"add 5 1"},
			line:     "limited_infection 3 2",
			expected: "Infected 3 users with version 2\n",
		},
		{
			name:        "limited infection with negative quantity",
			line:        "limited_infection -1 2",
			expectError: true,
			contains:    []string{"target cannot be negative (-1)"},
		},
		{
			name:     "approximate infection",
			setup:    []string{"generate 3 1 1 --seed 1", "generate 5 1 1 --seed 2"},
			line:     "approx_infection 4 2 1",
			expected: "Infected 3 users with version 2\n",
		},
		{
			name:     "approximate infection default epsilon",
			setup:    []string{"generate 5 1 1 --seed 2"},
			line:     "approx_infection 4 2",
			expected: "Infected 5 users with version 2\n",
		},
		{
			name:     "approximate infection infeasible",
			setup:    []string{"generate 3 1 1 --seed 1", "generate 5 1 1 --seed 2"},
			line:     "approx_infection 4 2 0",
			expected: "Unable to find satisfactory components to infect for approximate infection\n",
		},
		{
			name:        "approximate infection with negative epsilon",
			setup:       []string{"add 1 1"},
			line:        "approx_infection 1 2 -1",
			expectError: true,
			contains:    []string{"tolerance cannot be negative (-1)"},
		},
		{
			name:     "exact infection",
			setup:    []string{"generate 3 1 1 --seed 1", "generate 5 1 1 --seed 2"},
			line:     "exact_infection 8 2",
			expected: "Infected 8 users with version 2\n",
		},
		{
			name:     "exact infection infeasible",
			setup:    []string{"generate 3 1 1 --seed 1"},
			line:     "exact_infection 2 2",
			expected: "Unable to find satisfactory components to infect for exact infection\n",
		},
		{
			name:        "exact infection of the largest integer",
			setup:       []string{"add 2 1"},
			line:        "exact_infection 9223372036854775807 2",
			expectError: true,
			contains:    []string{"selection table too large"},
		},
		{
			name:        "approximate infection of the largest integer",
			setup:       []string{"add 2 1"},
			line:        "approx_infection 9223372036854775807 2",
			expectError: true,
			contains:    []string{"selection table too large"},
		},
		{
			name:        "approximate infection with the largest tolerance",
			setup:       []string{"add 2 1"},
			line:        "approx_infection 2 2 9223372036854775807",
			expectError: true,
			contains:    []string{"selection table too large"},
		},
		{
			name:        "add above the batch limit",
			line:        "add 9223372036854775807 1",
			expectError: true,
			contains:    []string{"exceeds the limit of 1000000"},
		},
		{
			name:        "generate above the batch limit",
			line:        "generate 9223372036854775807 1 1 --seed 5",
			expectError: true,
			contains:    []string{"exceeds the limit of 1000000"},
		},
		{
			name:     "generate",
			line:     "generate 10 2 1 --seed 5",
			expected: "Added 10 users in 2 components with version 1 (seed 5)\n",
		},
		{
			name:        "generate impossible shape",
			line:        "generate 2 3 1 --seed 5",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appInstance := newTestApp(t)
			for _, line := range tt.setup {
				_, err := runLine(t, appInstance, line)
				require.NoError(t, err, line)
			}

			out, err := runLine(t, appInstance, tt.line)

			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			if tt.expected != "" {
				assert.Equal(t, tt.expected, out)
			}
			for _, s := range tt.contains {
				if tt.expectError {
					assert.Contains(t, err.Error(), s)
				} else {
					assert.Contains(t, out, s)
				}
			}
		})
	}
}

func TestInterpreter_GenerateBuildsComponents(t *testing.T) {
	appInstance := newTestApp(t)

	_, err := runLine(t, appInstance, "generate 12 4 1 --seed 3")
	require.NoError(t, err)

	comps := appInstance.Components()
	require.Len(t, comps, 4)
	total := 0
	for _, c := range comps {
		total += c.Size
	}
	assert.Equal(t, 12, total)
}

func TestInterpreter_VerbHelp(t *testing.T) {
	tests := []struct {
		line  string
		usage string
	}{
		{line: "exact_infection -h", usage: "exact_infection <quantity> <version>"},
		{line: "limited_infection --help", usage: "limited_infection <quantity> <version>"},
		{line: "add 5 -h", usage: "add <count> <version>"},
		{line: "components --help", usage: "components"},
		{line: "generate -h", usage: "generate <users> <components> <version>"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			appInstance := newTestApp(t)

			out, err := runLine(t, appInstance, tt.line)

			require.NoError(t, err)
			assert.Contains(t, out, "Usage:")
			assert.Contains(t, out, tt.usage)
			assert.Empty(t, appInstance.ListUsers())
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		expectError bool
		contains    []string
	}{
		{
			name:     "passes",
			line:     "--trials 5 --max-users 8 --seed 1 --workers 2",
			contains: []string{"Self-check passed", "Trials:            5"},
		},
		{
			name:        "invalid max users",
			line:        "--trials 5 --max-users 0 --seed 1",
			expectError: true,
			contains:    []string{"seed 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(Check(newTestApp(t), ascii.NewFormatter(false)), tt.line)

			if tt.expectError {
				require.Error(t, err)
				for _, s := range tt.contains {
					assert.Contains(t, err.Error(), s)
				}

				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestParseInts(t *testing.T) {
	values, err := parseInts([]string{"a", "b"}, []string{"1", "-2"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, -2}, values)

	_, err = parseInts([]string{"a"}, []string{"1", "x"})
	require.EqualError(t, err, `invalid argument "x": must be an integer`)
}
