package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/friendlymustache/KhanAcademyInterview/internal/adapters/primary/cli/commands"
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

	cfg := &config.Config{CheckWorkers: 1, MaxTableCells: graph.DefaultMaxTableCells, Prompt: "> "}
	appInstance, err := app.NewApp(cfg, graph.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return appInstance
}

func newTestShell(t *testing.T, interactive bool) (*Shell, *app.App) {
	t.Helper()

	appInstance := newTestApp(t)
	interp := commands.Interpreter(appInstance, ascii.NewFormatter(false))

	return NewShell(interp, "> ", interactive), appInstance
}

func TestShell_Run(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		interactive bool
		expected    string
		contains    []string
	}{
		{
			name:     "session",
			input:    "add 3 1\nconnect 1 2\ntotal_infection 1 2\n",
			expected: "Added 3 users with version 1\nAdded user 1 as a coach of user 2\nInfected 2 users with version 2\n",
		},
		{
			name:     "blank lines are skipped",
			input:    "\n   \nadd 1 1\n\n",
			expected: "Added 1 users with version 1\n",
		},
		{
			name:     "exit stops reading",
			input:    "add 1 1\nexit\nadd 1 1\n",
			expected: "Added 1 users with version 1\n",
		},
		{
			name:     "errors do not stop the loop",
			input:    "frobnicate\nadd one 1\nadd 2 1\n",
			contains: []string{"Error: unknown command \"frobnicate\"", helpHint, `invalid count "one"`, "Added 2 users with version 1\n"},
		},
		{
			name:        "prompt when interactive",
			input:       "add 1 1\nexit\n",
			interactive: true,
			expected:    "> \nAdded 1 users with version 1\n> \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell, _ := newTestShell(t, tt.interactive)
			var out bytes.Buffer

			err := shell.Run(context.Background(), strings.NewReader(tt.input), &out)

			require.NoError(t, err)
			if tt.expected != "" {
				assert.Equal(t, tt.expected, out.String())
			}
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestShell_FlagsDoNotLeakBetweenLines(t *testing.T) {
	shell, appInstance := newTestShell(t, false)
	var out bytes.Buffer

	input := "generate 4 2 1 --seed 11\nclear\ngenerate 4 2 1\n"
	err := shell.Run(context.Background(), strings.NewReader(input), &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "(seed 11)")
	assert.Equal(t, 1, strings.Count(out.String(), "(seed 11)"))
	assert.Len(t, appInstance.ListUsers(), 4)
}

func TestShell_Cancelled(t *testing.T) {
	shell, appInstance := newTestShell(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := shell.Run(ctx, strings.NewReader("add 1 1\n"), io.Discard)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, appInstance.ListUsers())
}

func TestShell_CancelledWhileWaitingForInput(t *testing.T) {
	shell, appInstance := newTestShell(t, true)
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	errc := make(chan error, 1)
	go func() { errc <- shell.Run(ctx, pr, &out) }()

	time.AfterFunc(20*time.Millisecond, cancel)

	select {
	case err := <-errc:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("shell kept waiting for input after cancellation")
	}
	assert.Empty(t, appInstance.ListUsers())
	assert.LessOrEqual(t, strings.Count(out.String(), "> "), 1)
}

func TestResetFlags(t *testing.T) {
	var value int
	root := &cobra.Command{Use: "root"}
	sub := &cobra.Command{Use: "sub"}
	sub.Flags().IntVar(&value, "n", 3, "")
	root.AddCommand(sub)

	require.NoError(t, sub.Flags().Set("n", "9"))
	require.True(t, sub.Flags().Changed("n"))

	resetFlags(root)

	assert.Equal(t, 3, value)
	assert.False(t, sub.Flags().Changed("n"))
}

func TestIsInteractive(t *testing.T) {
	assert.False(t, isInteractive(strings.NewReader("")))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, isInteractive(f))
}

func TestCommand(t *testing.T) {
	appInstance := newTestApp(t)
	cfg := &config.Config{Prompt: "> "}
	cmd := newRootCommand(cfg, appInstance, ascii.NewFormatter(false))

	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("add 2 1\nlist\nexit\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Added 2 users with version 1")
	assert.Contains(t, out.String(), "2 users in the graph")
	assert.NotContains(t, out.String(), "> ")

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "check")
}
