package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	exitCommand = "exit"
	helpHint    = "Your command could not be executed - run 'help' for a description of available commands"
)

// Shell reads commands line by line and dispatches each through an interpreter tree.
type Shell struct {
	interp      *cobra.Command
	prompt      string
	interactive bool
}

// NewShell creates a shell. The prompt is only printed when interactive is set.
func NewShell(interp *cobra.Command, prompt string, interactive bool) *Shell {
	return &Shell{
		interp:      interp,
		prompt:      prompt,
		interactive: interactive,
	}
}

// Run processes lines from in until EOF, the exit command or context cancellation.
// Cancellation is honoured while waiting for input. Command failures are
// reported on out and never stop the loop.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	done := make(chan struct{})
	defer close(done)

	lines, errc := readLines(in, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.interactive {
			fmt.Fprintln(out, s.prompt)
		}

		var (
			raw string
			ok  bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok = <-lines:
		}
		if !ok {
			return <-errc
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(raw)
		switch line {
		case "":
			continue
		case exitCommand:
			return nil
		}

		s.dispatch(ctx, strings.Fields(line), out)
	}
}

// readLines scans in on its own goroutine. The lines channel is closed at EOF
// or on a read error, after the error (nil at EOF) is sent on errc. A reader
// blocked in Read stays blocked until in yields or is closed.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

func (s *Shell) dispatch(ctx context.Context, args []string, out io.Writer) {
	defer resetFlags(s.interp)

	s.interp.SetArgs(args)
	s.interp.SetOut(out)
	s.interp.SetErr(out)

	if err := s.interp.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(out, "Error: %v\n%s\n", err, helpHint)
	}
}

// resetFlags restores every flag of the tree to its default so values do not
// leak from one line into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// isInteractive reports whether r is a terminal.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
