package commands

import (
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	ascii "github.com/friendlymustache/KhanAcademyInterview/internal/format/ascii"
	"github.com/spf13/cobra"
)

// Interpreter builds the command tree that a single REPL line is dispatched through.
func Interpreter(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "infect",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	cmd.AddCommand(
		Clear(appInstance),
		Lookup(appInstance, formatter),
		List(appInstance, formatter),
		Add(appInstance),
		Delete(appInstance),
		Connect(appInstance),
		Disconnect(appInstance),
		Components(appInstance, formatter),
		TotalInfection(appInstance),
		LimitedInfection(appInstance),
		ApproxInfection(appInstance),
		ExactInfection(appInstance),
		Generate(appInstance),
	)

	// Verbs without flags take negative integers as positional values.
	for _, sub := range cmd.Commands() {
		if !sub.HasAvailableLocalFlags() {
			sub.DisableFlagParsing = true
			helpOnRequest(sub)
		}
	}

	return cmd
}

// helpOnRequest restores -h and --help on a verb that skips flag parsing.
func helpOnRequest(cmd *cobra.Command) {
	args, run := cmd.Args, cmd.RunE

	cmd.Args = func(c *cobra.Command, a []string) error {
		if wantsHelp(a) || args == nil {
			return nil
		}

		return args(c, a)
	}
	cmd.RunE = func(c *cobra.Command, a []string) error {
		if wantsHelp(a) {
			return c.Help()
		}

		return run(c, a)
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}

	return false
}
