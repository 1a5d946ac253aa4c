package cli

import (
	"github.com/friendlymustache/KhanAcademyInterview/internal/adapters/primary/cli/commands"
	"github.com/friendlymustache/KhanAcademyInterview/internal/config"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	ascii "github.com/friendlymustache/KhanAcademyInterview/internal/format/ascii"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Command creates and returns the root CLI command.
func Command(i do.Injector) (*cobra.Command, error) {
	appInstance := do.MustInvoke[*app.App](i)
	cfg := do.MustInvoke[*config.Config](i)
	formatter := do.MustInvoke[*ascii.Formatter](i)

	return newRootCommand(cfg, appInstance, formatter), nil
}

func newRootCommand(cfg *config.Config, appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infect",
		Short: "Roll out versions across a coaching graph",
		Long: `An interactive shell for rolling out a new site version across users linked
by coaching relationships, infecting whole connected components where possible.

Without a subcommand infect reads commands from standard input, one per line.
Type 'help' inside the shell to list them and 'exit' to quit.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			shell := NewShell(commands.Interpreter(appInstance, formatter), cfg.Prompt, isInteractive(in))

			return shell.Run(cmd.Context(), in, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(commands.Check(appInstance, formatter))

	return cmd
}
