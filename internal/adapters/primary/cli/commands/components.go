package commands

import (
	"fmt"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	ascii "github.com/friendlymustache/KhanAcademyInterview/internal/format/ascii"
	"github.com/spf13/cobra"
)

func Components(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "Show connected components and their sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatted, err := formatter.FormatComponents(appInstance.Components())
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}
}
