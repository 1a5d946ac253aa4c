package commands

import (
	"fmt"
	"time"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	"github.com/friendlymustache/KhanAcademyInterview/internal/log"
	"github.com/spf13/cobra"
)

func Generate(appInstance *app.App) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate <users> <components> <version>",
		Short: "Add a random population of connected components",
		Long: `Add users new users with the given version, wired into exactly components
connected components of random shape. Pass --seed to reproduce a population.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts([]string{"users", "components", "version"}, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			opts := app.GenerateOptions{
				Users:      values[0],
				Components: values[1],
				Version:    values[2],
				Seed:       seed,
			}

			err = log.WithSpinner("Generating graph...", func() error {
				_, err := appInstance.Generate(cmd.Context(), opts)

				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d users in %d components with version %d (seed %d)\n",
				opts.Users, opts.Components, opts.Version, opts.Seed)

			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")

	return cmd
}
