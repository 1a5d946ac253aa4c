package commands

import (
	"fmt"
	"time"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
	ascii "github.com/friendlymustache/KhanAcademyInterview/internal/format/ascii"
	"github.com/friendlymustache/KhanAcademyInterview/internal/log"
	"github.com/spf13/cobra"
)

const (
	defaultCheckTrials   = 200
	defaultCheckMaxUsers = 50
)

func Check(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	var opts app.CheckOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the infection engine on random graphs",
		Long: `Generate random coaching graphs and verify on each that components partition
the users, that total, limited, exact and approximate infections honor their
guarantees, and that coaching relationships stay symmetric.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.Seed = time.Now().UnixNano()
			}

			var report *domain.CheckReport
			start := time.Now()
			err := log.WithSpinner("Running self-check...", func() error {
				r, err := appInstance.Check(cmd.Context(), opts)
				if err != nil {
					return fmt.Errorf("self-check failed (seed %d): %w", opts.Seed, err)
				}

				report = r

				return nil
			})
			if err != nil {
				return err
			}

			formatted, err := formatter.FormatCheckReport(report, time.Since(start).Round(time.Millisecond))
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Trials, "trials", defaultCheckTrials, "number of random graphs to verify")
	cmd.Flags().IntVar(&opts.MaxUsers, "max-users", defaultCheckMaxUsers, "upper bound on users per graph")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed of the first trial")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent trials (0 uses INFECT_CHECK_WORKERS)")

	return cmd
}
