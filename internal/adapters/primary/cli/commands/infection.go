package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/graph"
	"github.com/spf13/cobra"
)

func TotalInfection(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "total_infection <root> <version>",
		Short: "Infect the whole component containing a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts([]string{"root id", "version"}, args)
			if err != nil {
				return err
			}
			rootID, version := values[0], values[1]

			n, err := appInstance.TotalInfection(rootID, version)
			if errors.Is(err, graph.ErrUserNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No user exists with id %d\n", rootID)

				return nil
			}
			if err != nil {
				return err
			}
			printInfected(cmd.OutOrStdout(), n, version)

			return nil
		},
	}
}

func LimitedInfection(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "limited_infection <quantity> <version>",
		Short: "Infect exactly quantity users, splitting at most one component",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts([]string{"quantity", "version"}, args)
			if err != nil {
				return err
			}
			quantity, version := values[0], values[1]

			n, err := appInstance.LimitedInfection(quantity, version)
			if err != nil {
				return err
			}
			printInfected(cmd.OutOrStdout(), n, version)

			return nil
		},
	}
}

func ApproxInfection(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "approx_infection <quantity> <version> [epsilon]",
		Short: "Infect whole components totalling quantity±epsilon users",
		Long: `Infect whole components whose sizes sum to the value closest to quantity
within epsilon. Epsilon defaults to quantity.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts([]string{"quantity", "version", "epsilon"}, args)
			if err != nil {
				return err
			}
			quantity, version := values[0], values[1]
			epsilon := quantity
			if len(values) == 3 {
				epsilon = values[2]
			}

			n, err := appInstance.ApproxInfection(quantity, version, epsilon)

			return renderSelection(cmd.OutOrStdout(), "approximate", n, version, err)
		},
	}
}

func ExactInfection(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "exact_infection <quantity> <version>",
		Short: "Infect whole components totalling exactly quantity users",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts([]string{"quantity", "version"}, args)
			if err != nil {
				return err
			}
			quantity, version := values[0], values[1]

			n, err := appInstance.ExactInfection(quantity, version)

			return renderSelection(cmd.OutOrStdout(), "exact", n, version, err)
		},
	}
}

func renderSelection(w io.Writer, kind string, n, version int, err error) error {
	switch {
	case errors.Is(err, graph.ErrInfeasible):
		fmt.Fprintf(w, "Unable to find satisfactory components to infect for %s infection\n", kind)
	case err != nil:
		return err
	default:
		printInfected(w, n, version)
	}

	return nil
}

func printInfected(w io.Writer, n, version int) {
	fmt.Fprintf(w, "Infected %d users with version %d\n", n, version)
}
