package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/graph"
	"github.com/spf13/cobra"
)

const unknownUsersMessage = "One or more of the supplied user IDs does not belong to a user"

func Connect(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <coach> <student>",
		Short: "Make a user coach another user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coachID, studentID, err := parseEdge(args)
			if err != nil {
				return err
			}

			err = appInstance.Connect(coachID, studentID)
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Added user %d as a coach of user %d\n", coachID, studentID)

				return nil
			}

			return renderEdgeError(cmd.OutOrStdout(), err)
		},
	}
}

func Disconnect(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <coach> <student>",
		Short: "Remove a coaching relationship",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coachID, studentID, err := parseEdge(args)
			if err != nil {
				return err
			}

			err = appInstance.Disconnect(coachID, studentID)
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed user %d as a coach of user %d\n", coachID, studentID)

				return nil
			}

			return renderEdgeError(cmd.OutOrStdout(), err)
		},
	}
}

func parseEdge(args []string) (int, int, error) {
	values, err := parseInts([]string{"coach id", "student id"}, args)
	if err != nil {
		return 0, 0, err
	}

	return values[0], values[1], nil
}

// renderEdgeError prints the user-facing text for expected edge failures.
func renderEdgeError(w io.Writer, err error) error {
	switch {
	case errors.Is(err, graph.ErrUserNotFound):
		fmt.Fprintln(w, unknownUsersMessage)
	case errors.Is(err, graph.ErrSelfEdge):
		fmt.Fprintln(w, "A user cannot coach itself")
	default:
		return err
	}

	return nil
}
