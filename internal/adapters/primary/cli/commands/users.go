package commands

import (
	"errors"
	"fmt"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/app"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/graph"
	ascii "github.com/friendlymustache/KhanAcademyInterview/internal/format/ascii"
	"github.com/spf13/cobra"
)

func Clear(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every user from the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared graph of all users")

			return nil
		},
	}
}

func Lookup(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <id>",
		Short: "Show a user with its coaches and students",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts([]string{"user id"}, args)
			if err != nil {
				return err
			}

			user, err := appInstance.Lookup(values[0])
			if errors.Is(err, graph.ErrUserNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No user exists with id %d\n", values[0])

				return nil
			}
			if err != nil {
				return err
			}

			formatted, err := formatter.FormatUser(user)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}
}

func List(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every user in the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatted, err := formatter.FormatUsers(appInstance.ListUsers())
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}
}

func Add(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <count> <version>",
		Short: "Add users with the given version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts([]string{"count", "version"}, args)
			if err != nil {
				return err
			}
			count, version := values[0], values[1]

			if _, err := appInstance.AddUsers(count, version); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d users with version %d\n", count, version)

			return nil
		},
	}
}

func Delete(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user and its relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts([]string{"user id"}, args)
			if err != nil {
				return err
			}
			id := values[0]

			err = appInstance.DeleteUser(id)
			switch {
			case errors.Is(err, graph.ErrUserNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "No user exists with id %d\n", id)
			case err != nil:
				return err
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted user with id %d\n", id)
			}

			return nil
		},
	}
}
