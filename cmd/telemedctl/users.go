package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/telemedicina/booking-api/internal/core/domain"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage registered users",
		Long: `Manage the users stored by the booking service.

Changes go straight to the shared store and are safe while the API runs:
every write starts from the stored list, and the API reloads it every few
seconds. Two writes landing in the same instant still race; the later one
wins.

Examples:
  telemedctl users list
  telemedctl users add --email ana@mail.cl --name "Ana Soto" --password Secreta123
  telemedctl users promote ana@mail.cl
  telemedctl users delete ana@mail.cl`,
	}
	cmd.AddCommand(newUsersListCmd(), newUsersAddCmd(), newUsersDeleteCmd(), newUsersPromoteCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users := appFrom(cmd).admin.List()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tHANDLE\tROLE\tBIRTH DATE")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Handle, u.Role, u.BirthDate)
			}
			return w.Flush()
		},
	}
}

func newUsersAddCmd() *cobra.Command {
	var (
		user     domain.User
		password string
		role     string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user.Role = domain.Role(role)
			created, err := appFrom(cmd).admin.Add(cmd.Context(), user, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", created.ID, created.Email, created.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&user.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&user.Name, "name", "", "full name (required)")
	cmd.Flags().StringVar(&user.Handle, "handle", "", "user handle")
	cmd.Flags().StringVar(&user.BirthDate, "birth-date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&password, "password", "", "initial password (required)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleUser), "admin or usuario")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appFrom(cmd).admin.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newUsersPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Give a user the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := appFrom(cmd).admin.Update(cmd.Context(), domain.User{Email: args[0], Role: domain.RoleAdmin}, "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.Email, updated.Role)
			return nil
		},
	}
}
