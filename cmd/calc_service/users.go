package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"secure-calculator/internal/models"
)

var errNotAuthenticated = errors.New("invalid username or password")

var registerFlags struct {
	Password string
}

var historyFlags struct {
	Limit int
}

func init() {
	registerCmd.Flags().StringVarP(&registerFlags.Password, "password", "p", "", "Initial password, must satisfy the strength policy")
	historyCmd.Flags().IntVarP(&historyFlags.Limit, "limit", "n", 10, "Maximum number of entries to show (0 for all)")
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, passwdCmd, historyCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register USERNAME",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, err := openCalculator()
		if err != nil {
			return err
		}
		defer calc.Close() //nolint: errcheck

		var user *models.User
		if registerFlags.Password == "" {
			user, err = calc.Register(cmd.Context(), args[0])
		} else {
			user, err = calc.RegisterWithPassword(cmd.Context(), args[0], registerFlags.Password)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registered %s with id %d\n", user.Username, user.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login USERNAME PASSWORD",
	Short: "Check a username and password",
	Long:  `Check a username and password against the store. Exits non-zero when they do not match.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, err := openCalculator()
		if err != nil {
			return err
		}
		defer calc.Close() //nolint: errcheck

		ok, err := calc.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			return errNotAuthenticated
		}
		fmt.Fprintln(cmd.OutOrStdout(), "authenticated")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out (no-op, there is no session to end)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		calc, err := openCalculator()
		if err != nil {
			return err
		}
		defer calc.Close() //nolint: errcheck

		calc.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:     "passwd USERNAME OLD_PASSWORD NEW_PASSWORD",
	Short:   "Change a user's password",
	Example: `calc passwd alice '' 'Str0ng!Pw'  # set the first password`,
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, err := openCalculator()
		if err != nil {
			return err
		}
		defer calc.Close() //nolint: errcheck

		if err := calc.ChangePassword(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "password changed")
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history USERNAME",
	Short: "Show calculations recorded for a user through the API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, err := openCalculator()
		if err != nil {
			return err
		}
		defer calc.Close() //nolint: errcheck

		user, err := calc.Users().GetByUsername(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		calcs, err := calc.History().ListByUser(cmd.Context(), user.ID, historyFlags.Limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(calcs) == 0 {
			fmt.Fprintf(out, "no calculations recorded for %s\n", user.Username)
			return nil
		}
		for _, c := range calcs {
			fmt.Fprintf(out, "%s  %s = %s\n", c.CreatedAt.Format(time.DateTime), c.Expression, c.Result)
		}
		return nil
	},
}
