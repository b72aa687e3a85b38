package cli

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/alphastock/internal/common"
	"github.com/spf13/cobra"
)

func newLoginCommand(st *state) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			ctx := cmd.Context()

			email, err := a.textOrPrompt(email, "Enter email")
			if err != nil {
				return err
			}
			password, err := getPassword(a.out, "Enter password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			if err := a.authService.Login(ctx, email, password); err != nil {
				return err
			}
			a.refreshUserName(ctx)
			fmt.Fprintln(a.out, "Login successful")
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account e-mail")
	return cmd
}

func newRegisterCommand(st *state) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			ctx := cmd.Context()

			name, err := a.textOrPrompt(name, "Enter name")
			if err != nil {
				return err
			}
			email, err := a.textOrPrompt(email, "Enter email")
			if err != nil {
				return err
			}
			password, err := getNewPassword(a.out, "Enter password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			if err := a.authService.Register(ctx, name, email, password); err != nil {
				return err
			}
			a.refreshUserName(ctx)
			fmt.Fprintln(a.out, "Success!")
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account e-mail")
	return cmd
}

func newLogoutCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			if err := a.authService.Logout(cmd.Context()); err != nil {
				return err
			}
			a.setUserName("")
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newWhoAmICommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			if !a.isLoggedIn(cmd.Context()) {
				return common.ErrNotLoggedIn
			}
			u, err := a.authService.Me(cmd.Context())
			if err != nil {
				return err
			}
			a.printMarkdown(mdTable(
				[]string{"ID", "Name", "E-mail"},
				[][]string{{u.ID.String(), u.Name, u.Email}},
			))
			return nil
		},
	}
}

func newSessionCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show what the stored access token says (not verified)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			s, err := a.authService.Session(cmd.Context())
			if err != nil {
				return err
			}

			status := "valid"
			if s.Expired(time.Now()) {
				status = "expired (will be refreshed on next request)"
			}
			a.printMarkdown(mdTable(
				[]string{"Field", "Value"},
				[][]string{
					{"Subject", s.Subject},
					{"E-mail", s.Email},
					{"Issued at", formatTime(s.IssuedAt)},
					{"Expires at", formatTime(s.ExpiresAt)},
					{"State", status},
				},
			))
			return nil
		},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}

func newPasswordCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change or reset the account password",
	}

	change := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			current, err := getPassword(a.out, "Current password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(current)

			next, err := getNewPassword(a.out, "New password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(next)

			if err := a.authService.ChangePassword(cmd.Context(), current, next); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Password changed")
			return nil
		},
	}

	var forgotEmail string
	forgot := &cobra.Command{
		Use:   "forgot",
		Short: "Request a password reset e-mail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			email, err := a.textOrPrompt(forgotEmail, "Enter email")
			if err != nil {
				return err
			}
			if err := a.authService.ForgotPassword(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "If the address is registered, a reset link was sent.")
			return nil
		},
	}
	forgot.Flags().StringVarP(&forgotEmail, "email", "e", "", "account e-mail")

	var token string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password using the token from the reset e-mail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			token, err := a.textOrPrompt(token, "Enter reset token")
			if err != nil {
				return err
			}
			next, err := getNewPassword(a.out, "New password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(next)

			if err := a.authService.ResetPassword(cmd.Context(), token, next); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Password reset, you can log in now")
			return nil
		},
	}
	reset.Flags().StringVarP(&token, "token", "t", "", "reset token")

	cmd.AddCommand(change, forgot, reset)
	return cmd
}
