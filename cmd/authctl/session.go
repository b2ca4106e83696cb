package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/tollgate/pkg/authsdk"
	"github.com/spf13/cobra"
)

func loginCmd(opts *globalOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with an email and password. The password is read from stdin when
--password is not given. If the server has two-factor enabled, follow the
emailed link or pass its token to "authctl two-factor".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				p, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}

			session, closeState, err := opts.openSession()
			if err != nil {
				return err
			}
			defer closeState()

			resp, err := session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signed in as %s\n", describe(resp.Session))
			if resp.TwoFactorRequired {
				fmt.Fprintln(out, "Two-factor confirmation required, check your email then run: authctl two-factor <link or token>")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (read from stdin if empty)")

	return cmd
}

func logoutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeState, err := opts.openSession()
			if err != nil {
				return err
			}
			defer closeState()

			if err := session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func whoamiCmd(opts *globalOptions) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeState, err := opts.openSession()
			if err != nil {
				return err
			}
			defer closeState()

			if local {
				user, ok := session.CurrentUser()
				if !ok {
					return authsdk.ErrNotAuthenticated
				}
				fmt.Fprintln(cmd.OutOrStdout(), describe(user))
				return nil
			}

			me, err := session.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describe(*me))
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Print the stored user without contacting the server")

	return cmd
}

func refreshCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Trade the refresh token for a new access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeState, err := opts.openSession()
			if err != nil {
				return err
			}
			defer closeState()

			if err := session.RefreshSession(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Access token refreshed")
			return nil
		},
	}
}

func twoFactorCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "two-factor <link or token>",
		Short: "Confirm the emailed second factor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := twoFactorToken(args[0])
			if err != nil {
				return err
			}

			session, closeState, err := opts.openSession()
			if err != nil {
				return err
			}
			defer closeState()

			if err := session.ConfirmTwoFactor(cmd.Context(), token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Two factor authentication successful")
			return nil
		},
	}
}

// twoFactorToken accepts either the bare token or the whole emailed link.
func twoFactorToken(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if !strings.Contains(arg, "://") {
		if arg == "" {
			return "", errors.New("empty two-factor token")
		}
		return arg, nil
	}

	u, err := url.Parse(arg)
	if err != nil {
		return "", fmt.Errorf("parsing link: %w", err)
	}
	token := u.Query().Get("token")
	if token == "" {
		return "", errors.New("link has no token parameter")
	}
	return token, nil
}

func describe(c authsdk.Claims) string {
	return fmt.Sprintf("%s %s <%s> (%s)", c.Name, c.Surname, c.Email, c.Role)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
