package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API accounts",
	}

	cmd.AddCommand(
		newUserRegisterCmd(app),
		newUserLoginCmd(app),
	)

	return cmd
}

func newUserRegisterCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, app)
			if err != nil {
				return err
			}
			u, err := app.Auth.Register(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUserLoginCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Print a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, app)
			if err != nil {
				return err
			}
			token, err := app.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// readPassword prompts with a masked input on a terminal and otherwise reads
// the first line of stdin.
func readPassword(cmd *cobra.Command, app *App) (string, error) {
	if app.Interactive {
		var password string
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		)).WithTheme(scholiaHuhTheme()).WithShowHelp(false).Run()
		return password, err
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
