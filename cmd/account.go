package cmd

import (
	"fmt"
	"strings"

	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage tracked accounts",
	}

	cmd.AddCommand(
		newAccountAddCmd(app),
		newAccountListCmd(app),
		newAccountRenameCmd(app),
		newAccountRemoveCmd(app),
	)

	return cmd
}

func newAccountAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account with the default resource set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("account name is required")
			}

			account, err := app.service.CreateAccount(cmd.Context(), name)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added account %s (%s)\n", account.Name, account.ID)
			return nil
		},
	}
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.service.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			for _, account := range accounts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", account.ID, account.Name)
			}

			return nil
		},
	}
}

func newAccountRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.service.RenameAccount(cmd.Context(), domain.AccountID(args[0]), strings.TrimSpace(args[1]))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed account %s to %s\n", account.ID, account.Name)
			return nil
		},
	}
}

func newAccountRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := app.service.RemoveAccount(cmd.Context(), domain.AccountID(args[0]))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s (%d remaining)\n", args[0], len(accounts))
			return nil
		},
	}
}
