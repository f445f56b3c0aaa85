package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/levaetras/internal/auth"
	"github.com/MrJamesThe3rd/levaetras/internal/config"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Sign an API access token",
	Example: `  levaetras-admin issue-token --user admin-1 --role admin
  levaetras-admin issue-token --user entregador-1 --role entregador
  levaetras-admin issue-token --user u-7 --role cliente --client client-1`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, _ := cmd.Flags().GetString("user")
		role, _ := cmd.Flags().GetString("role")
		clientID, _ := cmd.Flags().GetString("client")

		kind := settings.UserKind(role)

		switch kind {
		case settings.UserAdmin, settings.UserCourier:
		case settings.UserClient:
			if clientID == "" {
				return errors.New("--client is required for client tokens")
			}
		default:
			return fmt.Errorf("unknown role %q", role)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		tok, err := auth.NewTokens([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL).Issue(user, kind, clientID)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), tok)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(issueTokenCmd)

	issueTokenCmd.Flags().String("user", "", "User id stored in the token, the courier id for courier tokens")
	issueTokenCmd.Flags().String("role", string(settings.UserAdmin), "admin, entregador or cliente")
	issueTokenCmd.Flags().String("client", "", "Client id for client tokens")
	_ = issueTokenCmd.MarkFlagRequired("user")
}
