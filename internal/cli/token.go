package cli

import (
	"errors"
	"fmt"
	"strings"

	"skill-passport/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <user_uid>",
		Short: "Issue an access token that selects user_uid as the active user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if !cfg.AuthEnabled() {
				return errors.New("JWT_SECRET is not set")
			}

			userID := strings.TrimSpace(args[0])
			if userID == "" {
				return errors.New("empty user_uid")
			}

			token, err := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn).GenerateAccessToken(userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
