package cli

import (
	"fmt"
	"time"

	"petclinic/internal/adapters/auth/jwtauth"

	"github.com/spf13/cobra"
)

func newTokenCommand(a *app) *cobra.Command {
	var user, email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token signed with auth.jwt_secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			issuer, err := jwtauth.NewIssuer(jwtauth.Config{
				Secret: a.cfg.Auth.JWTSecret,
				Issuer: a.cfg.Auth.Issuer,
			}, a.cfg.Auth.TokenTTL)
			if err != nil {
				return err
			}

			token, exp, err := issuer.Issue(user, email)
			if err != nil {
				return err
			}
			a.log.Debug("token issued", map[string]any{"user": user, "expires_at": exp.Format(time.RFC3339)})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "Subject (user id) of the token")
	cmd.Flags().StringVar(&email, "email", "", "Optional email claim")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
