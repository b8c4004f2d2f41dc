package main

import (
	"fmt"
	"time"

	"shop/internal/infra/token"

	"github.com/spf13/cobra"
)

// api admin-token --subject ops --ttl 1h
func newAdminTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Print a bearer token for the /admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootConfig()
			if err != nil {
				return err
			}
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}

			raw, exp, err := token.NewIssuer(cfg.AdminJWTSecret, ttl).Issue(subject, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), raw)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", exp.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	return cmd
}
