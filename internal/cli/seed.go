package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/container"
)

func newSeedAdminCommand(opts *options) *cobra.Command {
	var email, username, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create or promote the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			in := application.SignupInput{
				Email:     firstNonEmpty(email, cfg.AdminEmail),
				Username:  firstNonEmpty(username, cfg.AdminUsername),
				Password:  firstNonEmpty(password, cfg.AdminPassword),
				FirstName: "Admin",
				LastName:  "User",
			}
			if in.Email == "" || in.Username == "" || in.Password == "" {
				return errors.New("admin email, username and password are required")
			}

			c, err := container.Build(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			u, created, err := c.Users.EnsureAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}
			verb := "promoted"
			if created {
				verb = "created"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s admin: id=%d username=%s\n", verb, u.ID, u.Username)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (defaults to ADMIN_EMAIL)")
	cmd.Flags().StringVar(&username, "username", "", "admin username (defaults to ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (defaults to ADMIN_PASSWORD)")
	return cmd
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
