package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

func (c *cli) userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Administer user accounts",
	}

	cmd.AddCommand(c.roleChangeCmd("grant-role", "Grant a role to a user", (*user.Service).GrantRole))
	cmd.AddCommand(c.roleChangeCmd("revoke-role", "Revoke a role from a user", (*user.Service).RevokeRole))

	return cmd
}

type roleChange func(s *user.Service, ctx context.Context, email, role string) (*user.User, error)

func (c *cli) roleChangeCmd(use, short string, change roleChange) *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeDB, err := c.services()
			if err != nil {
				return err
			}
			defer closeDB()

			u, err := change(svc.Users, cmd.Context(), email, role)
			if err != nil {
				return err
			}

			printUser(cmd.OutOrStdout(), u)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the user")
	cmd.Flags().StringVar(&role, "role", "", "role name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func printUser(w io.Writer, u *user.User) {
	roles := strings.Join(u.RoleNames(), ", ")
	if roles == "" {
		roles = "(none)"
	}

	fmt.Fprintf(w, "%s %s <%s>\n", successStyle.Render("✓"), u.Username, u.Email)
	fmt.Fprintf(w, "  roles: %s\n", roles)
}
