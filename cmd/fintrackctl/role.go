package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) roleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Manage roles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Create a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := c.services()
			if err != nil {
				return err
			}
			defer closeDB()

			role, err := svc.Users.CreateRole(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Created role "+role.Name))

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeDB, err := c.services()
			if err != nil {
				return err
			}
			defer closeDB()

			roles, err := svc.Users.ListRoles(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("ID"), headerStyle.Render("Name"))
			for _, r := range roles {
				fmt.Fprintf(w, "%s\t%s\n", r.ID, r.Name)
			}

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a role no user holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := c.services()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := svc.Users.DeleteRole(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Deleted role "+args[0]))

			return nil
		},
	})

	return cmd
}
