package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/fintrack/internal/database"
)

func (c *cli) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.Migrate(c.cfg.ConnectionString()); err != nil {
				return err
			}

			slog.Info("migrations applied")
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Schema is up to date."))

			return nil
		},
	})

	var steps int

	down := &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}

			if err := database.Rollback(c.cfg.ConnectionString(), steps); err != nil {
				return err
			}

			slog.Info("migrations reverted", "steps", steps)
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Reverted %d migration(s).", steps)))

			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, dirty, err := database.Version(c.cfg.ConnectionString())
			if err != nil {
				return err
			}

			out := fmt.Sprintf("version %d", version)
			if dirty {
				out += " (dirty)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	})

	return cmd
}
