package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/fintrack/internal/app"
	"github.com/MrJamesThe3rd/fintrack/internal/config"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
	"github.com/MrJamesThe3rd/fintrack/internal/logging"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// cli carries what the subcommands share once the root has loaded config.
type cli struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "fintrackctl",
		Short:         "Manage a fintrack installation",
		Long:          `Run schema migrations and administer users and roles of a fintrack database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("log-level") {
				logLevel = cfg.App.LogLevel
			}
			if !cmd.Flags().Changed("log-format") {
				logFormat = cfg.App.LogFormat
			}

			if err := logging.Setup(logLevel, logFormat); err != nil {
				return err
			}

			c.cfg = cfg

			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(c.migrateCmd())
	root.AddCommand(c.userCmd())
	root.AddCommand(c.roleCmd())

	return root
}

// services opens the database and wires the services over it. The caller
// closes the returned database.
func (c *cli) services() (*app.Services, func() error, error) {
	db, err := database.New(c.cfg.ConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	return app.NewServices(db, c.cfg.Session.BcryptCost), db.Close, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
