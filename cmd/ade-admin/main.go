// Command ade-admin operates an ade-data deployment: schema migrations,
// seeding, exports, and watching the event stream and alert topic.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brandonbohn/adebackend/common/logger"
	"github.com/brandonbohn/adebackend/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

// app shared state filled in by the root command before any subcommand runs
type app struct {
	envFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(&app{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ade-admin",
		Short:         "Operator tooling for the ade-data service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(migrateCmd(a))
	root.AddCommand(seedCmd(a))
	root.AddCommand(hashPasswordCmd())
	root.AddCommand(exportCmd(a))
	root.AddCommand(eventsCmd(a))
	root.AddCommand(alertsCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	envErr := godotenv.Load(a.envFile)
	a.cfg = config.Load()
	log, err := logger.NewLogger(a.cfg.Log.Level, "console", "ade-admin")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.logger = log
	if envErr != nil && cmd.Flags().Changed("env-file") {
		a.logger.Warn("Env file not loaded", zap.String("path", a.envFile), zap.Error(envErr))
	}
	return nil
}
