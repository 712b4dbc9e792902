package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/cmd/cli/commands"
	"github.com/kmdeguzman/worship-scheduler/internal/config"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/logging"
)

var (
	env     string
	verbose bool

	// app is created before the commands so each one captures a stable
	// pointer; initApp fills it in once flags are parsed.
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "worship-scheduler",
		Short: "Worship Scheduler CLI - Build and manage team schedules",
		Long: `A CLI tool for building weekly worship team schedules, checking member
availability, exporting schedule files, and browsing archived runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on the console")

	rootCmd.AddCommand(commands.BuildScheduleCmd(app))
	rootCmd.AddCommand(commands.EditScheduleCmd(app))
	rootCmd.AddCommand(commands.ListTeamCmd(app))
	rootCmd.AddCommand(commands.CheckStatusCmd(app))
	rootCmd.AddCommand(commands.ListRunsCmd(app))
	rootCmd.AddCommand(commands.ViewRunCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and configuration. Clients and the archive
// database connect lazily through the AppContext when a command needs them.
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	return nil
}
