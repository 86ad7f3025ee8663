package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tasksched/config"
	"tasksched/logging"
	"tasksched/manager"
	"tasksched/scheduler"
)

var (
	flagConfig    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    config.Config
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the cubesched CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cubesched",
		Short: "In-memory task to node load balancer",
		Long:  "cubesched replays node and task operations against an in-memory scheduler and reports where each task landed.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Default()
			if flagConfig != "" {
				c, err := config.Load(flagConfig)
				if err != nil {
					return err
				}
				cfg = c
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = flagLogFormat
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger = logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newDemoCmd(),
	)

	return root
}

func newManager() *manager.Manager {
	return manager.New(
		manager.WithLogger(logger),
		manager.WithScheduler(scheduler.New(cfg.Policy)),
	)
}
