// Package cmd provides the CLI commands for thesisdash.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/thesisdash/internal/config"
	"github.com/Aman-CERP/thesisdash/internal/errors"
	"github.com/Aman-CERP/thesisdash/internal/logging"
	"github.com/Aman-CERP/thesisdash/internal/profiling"
	"github.com/Aman-CERP/thesisdash/pkg/version"
)

var (
	debugMode      bool
	logLevel       string
	loggingCleanup func()

	profileOpts profiling.Options
	profile     *profiling.Session
)

// NewRootCmd creates the root command for the thesisdash CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thesisdash",
		Short: "Build and query the thesis passage index",
		Long: `thesisdash turns a thesis manuscript into a lexical TF-IDF index
that the static dashboard loads to answer questions about the thesis.

Put chapters (.md, .txt, .docx) in the manuscript directory and run
'thesisdash index'. The index is written to dashboard/thesis_index.json.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("thesisdash version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.thesisdash/logs/")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	cmd.PersistentFlags().StringVar(&profileOpts.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileOpts.Mem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileOpts.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startLoggingAndProfiling
	cmd.PersistentPostRunE = stopLoggingAndProfiling

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func startLoggingAndProfiling(cmd *cobra.Command, args []string) error {
	if err := startLogging(cmd, args); err != nil {
		return err
	}
	if !profileOpts.Enabled() {
		return nil
	}
	session, err := profiling.Start(profileOpts)
	if err != nil {
		return err
	}
	profile = session
	return nil
}

func stopLoggingAndProfiling(cmd *cobra.Command, args []string) error {
	var profErr error
	if profile != nil {
		profErr = profile.Stop()
		profile = nil
	}
	if err := stopLogging(cmd, args); err != nil {
		return err
	}
	return profErr
}

// startLogging installs the default logger. The mcp command logs to file
// only because stdout carries JSON-RPC.
func startLogging(cmd *cobra.Command, _ []string) error {
	level := logLevel
	if level == "" {
		level = configuredLogLevel()
	}

	var cfg logging.Config
	switch {
	case cmd.Name() == "mcp":
		cfg = logging.MCPConfig(level)
		if debugMode {
			cfg.Level = "debug"
		}
	case debugMode:
		cfg = logging.DebugConfig()
	default:
		cfg = logging.ConsoleConfig(level)
	}
	cfg.Stderr = cmd.ErrOrStderr()

	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)

	if debugMode {
		slog.Debug("debug_logging_enabled",
			slog.String("log_file", logging.DefaultLogPath()),
			slog.String("version", version.Version))
	}
	return nil
}

// execute runs cmd and stops profiling and file logging even when the
// command fails, since cobra skips PersistentPostRunE after a RunE error.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		_ = stopLoggingAndProfiling(cmd, nil)
	}
	return err
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// configuredLogLevel reads logging.level from the project around the
// working directory. Config errors surface later when the command loads
// the project properly.
func configuredLogLevel() string {
	root, err := config.FindProjectRoot(".")
	if err != nil {
		return "info"
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "info"
	}
	return cfg.Logging.Level
}

// Execute runs the root command and prints any error for the terminal.
func Execute() error {
	err := execute(NewRootCmd())
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, errors.FormatForCLI(err))
	}
	return err
}
