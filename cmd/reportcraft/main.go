package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"reportcraft/cmd/reportcraft/ui"
	"reportcraft/internal/config"
	"reportcraft/internal/logging"
)

var (
	// Global flags
	verbose bool
	dataDir string

	// Logger for non-interactive subcommands
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "reportcraft",
	Short: "reportcraft - AI-assisted pedagogical initiative reports",
	Long: `reportcraft walks a teacher through writing a pedagogical initiative
report in seven steps, drafting each section with Gemini and assembling
the result into a plain-text document ready to paste anywhere.

Run without arguments to start the interactive wizard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dataDir != "" {
			os.Setenv("REPORTCRAFT_HOME", dataDir)
		}

		// The wizard has its own categorized file logging; zap serves the
		// plain subcommands.
		if cmd.CalledAs() == "reportcraft" {
			return nil
		}

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard()
	},
}

// runWizard assembles the application and hands control to the
// interactive shell.
func runWizard() error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := logging.Initialize(config.DataDir()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.CloseAll()

	return ui.Run(ui.Deps{
		Config: env.Config,
		Store:  env.Store,
		Ledger: env.Ledger,
	})
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.reportcraft)")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
