package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/openbenefits/ratesync/pkg/errors"
	"github.com/openbenefits/ratesync/pkg/logging"
)

// Exit codes. A failed fetch is distinguished from a failed validation
// so schedulers can tell "GOV.UK was unreachable or unparseable" apart
// from "the extracted rates were rejected".
const (
	ExitOK               = 0
	ExitValidationFailed = 1
	ExitFetchFailed      = 2
)

// Execute runs the ratesync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ratesync",
		Short:   "UK benefit rate synchroniser",
		Version: a.version,
		Long: `Ratesync keeps a canonical JSON store of UK benefit rates in step
with the figures published on GOV.UK.

Each run fetches the live benefit pages through the GOV.UK Content API,
extracts the current rates, merges them into the existing store, and
validates the result before anything is written. Fields a page no longer
publishes keep their stored values.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.ratesync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.StorePath, "store", "", "path to the benefit-rates JSON store (default "+DefaultStorePath+")")

	rootCmd.SetVersionTemplate("ratesync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand,
	// so errors indicate programming errors.
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	logLevel := mustGetString(cmd, "log-level")
	storePath := mustGetString(cmd, "store")

	a.config.UpdateFromFlags(verbose, quiet, noColor, logLevel, storePath)

	// Reconfigure the package default logger with updated config; the
	// commands pass it on via the command context.
	logging.Configure(logConfig(a.config))
	a.logger = logging.Default()

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewUpdateCommand())
	rootCmd.AddCommand(a.NewValidateCommand())
	rootCmd.AddCommand(a.NewShowCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError prints an error and exits with the status matching its
// class: fetch and parse failures exit 2, everything else exits 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	//nolint:errcheck // Ignoring write error since we're exiting anyway
	_, _ = os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(ExitCode(err))
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsFetchError(err):
		return ExitFetchFailed
	default:
		return ExitValidationFailed
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
