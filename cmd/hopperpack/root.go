// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"hopperpack/internal/config"
	"hopperpack/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// baseDir is the module directory commands operate on
	baseDir string

	// loadedCfg is the configuration read during initialization; nil until
	// cobra.OnInitialize has run or when loading failed.
	loadedCfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "hopperpack",
		Short: "Build-time metadata generator for Hopper data format modules",
		Long: TitleStyle.Render("hopperpack") + SubtitleStyle.Render(" - Build-time metadata generator for Hopper data format modules") + `

hopperpack scans a module's resource roots for data format descriptors,
merges the model documents shipped inside the hopper-core artifact into
per-format schema files, and writes the dataformat.properties summary
the Hopper runtime uses to discover data formats.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'hopperpack init' in your module directory
  2. Declare data formats under META-INF/services/org/hopper/dataformat/
  3. Run 'hopperpack generate' as part of your build

` + SubtitleStyle.Render("Examples:") + `
  hopperpack generate       Generate schema files and the summary
  hopperpack list           List discovered data formats
  hopperpack init csv --class org.example.csv.CsvDataFormat
  hopperpack config show    Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/hopperpack/config.cue)")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", ".", "module directory to operate on")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	cfg, _, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	loadedCfg = cfg
	setupLogging()
}

// activeConfig returns the configuration loaded at startup, falling back to
// defaults when loading failed or initialization has not run.
func activeConfig() *config.Config {
	if loadedCfg != nil {
		return loadedCfg
	}
	return config.DefaultConfig()
}

// setupLogging installs the CLI logger as the slog default so the pipeline
// packages log through the same handler.
func setupLogging() {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})
	slog.SetDefault(slog.New(logger))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssue prints the guidance card for an issue to stderr.
func renderIssue(id issue.Id) {
	rendered, err := issue.Get(id).Render(string(activeConfig().UI.ColorScheme))
	if err != nil {
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}
