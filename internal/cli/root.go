package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/logger"
	"github.com/rileyhilliard/panelwatch/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "panelwatch",
	Short: "Pterodactyl panel status bot for Discord",
	Long: `panelwatch keeps a live status message for a Pterodactyl panel in a Discord channel.

Every interval it lists the panel's nodes, replaces the channel's latest message with
a fresh summary, and DMs an admin when the panel goes offline or comes back.
Members can ask for the same summary at any time with /stats.

Config is read from --config, ./panelwatch.yaml or ~/.config/panelwatch/config.yaml,
and any key can be overridden with PANELWATCH_* environment variables.

Examples:
  panelwatch init
  panelwatch run
  panelwatch stats
  panelwatch doctor`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.ConfigureColors(noColor)
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./panelwatch.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders structured errors as-is and prefixes plain ones with the failure symbol.
func formatError(err error) string {
	if pwErr, ok := err.(*errors.Error); ok {
		return pwErr.Error()
	}
	msg := err.Error()
	if isUnknownCommandError(err) {
		msg += "\n\n  Run 'panelwatch --help' for usage."
	}
	return ui.SymbolFail + " " + msg + "\n"
}

func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}
