package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/ui"
	"github.com/spf13/cobra"
)

// configKeys are the dotted keys accepted by "config set".
var configKeys = []string{
	"interval",
	"discord.token",
	"discord.channel_id",
	"discord.admin_id",
	"discord.guild_id",
	"panel.url",
	"panel.api_key",
	"panel.timeout",
	"panel.uptime",
	"display.brand",
	"display.logo_url",
	"display.footer",
	"display.presence_interval",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit the config file",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one config value",
	Long: `Set a single value in the config file, keeping comments and key order.

Keys:
  ` + strings.Join(configKeys, "\n  ") + `

Examples:
  panelwatch config set discord.admin_id 123456789012345678
  panelwatch config set interval 30s`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: configKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print which config file would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configPath(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func configSet(w io.Writer, key, value string) error {
	if !isConfigKey(key) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown config key '%s'", key),
			"Valid keys: "+strings.Join(configKeys, ", "))
	}

	path, err := config.Find(Config())
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'panelwatch init' first")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Cannot update %s", path),
			"Check the file is valid YAML and writable")
	}
	fmt.Fprintf(w, "%s Set %s in %s\n", ui.SymbolSuccess, key, path)

	// The file is written either way; point out anything that will stop the bot starting.
	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		warn := lipgloss.NewStyle().Foreground(ui.ColorWarning)
		fmt.Fprintf(w, "%s %s\n", warn.Render(ui.SymbolSkipped), errors.Brief(err))
	}
	return nil
}

func configPath(w io.Writer) error {
	path, err := config.Find(Config())
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'panelwatch init' or set PANELWATCH_* environment variables")
	}
	fmt.Fprintln(w, path)
	return nil
}

func isConfigKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}
	return false
}
