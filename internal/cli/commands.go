package cli

import (
	"os"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	statsJSON         bool
	watchIntervalFlag time.Duration
	initForce         bool
	initNonInteract   bool
	initPathFlag      string
	initValues        InitOptions
)

// runCmd starts the bot
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the status bot",
	Long: `Connect to Discord and keep the status channel up to date.

Every interval the panel's node list is fetched, the channel's most recent message is
deleted and a fresh summary posted. When discord.admin_id is set, that user gets a DM
whenever the panel goes offline or comes back. The /stats command answers on demand,
and the bot's "watching" status cycles through display.presence.

Stops cleanly on Ctrl+C or SIGTERM.

Examples:
  panelwatch run
  panelwatch run --config /etc/panelwatch.yaml
  PANELWATCH_DISCORD_TOKEN=... panelwatch run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), cmd.OutOrStdout())
	},
}

// statsCmd prints one summary to the terminal
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the current panel summary",
	Long: `Fetch the panel once and print the same summary /stats would post.

Only the panel section of the config is required.

Examples:
  panelwatch stats
  panelwatch stats --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statsCommand(cmd.Context(), cmd.OutOrStdout(), statsJSON)
	},
}

// watchCmd runs the terminal dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live panel dashboard in the terminal",
	Long: `Open a full-screen dashboard that polls the panel and shows the summary card
alongside reachability and latency history.

Keys: r refresh, ? help, q quit.

Examples:
  panelwatch watch
  panelwatch watch --interval 30s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(watchIntervalFlag)
	},
}

// initCmd writes a new config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a panelwatch.yaml config",
	Long: `Create a config file, prompting for the bot token, channel, admin and panel details.

With --non-interactive the values come from flags and nothing is prompted.

Examples:
  panelwatch init
  panelwatch init --non-interactive --token $TOKEN --channel 123... --panel-url https://panel.example.com --api-key ptla_...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initValues
		opts.Path = initPathFlag
		opts.Overwrite = initForce
		opts.NonInteractive = initNonInteract
		return Init(cmd.OutOrStdout(), opts)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for panelwatch.

Examples:
  # Bash
  panelwatch completion bash > /etc/bash_completion.d/panelwatch

  # Zsh
  panelwatch completion zsh > "${fpath[1]}/_panelwatch"

  # Fish
  panelwatch completion fish > ~/.config/fish/completions/panelwatch.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// stats command flags
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output in JSON format")

	// watch command flags
	watchCmd.Flags().DurationVar(&watchIntervalFlag, "interval", 0, "refresh interval (default: config interval)")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteract, "non-interactive", false, "take values from flags, never prompt")
	initCmd.Flags().StringVar(&initPathFlag, "path", "", "where to write the config (default ./panelwatch.yaml)")
	initCmd.Flags().StringVar(&initValues.Token, "token", "", "Discord bot token")
	initCmd.Flags().StringVar(&initValues.ChannelID, "channel", "", "status channel ID")
	initCmd.Flags().StringVar(&initValues.AdminID, "admin", "", "user ID that receives alerts")
	initCmd.Flags().StringVar(&initValues.GuildID, "guild", "", "guild ID for the /stats command")
	initCmd.Flags().StringVar(&initValues.PanelURL, "panel-url", "", "panel base URL")
	initCmd.Flags().StringVar(&initValues.APIKey, "api-key", "", "panel application API key")
	initCmd.Flags().StringVar(&initValues.Brand, "brand", "", "name shown in titles and alerts")

	// Register all commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(completionCmd)
}
