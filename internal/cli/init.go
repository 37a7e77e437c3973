package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/ui"
)

// InitOptions contains options for the init command.
type InitOptions struct {
	Path      string // Where to write the config; defaults to ./panelwatch.yaml
	Token     string
	ChannelID string
	AdminID   string
	GuildID   string
	PanelURL  string
	APIKey    string
	Brand     string

	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, take values from the options
}

// Init creates a new panelwatch.yaml configuration file.
func Init(w io.Writer, opts InitOptions) error {
	configPath := opts.Path
	if configPath == "" {
		configPath = filepath.Join(".", config.ConfigFileName)
	}

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	if !opts.NonInteractive {
		if err := promptInitValues(&opts); err != nil {
			return err
		}
	}

	cfg := buildInitConfig(opts)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	// Check the panel before saving
	fmt.Fprintln(w)
	spinner := ui.NewSpinnerTo(w, "Checking "+cfg.Panel.URL, false)
	spinner.Start()
	snap := newPanelClient(cfg).Fetch(context.Background())
	if snap.Reachable {
		spinner.Success()
		fmt.Fprintf(w, "  Found %d node%s\n\n", len(snap.Nodes), pluralSuffix(len(snap.Nodes)))
	} else {
		spinner.Fail()
		if err := confirmUnreachable(w, opts, snap.Err); err != nil {
			return err
		}
	}

	if err := config.Save(cfg, configPath); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  panelwatch doctor  - Check config, panel and Discord access")
	fmt.Fprintln(w, "  panelwatch stats   - Print the current summary")
	fmt.Fprintln(w, "  panelwatch run     - Start the bot")

	return nil
}

// buildInitConfig fills the defaults with the collected values.
func buildInitConfig(opts InitOptions) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Discord.Token = strings.TrimSpace(opts.Token)
	cfg.Discord.ChannelID = strings.TrimSpace(opts.ChannelID)
	cfg.Discord.AdminID = strings.TrimSpace(opts.AdminID)
	cfg.Discord.GuildID = strings.TrimSpace(opts.GuildID)
	cfg.Panel.URL = strings.TrimRight(strings.TrimSpace(opts.PanelURL), "/")
	cfg.Panel.APIKey = strings.TrimSpace(opts.APIKey)
	if brand := strings.TrimSpace(opts.Brand); brand != "" {
		cfg.Display.Brand = brand
	}
	return cfg
}

// confirmUnreachable lets an interactive user save a config whose panel did not answer.
func confirmUnreachable(w io.Writer, opts InitOptions, cause error) error {
	failure := errors.WrapWithCode(cause, errors.ErrPanel,
		fmt.Sprintf("Panel at '%s' did not answer", opts.PanelURL),
		"Check the URL and that the API key has read access to nodes")

	if opts.NonInteractive {
		return failure
	}

	fmt.Fprintf(w, "\n%s %s\n\n", ui.SymbolFail, errors.Brief(cause))

	var saveAnyway bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save config anyway? (You can fix the panel details later)").
				Value(&saveAnyway),
		),
	)
	if err := form.Run(); err != nil || !saveAnyway {
		return failure
	}
	return nil
}

func promptInitValues(opts *InitOptions) error {
	required := func(what string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", what)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Discord bot token").
				Description("From the Bot page of your application in the developer portal").
				EchoMode(huh.EchoModePassword).
				Value(&opts.Token).
				Validate(required("bot token")),
			huh.NewInput().
				Title("Status channel ID").
				Description("Right-click the channel with Developer Mode on, then Copy ID").
				Value(&opts.ChannelID).
				Validate(required("channel ID")),
			huh.NewInput().
				Title("Admin user ID (optional)").
				Description("Gets a DM when the panel goes offline or comes back").
				Placeholder("leave empty to disable alerts").
				Value(&opts.AdminID),
			huh.NewInput().
				Title("Guild ID (optional)").
				Description("Registers /stats in one server instantly instead of globally").
				Placeholder("leave empty for a global command").
				Value(&opts.GuildID),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Panel URL").
				Placeholder("https://panel.example.com").
				Value(&opts.PanelURL).
				Validate(required("panel URL")),
			huh.NewInput().
				Title("Application API key").
				Description("Admin > Application API, with read access to nodes").
				EchoMode(huh.EchoModePassword).
				Value(&opts.APIKey).
				Validate(required("API key")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Brand name").
				Description("Shown in summary titles and alerts").
				Placeholder(config.DefaultConfig().Display.Brand).
				Value(&opts.Brand),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return nil
}

// pluralSuffix returns "s" if n != 1.
func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
