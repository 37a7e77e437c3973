package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/errors"
)

// MinInterval is the shortest poll interval accepted. Anything faster hammers both APIs.
const MinInterval = time.Second

// ValidationOption controls validation behavior.
type ValidationOption func(*validationContext)

type validationContext struct {
	skipDiscord bool
}

// PanelOnly skips the Discord section. Used by terminal commands that never talk to Discord.
func PanelOnly() ValidationOption {
	return func(c *validationContext) {
		c.skipDiscord = true
	}
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config, opts ...ValidationOption) error {
	ctx := &validationContext{}
	for _, opt := range opts {
		opt(ctx)
	}

	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but panelwatch only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade panelwatch or lower the version field.")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("interval %v is too short", cfg.Interval),
			fmt.Sprintf("Use at least %v, like '10s' or '1m'.", MinInterval))
	}

	if err := validatePanel(cfg.Panel); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'panel' section of your config or the PANELWATCH_PANEL_* variables.")
	}

	if !ctx.skipDiscord {
		if err := validateDiscord(cfg.Discord); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
				"Check the 'discord' section of your config or the PANELWATCH_DISCORD_* variables.")
		}
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'display' section of your config.")
	}

	return nil
}

func validatePanel(p PanelConfig) error {
	if p.URL == "" {
		return fmt.Errorf("panel.url is empty - point it at your panel, like 'https://panel.example.com'")
	}
	u, err := url.Parse(p.URL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("panel.url '%s' isn't a valid URL", p.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("panel.url '%s' needs an http:// or https:// scheme", p.URL)
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return fmt.Errorf("panel.api_key is empty - create an application API key in the panel")
	}
	if p.Timeout < 0 {
		return fmt.Errorf("panel.timeout can't be negative")
	}
	switch p.Uptime {
	case UptimeObserved, UptimePlaceholder, UptimeNone, "":
	default:
		return fmt.Errorf("panel.uptime '%s' isn't valid - use 'observed', 'placeholder', or 'none'", p.Uptime)
	}
	return nil
}

func validateDiscord(d DiscordConfig) error {
	if strings.TrimSpace(d.Token) == "" {
		return fmt.Errorf("discord.token is empty - paste your bot token or set PANELWATCH_DISCORD_TOKEN")
	}
	if strings.HasPrefix(d.Token, "Bot ") {
		return fmt.Errorf("discord.token should not include the 'Bot ' prefix")
	}
	if d.ChannelID == "" {
		return fmt.Errorf("discord.channel_id is empty - that's where the status message goes")
	}
	for field, id := range map[string]string{
		"discord.channel_id": d.ChannelID,
		"discord.admin_id":   d.AdminID,
		"discord.guild_id":   d.GuildID,
	} {
		if id != "" && !isSnowflake(id) {
			return fmt.Errorf("%s '%s' should be a numeric Discord ID", field, id)
		}
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	if d.LogoURL != "" {
		u, err := url.Parse(d.LogoURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("display.logo_url '%s' isn't a valid URL", d.LogoURL)
		}
	}
	for i, p := range d.Presence {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("display.presence has an empty entry at position %d", i)
		}
	}
	if len(d.Presence) > 0 && d.PresenceInterval < MinInterval {
		return fmt.Errorf("display.presence_interval %v is too short - use at least %v", d.PresenceInterval, MinInterval)
	}
	return nil
}

func isSnowflake(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
